// Package tui provides the terminal user interface for bangumi.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/bangumi/internal/jump"
	"github.com/javiermolinar/bangumi/internal/render"
	"github.com/javiermolinar/bangumi/internal/tui/theme"
)

// cellStyle is how the canvas paints one draw-command role. An empty color
// leaves the existing cell color untouched.
type cellStyle struct {
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Role colors used by the canvas.
	roles map[render.Role]cellStyle

	// Tab bar
	TabBarStyle     lipgloss.Style
	TabStyle        lipgloss.Style
	TabActiveStyle  lipgloss.Style
	TabFocusedStyle lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	SpinnerStyle     lipgloss.Style
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpSepStyle     lipgloss.Style

	// Placeholder shown when there is nothing to draw.
	EmptyStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalTagStyle          lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style

	// Jump menu slots
	JumpDayStyle         lipgloss.Style
	JumpHourStyle        lipgloss.Style
	JumpSlotStyle        lipgloss.Style
	JumpSlotPastStyle    lipgloss.Style
	JumpSlotFocusStyle   lipgloss.Style
	JumpSlotHighlightBg  lipgloss.Color
	JumpPeriodForeground map[jump.Period]lipgloss.Color
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.roles = map[render.Role]cellStyle{
		render.RoleCellNormal:  {bg: p.BgHighlight},
		render.RoleCellPast:    {bg: p.CellPastBg},
		render.RoleCellEmpty:   {bg: p.Bg},
		render.RoleTitle:       {fg: p.Fg, bold: true},
		render.RoleTitleDim:    {fg: p.FgMuted},
		render.RoleDescription: {fg: p.FgMuted},
		render.RoleGridLine:    {fg: p.Grid},
		render.RoleNowLine:     {fg: p.Now, bold: true},
		render.RoleFocusFill:   {bg: p.BgSelection},
		render.RoleFocusBorder: {fg: p.Accent, bold: true},
		render.RoleFocusTitle:  {fg: p.Fg, bold: true},
		render.RoleFocusDesc:   {fg: p.Fg},
		render.RoleHourMorning: {fg: p.TextOnMorning, bg: p.MorningBg},
		render.RoleHourDay:     {fg: p.TextOnDay, bg: p.DayBg},
		render.RoleHourNight:   {fg: p.TextOnNight, bg: p.NightBg},
		render.RoleHourLabel:   {bold: true},
		render.RoleMeridiem:    {},
		render.RoleHeader:      {bg: p.HeaderBg},
		render.RoleChannelNum:  {fg: p.Accent, bold: true},
		render.RoleChannelName: {fg: p.Fg},
		render.RoleCorner:      {bg: p.HeaderBg},
		render.RoleDate:        {fg: p.Fg, bold: true},
		render.RoleSaturday:    {fg: p.Saturday, bold: true},
		render.RoleSunday:      {fg: p.Sunday, bold: true},
	}

	s.TabBarStyle = lipgloss.NewStyle().
		Background(p.HeaderBg)

	s.TabStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.HeaderBg).
		Padding(0, 1)

	s.TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight).
		Bold(true).
		Padding(0, 1)

	s.TabFocusedStyle = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg).
		Bold(true)

	s.StatusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Now).
		Background(p.Bg).
		Bold(true)

	s.SpinnerStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg).
		Bold(true)

	s.HelpDescStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.HelpSepStyle = lipgloss.NewStyle().
		Foreground(p.Grid).
		Background(p.Bg)

	s.EmptyStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	// Modal styles - use high-contrast theme colors
	modal := p.Modal
	modalBg := modal.Bg
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		PaddingLeft(1).
		Background(modalBg)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Bold(true).
		Padding(0, 1)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		Width(10).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 2)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Padding(0, 2).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.JumpDayStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg).
		Bold(true).
		Width(jumpSlotWidth).
		Align(lipgloss.Center)

	s.JumpHourStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg).
		Width(jumpHourLabelWidth)

	s.JumpSlotStyle = lipgloss.NewStyle().
		Background(modalBg).
		Width(jumpSlotWidth).
		Align(lipgloss.Center)

	s.JumpSlotPastStyle = s.JumpSlotStyle.
		Foreground(modal.Muted).
		Faint(true)

	s.JumpSlotFocusStyle = s.JumpSlotStyle.
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true)

	s.JumpSlotHighlightBg = p.BgSelection

	s.JumpPeriodForeground = map[jump.Period]lipgloss.Color{
		jump.PeriodMorning:   p.Morning,
		jump.PeriodDay:       p.Day,
		jump.PeriodEvening:   p.Now,
		jump.PeriodLateNight: p.Night,
	}

	return s
}

// Role returns the canvas style of a draw-command role. Genre bars take
// their background from the genre color.
func (s *Styles) Role(role render.Role, genre render.Genre) cellStyle {
	if role == render.RoleGenreBar {
		return cellStyle{bg: s.palette.Genre(string(genre))}
	}
	return s.roles[role]
}

// Background returns the base background color.
func (s *Styles) Background() lipgloss.Color {
	return s.palette.Bg
}
