package tui

import (
	"strings"

	"github.com/javiermolinar/bangumi/internal/dateutil"
	"github.com/javiermolinar/bangumi/internal/jump"
	"github.com/javiermolinar/bangumi/internal/tui/view"
)

// Jump grid geometry in cells.
const (
	jumpSlotWidth      = 7
	jumpHourLabelWidth = 11
	jumpVisibleHours   = 12
)

// Detail modal width bounds.
const (
	detailMaxWidth = 72
	detailMinWidth = 30
	// modalChrome is the border plus horizontal padding of the modal frame.
	modalChrome = 4
)

// renderModal renders the modal of the current mode, or "" when there is none.
func (m Model) renderModal() string {
	switch m.mode {
	case ModeInit:
		return m.renderInitModal()
	case ModeJump:
		return m.renderJumpModal()
	case ModeDetail:
		return m.renderDetailModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:        m.styles.ModalStyle,
		Header:       m.styles.ModalHeaderStyle,
		Title:        m.styles.ModalTitleStyle,
		Meta:         m.styles.ModalMetaStyle,
		Body:         m.styles.ModalBodyStyle,
		Footer:       m.styles.ModalFooterStyle,
		Button:       m.styles.ModalButtonStyle,
		ButtonActive: m.styles.ModalButtonActiveStyle,
	}
}

func (m Model) bodyStyles() view.BodyStyles {
	return view.BodyStyles{
		Text:    m.styles.ModalBodyStyle,
		Meta:    m.styles.ModalMetaStyle,
		Section: m.styles.ModalSectionTitleStyle,
		Tag:     m.styles.ModalTagStyle,
		Label:   m.styles.ModalLabelStyle,
		Hint:    m.styles.ModalHintStyle,
	}
}

// renderInitModal renders the startup initialization prompt.
func (m Model) renderInitModal() string {
	body := view.RenderInitBody(view.InitModalModel{
		ConfigPath:    m.initState.ConfigPath,
		DBPath:        m.initState.DBPath,
		ConfigMissing: m.initState.ConfigMissing,
		DBMissing:     m.initState.DBMissing,
		ErrorMessage:  m.initError,
	}, m.bodyStyles())
	styles := m.modalStyles()
	return view.RenderModalFrame(view.Modal{
		Title:  "Initialize bangumi",
		Body:   body,
		Footer: view.InitFooter(styles),
	}, styles)
}

// detailWidth returns the text width of the detail modal.
func (m Model) detailWidth() int {
	return max(min(m.width-2*modalChrome, detailMaxWidth), detailMinWidth)
}

// renderDetailModal renders the program detail popup.
func (m Model) renderDetailModal() string {
	w := m.detailWidth()
	model := view.NewProgramDetailModel(m.detail.program, m.detail.channel)
	styles := m.modalStyles()
	return view.RenderModalFrame(view.Modal{
		Title:  model.Title,
		Body:   view.RenderProgramDetailBody(model, w, m.bodyStyles()),
		Footer: view.DetailFooter(styles),
		Width:  w,
	}, styles)
}

// renderJumpModal renders the date by hour jump menu.
func (m Model) renderJumpModal() string {
	if m.jump == nil {
		return ""
	}
	meta := "Nothing left to jump to"
	if s, ok := m.jump.Focused(); ok {
		meta = dateutil.DayLabel(s.Time) + " " + s.Time.Format("15:04")
	}
	styles := m.modalStyles()
	return view.RenderModalFrame(view.Modal{
		Title:  "Jump to",
		Meta:   meta,
		Body:   m.renderJumpGrid(),
		Footer: view.JumpFooter(styles),
	}, styles)
}

// jumpFirstHour returns the first visible hour row, keeping the focused hour
// near the middle.
func jumpFirstHour(focusHour int) int {
	return min(max(focusHour-jumpVisibleHours/2, 0), jump.HoursPerDay-jumpVisibleHours)
}

// periodLabel returns the period name on the first hour of each period.
func periodLabel(hour int) string {
	switch hour {
	case 4, 11, 17, 23:
		return jump.PeriodOf(hour).String()
	}
	return ""
}

// renderJumpGrid renders days as columns and hours as rows.
func (m Model) renderJumpGrid() string {
	menu := m.jump
	focused, hasFocus := menu.Focused()
	first := jumpFirstHour(focused.Hour)

	var b strings.Builder
	dates := m.styles.JumpHourStyle.Render("")
	weekdays := m.styles.JumpHourStyle.Render("")
	for _, d := range menu.Days() {
		dates += m.styles.JumpDayStyle.Render(dateutil.ShortDate(d))
		weekdays += m.styles.JumpDayStyle.Render(dateutil.WeekdayLabel(d))
	}
	b.WriteString(dates + "\n" + weekdays)

	for h := first; h < first+jumpVisibleHours; h++ {
		label := periodLabel(h)
		if h == first && label == "" {
			label = jump.PeriodOf(h).String()
		}
		fg := m.styles.JumpPeriodForeground[jump.PeriodOf(h)]
		b.WriteString("\n" + m.styles.JumpHourStyle.Foreground(fg).Render(label))

		for d := range menu.Days() {
			s := menu.Slot(d, h)
			text := dateutil.HourLabel(h)
			style := m.styles.JumpSlotStyle.Foreground(m.styles.JumpPeriodForeground[s.Period])
			switch {
			case !s.Selectable:
				text = "--"
				style = m.styles.JumpSlotPastStyle
			case hasFocus && s.Day == focused.Day && s.Hour == focused.Hour:
				style = m.styles.JumpSlotFocusStyle
			case menu.Highlighted(s):
				style = style.Background(m.styles.JumpSlotHighlightBg)
			}
			b.WriteString(style.Render(text))
		}
	}
	return b.String()
}
