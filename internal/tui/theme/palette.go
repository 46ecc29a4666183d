package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds the resolved colors of a Theme, including shades derived
// for bands, headers and past cells.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Now         lipgloss.Color
	Grid        lipgloss.Color
	Saturday    lipgloss.Color
	Sunday      lipgloss.Color

	HeaderBg   lipgloss.Color
	CellPastBg lipgloss.Color

	Morning   lipgloss.Color
	Day       lipgloss.Color
	Night     lipgloss.Color
	MorningBg lipgloss.Color
	DayBg     lipgloss.Color
	NightBg   lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnMorning lipgloss.Color
	TextOnDay     lipgloss.Color
	TextOnNight   lipgloss.Color

	// Genres maps every name in GenreNames to its bar color.
	Genres map[string]lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
}

// NewPalette derives a Palette from t. A nil theme uses mocha.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	sh := deriveShades(t)

	p := &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Now:         lipgloss.Color(coalesce(t.Now, t.Accent)),
		Grid:        lipgloss.Color(coalesce(t.Grid, t.BgSelection)),
		Saturday:    lipgloss.Color(coalesce(t.Saturday, t.Fg)),
		Sunday:      lipgloss.Color(coalesce(t.Sunday, t.Fg)),

		HeaderBg:   lipgloss.Color(sh.header),
		CellPastBg: lipgloss.Color(blendColors(t.BgHighlight, t.Bg, 0.6)),

		Morning:   lipgloss.Color(t.Morning),
		Day:       lipgloss.Color(t.Day),
		Night:     lipgloss.Color(t.Night),
		MorningBg: lipgloss.Color(sh.morning),
		DayBg:     lipgloss.Color(sh.day),
		NightBg:   lipgloss.Color(sh.night),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnMorning: lipgloss.Color(chooseTextColor(sh.morning, t.Fg, t.Bg)),
		TextOnDay:     lipgloss.Color(chooseTextColor(sh.day, t.Fg, t.Bg)),
		TextOnNight:   lipgloss.Color(chooseTextColor(sh.night, t.Fg, t.Bg)),

		Genres: make(map[string]lipgloss.Color, len(GenreNames)),
	}
	for _, name := range GenreNames {
		p.Genres[name] = lipgloss.Color(t.Genre(name))
	}

	bg := coalesce(t.BaseBg, t.BgHighlight, t.Bg)
	text := coalesce(t.TextPrimary, t.Fg)
	p.Modal = ModalColors{
		Bg:        lipgloss.Color(bg),
		Border:    sameColor(coalesce(t.ModalBorder, t.Accent)),
		Text:      sameColor(text),
		Muted:     sameColor(coalesce(t.TextMuted, t.FgMuted)),
		Highlight: sameColor(coalesce(t.Highlight, t.BgSelection, t.Accent)),
		Panel:     sameColor(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		// Reversed labels: modal background as text on dark terminals.
		ReverseText: lipgloss.AdaptiveColor{Dark: bg, Light: text},
	}
	return p
}

// Genre returns the bar color of a genre, falling back to "other".
func (p *Palette) Genre(name string) lipgloss.Color {
	if c, ok := p.Genres[name]; ok {
		return c
	}
	return p.Genres["other"]
}

// shades holds the band and header backgrounds, which depend on whether the
// theme is light.
type shades struct {
	morning, day, night, header string
}

func deriveShades(t *Theme) shades {
	if relativeLuminance(t.Bg) > 0.55 {
		band := func(accent string) string { return blendColors(accent, t.Bg, 0.75) }
		return shades{band(t.Morning), band(t.Day), band(t.Night), blendColors(t.Bg, "#000000", 0.05)}
	}
	return shades{darkenColor(t.Morning), darkenColor(t.Day), darkenColor(t.Night), blendColors(t.Bg, "#000000", 0.25)}
}

// sameColor uses one hex value in both terminal modes.
func sameColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}
