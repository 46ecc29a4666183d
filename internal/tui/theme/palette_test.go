package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Now:         "#ff3333",
		Morning:     "#ffcc00",
		Day:         "#00ccff",
		Night:       "#6666ff",
		Genres:      map[string]string{"news": "#112233", "other": "#445566"},
	}
}

func TestNewPalette_Bands(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	if palette.MorningBg != lipgloss.Color(darkenColor(base.Morning)) {
		t.Fatalf("MorningBg = %q, want %q", palette.MorningBg, darkenColor(base.Morning))
	}
	if palette.NightBg != lipgloss.Color(darkenColor(base.Night)) {
		t.Fatalf("NightBg = %q, want %q", palette.NightBg, darkenColor(base.Night))
	}
	if palette.TextOnNight != lipgloss.Color(base.Fg) {
		t.Fatalf("TextOnNight = %q, want %q", palette.TextOnNight, base.Fg)
	}
}

func TestNewPalette_Genres(t *testing.T) {
	palette := NewPalette(darkTheme())

	if len(palette.Genres) != len(GenreNames) {
		t.Fatalf("len(Genres) = %d, want %d", len(palette.Genres), len(GenreNames))
	}
	if got := palette.Genre("news"); got != lipgloss.Color("#112233") {
		t.Errorf("Genre(news) = %q, want #112233", got)
	}
	if got := palette.Genre("drama"); got != lipgloss.Color("#445566") {
		t.Errorf("Genre(drama) = %q, want other color", got)
	}
	if got := palette.Genre("not-a-genre"); got != lipgloss.Color("#445566") {
		t.Errorf("Genre(unknown) = %q, want other color", got)
	}
}

func TestNewPalette_PastCellsSitBetweenBackgrounds(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	past := relativeLuminance(string(palette.CellPastBg))
	if past >= relativeLuminance(base.BgHighlight) || past <= relativeLuminance(base.Bg) {
		t.Fatalf("CellPastBg luminance = %f, want between Bg and BgHighlight", past)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := darkTheme()

	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Panel.Dark != base.BgSelection {
		t.Fatalf("Modal.Panel.Dark = %q, want %q", palette.Modal.Panel.Dark, base.BgSelection)
	}
}

func TestNewPalette_LightThemeLightensBands(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Morning:     "#1d8a8a",
		Day:         "#2f8f2f",
		Night:       "#c97b00",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.MorningBg)) <= relativeLuminance(base.Morning) {
		t.Fatalf("MorningBg luminance = %f, want greater than Morning", relativeLuminance(string(palette.MorningBg)))
	}
	if relativeLuminance(string(palette.HeaderBg)) >= relativeLuminance(base.Bg) {
		t.Fatalf("HeaderBg should be darker than Bg")
	}
}

func TestNewPalette_NilUsesMocha(t *testing.T) {
	palette := NewPalette(nil)
	if palette.Bg != lipgloss.Color("#1e1e2e") {
		t.Fatalf("Bg = %q, want mocha base", palette.Bg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

func TestColorMath(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"darken halves", darkenColor("#ff8060"), "#7f4030"},
		{"darken floors", darkenColor("#102030"), "#282828"},
		{"darken keeps invalid", darkenColor("red"), "red"},
		{"blend midpoint", blendColors("#000000", "#ffffff", 0.5), "#7f7f7f"},
		{"blend clamps", blendColors("#000000", "#ffffff", 2), "#ffffff"},
		{"blend keeps invalid", blendColors("#12", "#ffffff", 0.5), "#12"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestRelativeLuminanceBounds(t *testing.T) {
	if got := relativeLuminance("#000000"); got != 0 {
		t.Errorf("black = %f, want 0", got)
	}
	if got := relativeLuminance("#ffffff"); got < 0.999 {
		t.Errorf("white = %f, want 1", got)
	}
}
