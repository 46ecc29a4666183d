// Package theme provides color themes for the guide.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// GenreNames lists the genre keys a theme may color, in display order.
var GenreNames = []string{
	"news", "sports", "information", "drama", "music", "variety", "movies",
	"anime", "documentary", "theatre", "hobby", "welfare", "other",
}

// Theme is one embedded TOML color scheme. Keys left empty in the file are
// derived from the base colors on load.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background, empty cells
	BgHighlight string `toml:"bg_highlight"` // Program cells
	BgSelection string `toml:"bg_selection"` // Focused cell
	Fg          string `toml:"fg"`           // Titles
	FgMuted     string `toml:"fg_muted"`     // Descriptions, past programs
	Accent      string `toml:"accent"`       // Focus border, channel numbers
	Now         string `toml:"now"`          // Current time line
	Grid        string `toml:"grid"`         // Separators

	// Time axis bands
	Morning string `toml:"morning"`
	Day     string `toml:"day"`
	Night   string `toml:"night"`

	Saturday string `toml:"saturday"`
	Sunday   string `toml:"sunday"`

	// Genre accent colors keyed by genre name.
	Genres map[string]string `toml:"genres"`

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// DefaultName is the theme used when none is configured or the configured
// one does not exist.
const DefaultName = "mocha"

// names lists the embedded themes in display order.
var names = []string{"mocha", "macchiato", "frappe", "latte", "light"}

// Load parses the embedded theme called name, case-insensitively. Unknown
// names load DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if !slices.Contains(names, name) {
		name = DefaultName
	}
	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("reading theme %q: %w", name, err)
	}
	t := new(Theme)
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.fillUnset()
	return t, nil
}

// Genre returns the accent color of a genre. Unknown or unset genres use
// the "other" color, then the muted foreground.
func (t *Theme) Genre(name string) string {
	return coalesce(t.Genres[name], t.Genres["other"], t.FgMuted)
}

// fillUnset resolves optional keys from the base colors.
func (t *Theme) fillUnset() {
	fallbacks := []struct {
		field *string
		from  []string
	}{
		{&t.BaseBg, []string{t.BgHighlight, t.Bg}},
		{&t.ModalBorder, []string{t.Accent}},
		{&t.TextPrimary, []string{t.Fg}},
		{&t.TextMuted, []string{t.FgMuted}},
		{&t.Highlight, []string{t.BgSelection, t.Accent}},
		{&t.Grid, []string{t.BgSelection, t.FgMuted}},
		{&t.Now, []string{t.Accent}},
		{&t.Morning, []string{t.Accent}},
		{&t.Day, []string{t.Accent}},
		{&t.Night, []string{t.Accent}},
		{&t.Saturday, []string{t.Fg}},
		{&t.Sunday, []string{t.Fg}},
	}
	for _, f := range fallbacks {
		*f.field = coalesce(append([]string{*f.field}, f.from...)...)
	}
	if t.Genres == nil {
		t.Genres = map[string]string{}
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the embedded theme names.
func Available() []string {
	return slices.Clone(names)
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(names, strings.ToLower(name))
}
