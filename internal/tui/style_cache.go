package tui

import "github.com/charmbracelet/lipgloss"

// StyleCache memoizes lipgloss styles by color triple so the canvas does not
// build a style per run on every frame.
type StyleCache struct {
	styles map[cellStyle]lipgloss.Style
}

// NewStyleCache creates an empty cache.
func NewStyleCache() *StyleCache {
	return &StyleCache{styles: make(map[cellStyle]lipgloss.Style)}
}

// Get returns the style for a glyph's colors.
func (c *StyleCache) Get(cs cellStyle) lipgloss.Style {
	if st, ok := c.styles[cs]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if cs.fg != "" {
		st = st.Foreground(cs.fg)
	}
	if cs.bg != "" {
		st = st.Background(cs.bg)
	}
	if cs.bold {
		st = st.Bold(true)
	}
	c.styles[cs] = st
	return st
}

// Len returns the number of cached styles.
func (c *StyleCache) Len() int {
	return len(c.styles)
}
