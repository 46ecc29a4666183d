package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/bangumi/internal/tui/view"
)

// modalLayer draws modals centered over the guide, painting ragged modal
// rows with the theme's modal background.
type modalLayer struct {
	bg lipgloss.Color
}

// Draw implements view.Overlayer.
func (l modalLayer) Draw(s view.Screen, base, modal string) string {
	if s.Empty() {
		return base
	}
	return s.Overlay(base, modal, l.bg)
}
