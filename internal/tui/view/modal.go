// Package view composes the screen: tab bar, footer, modal frames and overlays.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ModalStyles groups the styles of a modal frame and its key buttons.
type ModalStyles struct {
	Frame        lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	Meta         lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// Modal is the content of one modal frame. Width bounds the title and meta
// line; zero leaves them as-is.
type Modal struct {
	Title  string
	Meta   string
	Body   string
	Footer string
	Width  int
}

// RenderModalFrame renders the header, the optional meta line, the body and
// the footer inside the modal frame.
func RenderModalFrame(m Modal, styles ModalStyles) string {
	title, meta := m.Title, m.Meta
	if m.Width > 0 {
		title = ansi.Truncate(title, m.Width, "…")
		meta = ansi.Truncate(meta, m.Width, "…")
	}

	parts := []string{styles.Header.Render(styles.Title.Render(title))}
	if meta != "" {
		parts = append(parts, styles.Meta.Render(meta))
	}
	if m.Body != "" {
		parts = append(parts, "", m.Body)
	}
	if m.Footer != "" {
		parts = append(parts, "", styles.Footer.Render(m.Footer))
	}
	return styles.Frame.Render(strings.Join(parts, "\n"))
}

// KeyButton is a key hint such as "[Esc] Close".
type KeyButton struct {
	Key   string
	Label string
}

func (b KeyButton) String() string {
	return "[" + b.Key + "] " + b.Label
}

// RenderKeyButtons renders buttons on one row, the first one active. Compact
// buttons get one cell of padding instead of the button style's own.
func RenderKeyButtons(styles ModalStyles, compact bool, buttons ...KeyButton) string {
	normal, active := styles.Button, styles.ButtonActive
	if compact {
		normal = normal.Padding(0, 1)
		active = active.Padding(0, 1)
	}
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		style := normal
		if i == 0 {
			style = active
		}
		parts[i] = style.Render(b.String())
	}
	return strings.Join(parts, styles.Body.Render(" "))
}
