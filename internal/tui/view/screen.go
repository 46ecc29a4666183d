package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Screen is a fixed cell area. Rows and columns left uncovered by content are
// filled with Bg.
type Screen struct {
	Width  int
	Height int
	Bg     lipgloss.Color
}

// Empty reports whether the screen has no cells, as before the first resize.
func (s Screen) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Fill pads every row of content to Width and the row count to Height.
// Extra rows are dropped.
func (s Screen) Fill(content string) string {
	if s.Empty() {
		return content
	}
	rows := strings.Split(content, "\n")
	if len(rows) > s.Height {
		rows = rows[:s.Height]
	}
	for len(rows) < s.Height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = padRight(row, s.Width, s.Bg)
	}
	return strings.Join(rows, "\n")
}

// Place aligns content to the left edge at vertical position v, then fills.
func (s Screen) Place(v lipgloss.Position, content string) string {
	placed := lipgloss.Place(s.Width, s.Height, lipgloss.Left, v, content,
		lipgloss.WithWhitespaceBackground(s.Bg))
	return s.Fill(placed)
}

// Overlay centers modal over base. Modal rows are cut or padded to the width
// of the widest row, and keep modalBg across any style resets they contain.
func (s Screen) Overlay(base, modal string, modalBg lipgloss.Color) string {
	if modal == "" {
		return base
	}
	w := min(lipgloss.Width(modal), s.Width)
	if w == 0 {
		return base
	}
	rows := strings.Split(modal, "\n")
	if len(rows) > s.Height {
		rows = rows[:s.Height]
	}
	top := (s.Height - len(rows)) / 2
	left := (s.Width - w) / 2

	under := strings.Split(Screen{Width: s.Width, Height: s.Height}.Fill(base), "\n")
	for i, row := range rows {
		under[top+i] = splice(under[top+i], modalRow(row, w, modalBg), left, w, s.Width)
	}
	return strings.Join(under, "\n")
}

// modalRow fits one modal row to exactly w cells.
func modalRow(row string, w int, bg lipgloss.Color) string {
	if lipgloss.Width(row) > w {
		row = ansi.Cut(row, 0, w)
	}
	row = keepBackground(padRight(row, w, bg), bg)
	return row + ansi.ResetStyle
}

// splice replaces cells [left, left+w) of line with patch.
func splice(line, patch string, left, w, width int) string {
	return ansi.Cut(line, 0, left) + patch + ansi.Cut(line, left+w, width)
}

func padRight(row string, width int, bg lipgloss.Color) string {
	gap := width - lipgloss.Width(row)
	if gap <= 0 {
		return row
	}
	return row + lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap))
}

// keepBackground re-emits bg after every sequence that clears the background.
func keepBackground(row string, bg lipgloss.Color) string {
	if bg == "" {
		return row
	}
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		row = strings.ReplaceAll(row, reset, reset+seq)
	}
	return row
}

// Layers is one frame of pre-rendered content.
type Layers struct {
	Base        string
	Modal       string // drawn over Base when non-empty
	Placeholder string // shown while the screen is empty
}

// Overlayer draws a modal over base content.
type Overlayer interface {
	Draw(s Screen, base, modal string) string
}

// Compose produces the final frame for s.
func Compose(s Screen, l Layers, o Overlayer) string {
	switch {
	case s.Empty() && l.Placeholder != "":
		return l.Placeholder
	case s.Empty():
		return "Loading..."
	case l.Modal != "" && o != nil:
		return o.Draw(s, l.Base, l.Modal)
	default:
		return l.Base
	}
}
