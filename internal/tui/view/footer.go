package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel holds the footer content: an optional multi-line help block
// above a single status line.
type FooterModel struct {
	Width       int
	Height      int
	HelpBlock   string
	StatusLine  string
	StatusStyle lipgloss.Style
	Bg          lipgloss.Color
}

// RenderFooter renders the help block and status line, padded to Height.
func RenderFooter(model FooterModel) string {
	if model.Height <= 0 || model.Width <= 0 {
		return ""
	}
	status := footerLine(model.Width, model.StatusStyle, model.StatusLine)
	s := status
	if model.HelpBlock != "" {
		s = model.HelpBlock + "\n" + status
	}
	return Screen{Width: model.Width, Height: model.Height, Bg: model.Bg}.Place(lipgloss.Bottom, s)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "…")
	}
	return style.Width(contentWidth).Render(content)
}
