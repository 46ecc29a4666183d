package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TabBarModel is the broadcast-type tab bar.
type TabBarModel struct {
	Width   int
	Labels  []string
	Active  int
	Focused bool // the tab bar holds keyboard focus
	Right   string
}

// TabBarStyles groups tab bar styles.
type TabBarStyles struct {
	Bar     lipgloss.Style
	Tab     lipgloss.Style
	Active  lipgloss.Style
	Focused lipgloss.Style
}

// RenderTabBar renders tabs on the left and Right aligned to the right edge.
func RenderTabBar(model TabBarModel, styles TabBarStyles) string {
	if model.Width <= 0 {
		return ""
	}
	var left strings.Builder
	for i, label := range model.Labels {
		style := styles.Tab
		if i == model.Active {
			style = styles.Active
			if model.Focused {
				style = styles.Focused
			}
		}
		left.WriteString(style.Render(label))
	}
	right := styles.Bar.Render(model.Right + " ")

	line := left.String()
	gap := model.Width - lipgloss.Width(line) - lipgloss.Width(right)
	if gap < 0 {
		return ansi.Truncate(line, model.Width, "")
	}
	return line + styles.Bar.Render(strings.Repeat(" ", gap)) + right
}
