package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgramDetailModel contains the fields needed to render the program detail body.
type ProgramDetailModel struct {
	Title       string
	Channel     string
	TimeRange   string
	DateLabel   string
	Duration    string
	Genres      []string
	Description string
	// Detail holds extra sections as (heading, text) pairs in display order.
	Detail [][2]string
}

// BodyStyles styles the text inside modal frames.
type BodyStyles struct {
	Text    lipgloss.Style
	Meta    lipgloss.Style
	Section lipgloss.Style // detail headings such as "Cast"
	Tag     lipgloss.Style
	Label   lipgloss.Style
	Hint    lipgloss.Style
}

// RenderProgramDetailBody renders the modal body for a program, wrapping
// text to width. A width of 0 disables wrapping.
func RenderProgramDetailBody(model ProgramDetailModel, width int, styles BodyStyles) string {
	wrap := func(s lipgloss.Style) lipgloss.Style {
		if width > 0 {
			return s.Width(width)
		}
		return s
	}

	var body strings.Builder
	body.WriteString(styles.Meta.Render(model.DateLabel+"  "+model.TimeRange+"  ("+model.Duration+")") + "\n")
	body.WriteString(styles.Label.Render("Channel") + styles.Text.Render(model.Channel))

	if len(model.Genres) > 0 {
		tags := make([]string, 0, len(model.Genres))
		for _, g := range model.Genres {
			tags = append(tags, styles.Tag.Render(g))
		}
		body.WriteString("\n" + styles.Label.Render("Genre") + strings.Join(tags, styles.Text.Render(" ")))
	}

	if model.Description != "" {
		body.WriteString("\n\n" + wrap(styles.Text).Render(model.Description))
	}
	for _, kv := range model.Detail {
		body.WriteString("\n\n" + styles.Section.Render(kv[0]))
		body.WriteString("\n" + wrap(styles.Text).Render(kv[1]))
	}
	return body.String()
}

// InitModalModel contains the fields needed to render the init prompt.
type InitModalModel struct {
	ConfigPath    string
	DBPath        string
	ConfigMissing bool
	DBMissing     bool
	ErrorMessage  string
}

// RenderInitBody renders the body asking to create missing files.
func RenderInitBody(model InitModalModel, styles BodyStyles) string {
	var body strings.Builder
	body.WriteString(styles.Text.Render("bangumi needs to create the following files:") + "\n\n")
	if model.ConfigMissing {
		body.WriteString(styles.Label.Render("Config") + styles.Text.Render(model.ConfigPath) + "\n")
	}
	if model.DBMissing {
		body.WriteString(styles.Label.Render("Database") + styles.Text.Render(model.DBPath) + "\n")
	}
	body.WriteString("\n" + styles.Hint.Render("Import a guide afterwards with: bangumi import <file.json>"))
	if model.ErrorMessage != "" {
		body.WriteString("\n\n" + styles.Text.Render("Error: "+model.ErrorMessage))
	}
	return body.String()
}
