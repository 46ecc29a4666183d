package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/bangumi/internal/epg"
)

func TestNewProgramDetailModel(t *testing.T) {
	start := time.Date(2026, 1, 2, 23, 30, 0, 0, time.UTC)
	p := epg.Program{
		ID:          "p1",
		ChannelID:   "ch1",
		Title:       "Late News",
		Description: "  Headlines.  ",
		Detail:      map[string]string{"Cast": "A, B", "Staff": "", "Content": "Stories"},
		Genres: []epg.Genre{
			{Major: "News", Middle: "Regular"},
			{Major: "News", Middle: "Regular"},
			{Major: "Information"},
		},
		Start: start,
		End:   start.Add(90 * time.Minute),
	}
	ch := &epg.Channel{ID: "ch1", Number: "011", Name: "NHK"}

	got := NewProgramDetailModel(p, ch)
	if got.Channel != "011 NHK" {
		t.Errorf("Channel = %q, want %q", got.Channel, "011 NHK")
	}
	if got.TimeRange != "23:30-1/3 01:00" {
		t.Errorf("TimeRange = %q, want %q", got.TimeRange, "23:30-1/3 01:00")
	}
	if got.Duration != "1h 30m" {
		t.Errorf("Duration = %q, want %q", got.Duration, "1h 30m")
	}
	if got.Description != "Headlines." {
		t.Errorf("Description = %q, want trimmed", got.Description)
	}
	wantGenres := []string{"News / Regular", "Information"}
	if strings.Join(got.Genres, "|") != strings.Join(wantGenres, "|") {
		t.Errorf("Genres = %v, want %v", got.Genres, wantGenres)
	}
	if len(got.Detail) != 2 || got.Detail[0][0] != "Cast" || got.Detail[1][0] != "Content" {
		t.Errorf("Detail = %v, want sorted non-empty sections", got.Detail)
	}
}

func TestNewProgramDetailModel_MissingChannel(t *testing.T) {
	p := epg.Program{ChannelID: "ch9", Start: time.Now(), End: time.Now().Add(time.Hour)}
	got := NewProgramDetailModel(p, nil)
	if got.Channel != "ch9" {
		t.Errorf("Channel = %q, want channel id fallback", got.Channel)
	}
}

func TestProgramDetailSummary(t *testing.T) {
	m := ProgramDetailModel{
		Title:       "Drama",
		Channel:     "021 Fuji",
		TimeRange:   "21:00-22:00",
		DateLabel:   "1/2 (Fri)",
		Duration:    "1h",
		Genres:      []string{"Drama"},
		Description: "Episode 3.",
		Detail:      [][2]string{{"Cast", "Someone"}},
	}
	got := m.Summary()
	want := "Drama\n1/2 (Fri) 21:00-22:00 (1h) 021 Fuji\nDrama\n\nEpisode 3.\n\nCast\nSomeone"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestRenderProgramDetailBody_UsesBodyStyleForDescription(t *testing.T) {
	styles := BodyStyles{
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Section: lipgloss.NewStyle().Bold(true),
	}
	model := ProgramDetailModel{
		Channel:     "011 NHK",
		Description: "Headlines.",
		Detail:      [][2]string{{"Cast", "Someone"}},
	}

	body := RenderProgramDetailBody(model, 0, styles)
	if !strings.Contains(body, styles.Text.Render(model.Description)) {
		t.Fatalf("expected description to use body style")
	}
	if !strings.Contains(body, styles.Section.Render("Cast")) {
		t.Fatalf("expected detail heading to use section title style")
	}
}

func TestRenderProgramDetailBody_WrapsToWidth(t *testing.T) {
	model := ProgramDetailModel{Description: strings.Repeat("word ", 20)}
	body := RenderProgramDetailBody(model, 20, BodyStyles{})
	for _, line := range strings.Split(body, "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line width = %d, want <= 20: %q", w, line)
		}
	}
}

func TestRenderInitBody_ListsMissingFiles(t *testing.T) {
	model := InitModalModel{
		ConfigPath:   "/tmp/config.toml",
		DBPath:       "/tmp/bangumi.db",
		DBMissing:    true,
		ErrorMessage: "disk full",
	}
	body := RenderInitBody(model, BodyStyles{})
	if strings.Contains(body, model.ConfigPath) {
		t.Errorf("body lists config path although it exists")
	}
	if !strings.Contains(body, model.DBPath) {
		t.Errorf("body is missing db path")
	}
	if !strings.Contains(body, "Error: disk full") {
		t.Errorf("body is missing error message")
	}
}
