package ui

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/bangumi/internal/config"
	"github.com/javiermolinar/bangumi/internal/dateutil"
	"github.com/javiermolinar/bangumi/internal/epg"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func at(day, h, m int) time.Time {
	return time.Date(2025, 1, day, h, m, 0, 0, time.UTC)
}

func TestScheduleWindow(t *testing.T) {
	now := at(15, 10, 45) // Wednesday

	tests := []struct {
		name      string
		date      string
		wantBase  time.Time
		wantLimit time.Time
	}{
		{"guide window", "", at(15, 8, 0), at(15, 8, 0).Add(24 * time.Hour)},
		{"tomorrow", "tomorrow", at(16, 0, 0), at(17, 0, 0)},
		{"weekday", "friday", at(17, 0, 0), at(18, 0, 0)},
		{"iso date", "2025-01-20", at(20, 0, 0), at(21, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := scheduleWindow(120, 24*60, tt.date, now)
			if err != nil {
				t.Fatalf("scheduleWindow() error = %v", err)
			}
			if !w.Base.Equal(tt.wantBase) || !w.Limit.Equal(tt.wantLimit) {
				t.Errorf("window = [%v, %v), want [%v, %v)", w.Base, w.Limit, tt.wantBase, tt.wantLimit)
			}
		})
	}

	if _, err := scheduleWindow(120, 24*60, "2025-01-01", now); !errors.Is(err, dateutil.ErrDateInPast) {
		t.Errorf("past date error = %v, want ErrDateInPast", err)
	}
}

func TestPrintSchedule(t *testing.T) {
	ch := epg.Channel{ID: "gr-1", Number: "011", Name: "One", Type: epg.TypeTerrestrial}
	raw := []epg.RawProgram{
		{ID: "p1", ChannelID: "gr-1", Title: "Late Movie", StartTime: "2025-01-15T23:00:00Z", EndTime: "2025-01-16T01:00:00Z",
			Genres: []epg.Genre{{Major: "Movies"}}},
		{ID: "p2", ChannelID: "gr-1", Title: "Early News", StartTime: "2025-01-16T02:00:00Z", EndTime: "2025-01-16T03:00:00Z"},
	}
	programs := epg.NewFiller("No information").Fill("gr-1", raw, at(15, 23, 0), at(16, 3, 0))

	var buf bytes.Buffer
	printSchedule(&buf, ch, programs, at(15, 23, 30), 80)
	out := buf.String()

	for _, want := range []string{
		"011 One (Terrestrial)",
		"1/15 (Wed)",
		"1/16 (Thu)",
		"▶ 23:00-1/16 01:00",
		"Movies",
		"01:00-02:00      No information",
		"1h",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("schedule missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "▶") != 1 {
		t.Errorf("schedule marks %d programs as airing, want 1", strings.Count(out, "▶"))
	}
}

func TestPrintSchedule_Empty(t *testing.T) {
	var buf bytes.Buffer
	printSchedule(&buf, epg.Channel{Number: "011", Name: "One", Type: epg.TypeBS}, nil, at(15, 0, 0), 80)
	if !strings.Contains(buf.String(), "No programs in this window.") {
		t.Errorf("output = %q, want empty notice", buf.String())
	}
}

func TestScheduleRow_TruncatesTitle(t *testing.T) {
	p := epg.Program{Title: strings.Repeat("A", 40), Start: at(15, 9, 0), End: at(15, 9, 30)}
	row := scheduleRow(p, at(15, 12, 0), 12)
	if !strings.Contains(row, strings.Repeat("A", 11)+"…") {
		t.Errorf("row = %q, want truncated title", row)
	}
	if strings.Contains(row, strings.Repeat("A", 12)) {
		t.Errorf("row = %q, title exceeds width", row)
	}
}

func TestPrintChannels(t *testing.T) {
	channels := []epg.Channel{
		{ID: "bs-1", Number: "101", Name: "Sat", Type: epg.TypeBS},
		{ID: "gr-1", Number: "011", Name: "One", Type: epg.TypeTerrestrial},
	}
	var buf bytes.Buffer
	printChannels(&buf, channels, map[string]int{"gr-1": 3})
	out := buf.String()

	for _, want := range []string{"BS\n", "Terrestrial\n", "bs-1, 0 programs", "gr-1, 3 programs"} {
		if !strings.Contains(out, want) {
			t.Errorf("channels missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printChannels(&buf, nil, nil)
	if !strings.Contains(buf.String(), "bangumi import") {
		t.Errorf("empty output = %q, want import hint", buf.String())
	}
}

func TestEditConfig(t *testing.T) {
	cfg := config.Default()
	input := strings.Join([]string{
		"",        // pixels per minute
		"abc",     // invalid channel width
		"200",     // channel width
		"4320",    // window length
		"",        // window lead
		"Unknown", // filler title
		"gr, bs",  // types
		"bs",      // default type
		"",        // db path
		"latte",   // theme
		"debug",   // log level
		"",        // log file
	}, "\n") + "\n"

	var out bytes.Buffer
	editConfig(bufio.NewReader(strings.NewReader(input)), &out, cfg)

	if cfg.Guide.ChannelWidth != 200 {
		t.Errorf("ChannelWidth = %v, want 200", cfg.Guide.ChannelWidth)
	}
	if cfg.Guide.WindowLengthMinutes != 4320 {
		t.Errorf("WindowLengthMinutes = %d, want 4320", cfg.Guide.WindowLengthMinutes)
	}
	if cfg.Guide.GapEntryTitle != "Unknown" {
		t.Errorf("GapEntryTitle = %q, want Unknown", cfg.Guide.GapEntryTitle)
	}
	if got := strings.Join(cfg.Guide.Types, ","); got != "GR,BS" {
		t.Errorf("Types = %q, want GR,BS", got)
	}
	if cfg.Guide.DefaultType != "BS" {
		t.Errorf("DefaultType = %q, want BS", cfg.Guide.DefaultType)
	}
	if cfg.UI.Theme != "latte" || cfg.Log.Level != "debug" {
		t.Errorf("theme, level = %q, %q, want latte, debug", cfg.UI.Theme, cfg.Log.Level)
	}
	if !strings.Contains(out.String(), `Invalid number "abc"`) {
		t.Errorf("prompt output missing invalid number notice:\n%s", out.String())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
