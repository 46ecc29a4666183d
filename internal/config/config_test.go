package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Guide.WindowLengthMinutes != 20160 {
		t.Errorf("expected 14 day window, got %d minutes", cfg.Guide.WindowLengthMinutes)
	}
	if cfg.Guide.WindowLeadMinutes != 120 {
		t.Errorf("expected 120 minute lead, got %d", cfg.Guide.WindowLeadMinutes)
	}
	if cfg.Guide.GapEntryTitle != epg.DefaultGapTitle {
		t.Errorf("expected gap title %q, got %q", epg.DefaultGapTitle, cfg.Guide.GapEntryTitle)
	}
	if cfg.Geometry() != grid.DefaultGeometry() {
		t.Errorf("expected default geometry, got %+v", cfg.Geometry())
	}
	if len(cfg.EnabledTypes()) != len(epg.AllTypes()) {
		t.Errorf("expected all types enabled, got %v", cfg.Guide.Types)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Guide.ChannelWidth != 130 {
		t.Errorf("expected default channel width, got %v", cfg.Guide.ChannelWidth)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[guide]
pixels_per_minute = 2.0
window_length_minutes = 1440
gap_entry_title = "Off air"
default_type = "bs"
types = ["gr", " bs "]

[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Guide.PixelsPerMinute != 2 {
		t.Errorf("expected pixels_per_minute 2, got %v", cfg.Guide.PixelsPerMinute)
	}
	if cfg.Guide.WindowLengthMinutes != 1440 {
		t.Errorf("expected window 1440, got %d", cfg.Guide.WindowLengthMinutes)
	}
	if cfg.Guide.GapEntryTitle != "Off air" {
		t.Errorf("expected gap title Off air, got %q", cfg.Guide.GapEntryTitle)
	}
	if cfg.Guide.DefaultType != "BS" {
		t.Errorf("expected default type BS, got %s", cfg.Guide.DefaultType)
	}
	if got := cfg.EnabledTypes(); len(got) != 2 || got[0] != epg.TypeTerrestrial || got[1] != epg.TypeBS {
		t.Errorf("expected [GR BS], got %v", got)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	// Unset keys keep their defaults.
	if cfg.Guide.ChannelWidth != 130 {
		t.Errorf("expected default channel width, got %v", cfg.Guide.ChannelWidth)
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[guide\nbroken"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BANGUMI_PIXELS_PER_MINUTE", "3")
	t.Setenv("BANGUMI_WINDOW_LENGTH_MINUTES", "720")
	t.Setenv("BANGUMI_GAP_ENTRY_TITLE", "Nothing on")
	t.Setenv("BANGUMI_TYPES", "CS,SKY")
	t.Setenv("BANGUMI_DEFAULT_TYPE", "cs")
	t.Setenv("BANGUMI_DB_PATH", "/tmp/env.db")
	t.Setenv("BANGUMI_UI_THEME", "frappe")
	t.Setenv("BANGUMI_LOG_LEVEL", "debug")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Guide.PixelsPerMinute != 3 {
		t.Errorf("expected pixels_per_minute 3, got %v", cfg.Guide.PixelsPerMinute)
	}
	if cfg.Guide.WindowLengthMinutes != 720 {
		t.Errorf("expected window 720, got %d", cfg.Guide.WindowLengthMinutes)
	}
	if cfg.Guide.GapEntryTitle != "Nothing on" {
		t.Errorf("expected gap title override, got %q", cfg.Guide.GapEntryTitle)
	}
	if cfg.Guide.DefaultType != "CS" || len(cfg.Guide.Types) != 2 {
		t.Errorf("expected CS of [CS SKY], got %s of %v", cfg.Guide.DefaultType, cfg.Guide.Types)
	}
	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected db_path override, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "frappe" || cfg.Log.Level != "debug" {
		t.Errorf("expected frappe/debug, got %s/%s", cfg.UI.Theme, cfg.Log.Level)
	}
}

func TestEnvOverrides_BadNumber(t *testing.T) {
	t.Setenv("BANGUMI_SCROLL_PADDING", "lots")
	if _, err := LoadFrom("/nonexistent/config.toml"); err == nil {
		t.Fatal("expected error for non-numeric BANGUMI_SCROLL_PADDING")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/guide.db", filepath.Join(home, "guide.db")},
		{"/abs/guide.db", "/abs/guide.db"},
		{"relative.db", "relative.db"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "zero scale", modify: func(c *Config) { c.Guide.PixelsPerMinute = 0 }, wantErr: "pixels_per_minute"},
		{name: "negative padding", modify: func(c *Config) { c.Guide.BottomPadding = -1 }, wantErr: "paddings"},
		{name: "scroll padding too large", modify: func(c *Config) { c.Guide.ScrollPadding = 200 }, wantErr: "scroll_padding"},
		{name: "short window", modify: func(c *Config) { c.Guide.WindowLengthMinutes = 30 }, wantErr: "window_length_minutes"},
		{name: "lead past window", modify: func(c *Config) { c.Guide.WindowLeadMinutes = 20160 }, wantErr: "window_lead_minutes"},
		{name: "negative lead", modify: func(c *Config) { c.Guide.WindowLeadMinutes = -5 }, wantErr: "negative"},
		{name: "no types", modify: func(c *Config) { c.Guide.Types = nil }, wantErr: "broadcast type"},
		{name: "bad type", modify: func(c *Config) { c.Guide.Types = []string{"FM"} }, wantErr: "invalid broadcast type"},
		{name: "bad default type", modify: func(c *Config) { c.Guide.DefaultType = "AM" }, wantErr: "default_type"},
		{name: "no db", modify: func(c *Config) { c.Storage.DBPath = "" }, wantErr: "db_path"},
		{name: "bad level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestTerminalGeometry(t *testing.T) {
	cfg := Default()
	if got, want := cfg.TerminalGeometry(), grid.TerminalGeometry(); got != want {
		t.Errorf("default TerminalGeometry() = %+v, want %+v", got, want)
	}

	cfg.Guide.PixelsPerMinute *= 2
	cfg.Guide.ChannelWidth = 260
	g := cfg.TerminalGeometry()
	if g.PixelsPerMinute != 0.4 || g.ChannelWidth != 44 {
		t.Errorf("scaled TerminalGeometry() = %+v", g)
	}
	if g.ScrollPadding > g.BottomPadding {
		t.Errorf("scroll padding %v exceeds bottom padding %v", g.ScrollPadding, g.BottomPadding)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Guide.GapEntryTitle = "Off air"
	cfg.UI.Theme = "latte"
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Guide.GapEntryTitle != "Off air" || loaded.UI.Theme != "latte" {
		t.Errorf("round trip lost values: %+v", loaded.Guide)
	}
}
