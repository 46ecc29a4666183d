// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/grid"
)

// Config holds the application configuration.
type Config struct {
	Guide   GuideConfig   `toml:"guide"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// GuideConfig holds the grid geometry and time window. Sizes are in pixels;
// the terminal front-end scales them down to character cells.
type GuideConfig struct {
	PixelsPerMinute     float64  `toml:"pixels_per_minute"`
	ChannelWidth        float64  `toml:"channel_width"`
	TimeBarWidth        float64  `toml:"time_bar_width"`
	HeaderHeight        float64  `toml:"header_height"`
	MinExpandedHeight   float64  `toml:"min_expanded_height"`
	BottomPadding       float64  `toml:"bottom_padding"`
	ScrollPadding       float64  `toml:"scroll_padding"`
	WindowLengthMinutes int      `toml:"window_length_minutes"` // e.g. 20160 for 14 days
	WindowLeadMinutes   int      `toml:"window_lead_minutes"`   // how far before now the grid starts
	GapEntryTitle       string   `toml:"gap_entry_title"`
	DefaultType         string   `toml:"default_type"` // "GR", "BS", "CS", "BS4K", "SKY"
	Types               []string `toml:"types"`        // enabled tabs
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // rotated log file, created on first write
}

// Default returns the default configuration.
func Default() *Config {
	g := grid.DefaultGeometry()
	return &Config{
		Guide: GuideConfig{
			PixelsPerMinute:     g.PixelsPerMinute,
			ChannelWidth:        g.ChannelWidth,
			TimeBarWidth:        g.TimeBarWidth,
			HeaderHeight:        g.HeaderHeight,
			MinExpandedHeight:   g.MinExpandedHeight,
			BottomPadding:       g.BottomPadding,
			ScrollPadding:       g.ScrollPadding,
			WindowLengthMinutes: 14 * 24 * 60,
			WindowLeadMinutes:   120,
			GapEntryTitle:       epg.DefaultGapTitle,
			DefaultType:         string(epg.TypeTerrestrial),
			Types:               typeNames(epg.AllTypes()),
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "warn",
			File:  DefaultLogPath(),
		},
	}
}

func typeNames(types []epg.BroadcastType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bangumi.db"
	}
	return filepath.Join(home, ".local", "share", "bangumi", "bangumi.db")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bangumi.log"
	}
	return filepath.Join(home, ".local", "state", "bangumi", "bangumi.log")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "bangumi", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Guide.DefaultType = strings.ToUpper(cfg.Guide.DefaultType)
	for i, t := range cfg.Guide.Types {
		cfg.Guide.Types[i] = strings.ToUpper(strings.TrimSpace(t))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	floats := []struct {
		env string
		dst *float64
	}{
		{"BANGUMI_PIXELS_PER_MINUTE", &cfg.Guide.PixelsPerMinute},
		{"BANGUMI_MIN_EXPANDED_HEIGHT", &cfg.Guide.MinExpandedHeight},
		{"BANGUMI_BOTTOM_PADDING", &cfg.Guide.BottomPadding},
		{"BANGUMI_SCROLL_PADDING", &cfg.Guide.ScrollPadding},
	}
	for _, f := range floats {
		if v := os.Getenv(f.env); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", f.env, err)
			}
			*f.dst = n
		}
	}
	if v := os.Getenv("BANGUMI_WINDOW_LENGTH_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BANGUMI_WINDOW_LENGTH_MINUTES: %w", err)
		}
		cfg.Guide.WindowLengthMinutes = n
	}
	if v := os.Getenv("BANGUMI_GAP_ENTRY_TITLE"); v != "" {
		cfg.Guide.GapEntryTitle = v
	}
	if v := os.Getenv("BANGUMI_DEFAULT_TYPE"); v != "" {
		cfg.Guide.DefaultType = v
	}
	if v := os.Getenv("BANGUMI_TYPES"); v != "" {
		cfg.Guide.Types = strings.Split(v, ",")
	}
	if v := os.Getenv("BANGUMI_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("BANGUMI_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("BANGUMI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BANGUMI_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Geometry().Valid() {
		return errors.New("pixels_per_minute and channel_width must be positive")
	}
	if c.Guide.MinExpandedHeight < 0 || c.Guide.BottomPadding < 0 || c.Guide.ScrollPadding < 0 {
		return errors.New("min_expanded_height and paddings must not be negative")
	}
	if c.Guide.ScrollPadding > c.Guide.BottomPadding {
		return errors.New("scroll_padding must not exceed bottom_padding")
	}
	if c.Guide.WindowLengthMinutes < 60 {
		return errors.New("window_length_minutes must be at least 60")
	}
	if c.Guide.WindowLeadMinutes < 0 {
		return errors.New("window_lead_minutes must not be negative")
	}
	if c.Guide.WindowLeadMinutes >= c.Guide.WindowLengthMinutes {
		return errors.New("window_lead_minutes must be shorter than window_length_minutes")
	}
	if len(c.Guide.Types) == 0 {
		return errors.New("at least one broadcast type must be enabled")
	}
	for _, t := range c.Guide.Types {
		if !epg.BroadcastType(t).IsValid() {
			return fmt.Errorf("invalid broadcast type: %s", t)
		}
	}
	if !epg.BroadcastType(c.Guide.DefaultType).IsValid() {
		return fmt.Errorf("invalid default_type: %s", c.Guide.DefaultType)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// Geometry returns the pixel geometry described by the guide section.
func (c *Config) Geometry() grid.Geometry {
	return grid.Geometry{
		PixelsPerMinute:   c.Guide.PixelsPerMinute,
		ChannelWidth:      c.Guide.ChannelWidth,
		TimeBarWidth:      c.Guide.TimeBarWidth,
		HeaderHeight:      c.Guide.HeaderHeight,
		MinExpandedHeight: c.Guide.MinExpandedHeight,
		BottomPadding:     c.Guide.BottomPadding,
		ScrollPadding:     c.Guide.ScrollPadding,
	}
}

// TerminalGeometry returns the character-cell geometry, scaled by how far the
// guide section departs from the default pixel geometry.
func (c *Config) TerminalGeometry() grid.Geometry {
	def := grid.DefaultGeometry()
	g := grid.TerminalGeometry()
	g.PixelsPerMinute *= c.Guide.PixelsPerMinute / def.PixelsPerMinute
	g.ChannelWidth = math.Max(8, math.Round(g.ChannelWidth*c.Guide.ChannelWidth/def.ChannelWidth))
	g.MinExpandedHeight = math.Round(g.MinExpandedHeight * c.Guide.MinExpandedHeight / def.MinExpandedHeight)
	g.BottomPadding = math.Round(g.BottomPadding * c.Guide.BottomPadding / def.BottomPadding)
	g.ScrollPadding = math.Min(math.Round(g.ScrollPadding*c.Guide.ScrollPadding/def.ScrollPadding), g.BottomPadding)
	return g
}

// EnabledTypes returns the enabled broadcast types in configured order.
func (c *Config) EnabledTypes() []epg.BroadcastType {
	out := make([]epg.BroadcastType, 0, len(c.Guide.Types))
	for _, t := range c.Guide.Types {
		out = append(out, epg.BroadcastType(t))
	}
	return out
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
