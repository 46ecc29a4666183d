package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bangumi/internal/config"
	"github.com/javiermolinar/bangumi/internal/epg"
	"github.com/javiermolinar/bangumi/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  bangumi config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	editConfig(reader, out, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

// editConfig prompts for each editable field, keeping the current value on
// empty input.
func editConfig(reader *bufio.Reader, out io.Writer, cfg *config.Config) {
	g := &cfg.Guide
	g.PixelsPerMinute = promptFloat(reader, out, "Pixels per minute", g.PixelsPerMinute)
	g.ChannelWidth = promptFloat(reader, out, "Channel width", g.ChannelWidth)
	g.WindowLengthMinutes = promptInt(reader, out, "Window length (minutes)", g.WindowLengthMinutes)
	g.WindowLeadMinutes = promptInt(reader, out, "Window lead (minutes before now)", g.WindowLeadMinutes)
	g.GapEntryTitle = promptValue(reader, out, "Filler entry title", g.GapEntryTitle)
	g.Types = promptTypes(reader, out, "Enabled types (comma-separated)", g.Types)
	g.DefaultType = string(epg.ParseType(promptValue(reader, out, "Default type", g.DefaultType)))
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, out, "Log level (debug, info, warn, error)", cfg.Log.Level)
	cfg.Log.File = promptValue(reader, out, "Log file (empty to disable)", cfg.Log.File)
}

func printConfig(out io.Writer, cfg *config.Config) {
	g := cfg.Guide
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[guide]")
	fmt.Fprintf(out, "  pixels_per_minute     = %g\n", g.PixelsPerMinute)
	fmt.Fprintf(out, "  channel_width         = %g\n", g.ChannelWidth)
	fmt.Fprintf(out, "  time_bar_width        = %g\n", g.TimeBarWidth)
	fmt.Fprintf(out, "  header_height         = %g\n", g.HeaderHeight)
	fmt.Fprintf(out, "  min_expanded_height   = %g\n", g.MinExpandedHeight)
	fmt.Fprintf(out, "  bottom_padding        = %g\n", g.BottomPadding)
	fmt.Fprintf(out, "  scroll_padding        = %g\n", g.ScrollPadding)
	fmt.Fprintf(out, "  window_length_minutes = %d\n", g.WindowLengthMinutes)
	fmt.Fprintf(out, "  window_lead_minutes   = %d\n", g.WindowLeadMinutes)
	fmt.Fprintf(out, "  gap_entry_title       = %s\n", g.GapEntryTitle)
	fmt.Fprintf(out, "  default_type          = %s\n", g.DefaultType)
	fmt.Fprintf(out, "  types                 = %s\n", strings.Join(g.Types, ", "))
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path               = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme                 = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level                 = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  file                  = %s\n", cfg.Log.File)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptFloat(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTypes(reader *bufio.Reader, out io.Writer, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	for {
		input := promptValue(reader, out, label, currentStr)
		if input == currentStr {
			return current
		}
		var result []string
		valid := true
		for _, p := range strings.Split(input, ",") {
			t := epg.ParseType(p)
			if t == "" {
				continue
			}
			if !t.IsValid() {
				fmt.Fprintf(out, "  Invalid type %q\n", p)
				valid = false
				break
			}
			result = append(result, string(t))
		}
		if valid && len(result) > 0 {
			return result
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
