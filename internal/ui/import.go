package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/bangumi/internal/epg"
)

// ErrEmptyGuide is returned when an import payload has no channels.
var ErrEmptyGuide = errors.New("guide has no channels")

// guidePayload is the upstream guide document.
type guidePayload struct {
	Channels []epg.ChannelPrograms `json:"channels"`
}

// guideWriter is the part of the repository an import writes to.
type guideWriter interface {
	UpsertChannel(ctx context.Context, ch epg.Channel) error
	UpsertPrograms(ctx context.Context, programs []epg.RawProgram) error
}

// importOptions controls how invalid entries are handled.
type importOptions struct {
	SkipInvalid bool // drop programs with unusable times instead of failing
}

// importResult summarizes an import.
type importResult struct {
	Channels int
	Programs int
	Skipped  int
}

func (a *App) importCmd() *cobra.Command {
	var (
		prune       bool
		skipInvalid bool
	)

	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Import a guide from a JSON file",
		Long: `Import channels and programs from an upstream guide document.

The file holds {"channels":[{"channel":{...},"programs":[...]}]}.
Existing channels and programs with the same id are replaced.
Use "-" to read from standard input.`,
		Example: `  bangumi import guide.json
  bangumi import guide.json --prune
  curl -s https://example.com/guide.json | bangumi import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			r, name, err := openGuide(cmd, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = r.Close() }()

			ctx := cmd.Context()
			result, err := importGuide(ctx, a.repo, r, importOptions{SkipInvalid: skipInvalid})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d channels and %d programs from %s\n", result.Channels, result.Programs, name)
			if result.Skipped > 0 {
				fmt.Fprintln(out, formatMuted(fmt.Sprintf("Skipped %d programs with invalid times", result.Skipped)))
			}

			if prune {
				n, err := a.repo.DeleteProgramsBefore(ctx, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Pruned %d finished programs\n", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Delete programs that already ended")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Skip programs with invalid times instead of failing")

	return cmd
}

// openGuide opens the guide file, or standard input for "-".
func openGuide(cmd *cobra.Command, arg string) (io.ReadCloser, string, error) {
	if arg == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	path, err := resolvePath(arg)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("guide file does not exist: %s", path)
		}
		return nil, "", fmt.Errorf("opening guide file: %w", err)
	}
	return f, path, nil
}

// importGuide decodes a guide document and stores its channels and programs.
// Programs without a channel id inherit the enclosing channel's id.
func importGuide(ctx context.Context, dest guideWriter, r io.Reader, opts importOptions) (importResult, error) {
	var payload guidePayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return importResult{}, fmt.Errorf("decoding guide: %w", err)
	}
	if len(payload.Channels) == 0 {
		return importResult{}, ErrEmptyGuide
	}

	var result importResult
	for _, cp := range payload.Channels {
		ch := cp.Channel
		ch.Type = epg.ParseType(string(ch.Type))
		if err := dest.UpsertChannel(ctx, ch); err != nil {
			return result, fmt.Errorf("importing channel %q: %w", ch.ID, err)
		}
		result.Channels++

		programs := make([]epg.RawProgram, 0, len(cp.Programs))
		for _, p := range cp.Programs {
			if p.ChannelID == "" {
				p.ChannelID = ch.ID
			}
			if p.ChannelID != ch.ID {
				return result, fmt.Errorf("program %q belongs to %q, listed under %q", p.ID, p.ChannelID, ch.ID)
			}
			if _, ok := epg.Parse(p); !ok && opts.SkipInvalid {
				result.Skipped++
				continue
			}
			programs = append(programs, p)
		}
		if err := dest.UpsertPrograms(ctx, programs); err != nil {
			return result, fmt.Errorf("importing programs of %q: %w", ch.ID, err)
		}
		result.Programs += len(programs)
	}
	return result, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
