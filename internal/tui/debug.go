package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/javiermolinar/bangumi/internal/config"
	"github.com/javiermolinar/bangumi/internal/nav"
)

// Log rotation limits for the guide log file.
const (
	logMaxSizeMB  = 5
	logMaxBackups = 2
	logMaxAgeDays = 14
)

// NewLogger builds the process logger. The TUI owns the terminal, so output
// goes to the configured file; with no file (and no debug flag) the logger
// discards everything. Debug forces level debug and falls back to the default
// log path. The file is opened on first write. The returned closer must be
// called on exit.
func NewLogger(cfg config.LogConfig, debug bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}
	path := cfg.File
	if debug {
		level = log.DebugLevel
		if path == "" {
			path = config.DefaultLogPath()
		}
	}
	if path == "" {
		return log.NewWithOptions(io.Discard, log.Options{Level: level}), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Formatter:       log.LogfmtFormatter,
	})
	logger.Debug("logging started", "file", path, "level", level)
	return logger, w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func logKeyPress(logger *log.Logger, mode Mode, msg tea.KeyMsg) {
	logger.Debug("key", "key", msg.String(), "mode", mode)
}

func logNavEvent(logger *log.Logger, ev nav.Event) {
	switch ev.Kind {
	case nav.EventNone:
		return
	case nav.EventBoundary:
		logger.Debug("boundary", "direction", ev.Direction, "column", ev.Column, "minute", ev.Minute)
	case nav.EventProgramSelected:
		logger.Debug("program selected", "id", ev.Program.ID, "title", ev.Program.Title)
	default:
		logger.Debug("focus", "event", ev.Kind, "column", ev.Column, "minute", ev.Minute)
	}
}
