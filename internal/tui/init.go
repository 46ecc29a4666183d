package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/javiermolinar/bangumi/internal/config"
	"github.com/javiermolinar/bangumi/internal/db"
	"github.com/javiermolinar/bangumi/internal/epg"
)

// InitState records which storage files are absent at startup. The guide
// cannot load until the user accepts creating them.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState stats the config file and the guide database.
func DetectInitState(cfg *config.Config) (InitState, error) {
	s := InitState{ConfigPath: config.DefaultConfigPath(), DBPath: cfg.Storage.DBPath}
	var err error
	if s.ConfigMissing, err = pathMissing(s.ConfigPath); err != nil {
		return InitState{}, fmt.Errorf("checking config %s: %w", s.ConfigPath, err)
	}
	if s.DBMissing, err = pathMissing(s.DBPath); err != nil {
		return InitState{}, fmt.Errorf("checking database %s: %w", s.DBPath, err)
	}
	s.NeedsInit = s.ConfigMissing || s.DBMissing
	return s, nil
}

// pathMissing treats an empty path as missing.
func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	switch _, err := os.Stat(path); {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

// OpenRepo opens or creates the guide database, creating its directory.
func OpenRepo(dbPath string) (epg.Repository, error) {
	if dbPath == "" {
		return nil, errors.New("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening guide database: %w", err)
	}
	return repo, nil
}

// initializeStorage runs once the init prompt is accepted. It writes the
// default config when absent and installs the repository.
func (m *Model) initializeStorage() error {
	s := m.initState
	if s.ConfigMissing {
		if err := m.config.SaveTo(s.ConfigPath); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		m.logger.Info("wrote default config", "path", s.ConfigPath)
	}
	if m.repo == nil {
		repo, err := OpenRepo(s.DBPath)
		if err != nil {
			return err
		}
		m.setRepo(repo)
		m.logger.Info("opened guide database", "path", s.DBPath)
	}
	m.initState = InitState{ConfigPath: s.ConfigPath, DBPath: s.DBPath}
	return nil
}
