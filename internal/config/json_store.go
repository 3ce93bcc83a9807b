package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/roadrover/ivi-audio/internal/models"
)

const configFileName = "ivi-audio.json"

// JSONStore keeps the settings in one JSON file, replaced atomically on save.
type JSONStore struct {
	mu   sync.Mutex // serializes writers
	path string
}

// NewJSONStore creates a store for the settings file in configDir.
func NewJSONStore(configDir string) *JSONStore {
	return &JSONStore{path: filepath.Join(configDir, configFileName)}
}

// Path returns the file path used by this store.
func (s *JSONStore) Path() string { return s.path }

// Exists reports whether the settings file is present on disk.
func (s *JSONStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the settings from disk. A missing or corrupt file yields
// DefaultSettings.
func (s *JSONStore) Load() (*models.Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		def := models.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}

	var st models.Settings
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("config: corrupt settings file, using defaults", "path", s.path, "err", err)
		def := models.DefaultSettings()
		return &def, nil
	}
	migrateSettings(&st)
	return &st, nil
}

// Save writes st to a temp file in the same directory and renames it over
// the settings file, so readers never see a partial file.
func (s *JSONStore) Save(st *models.Settings) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, configFileName+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

var _ Store = (*JSONStore)(nil)
