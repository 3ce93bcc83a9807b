package config

import (
	"sync"

	"github.com/roadrover/ivi-audio/internal/models"
)

// MemStore is an in-memory Store for tests that never writes to disk.
type MemStore struct {
	mu       sync.Mutex
	settings *models.Settings
}

// NewMemStore returns an empty in-memory store; Load yields DefaultSettings
// until something is saved.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns a copy of the stored settings.
func (m *MemStore) Load() (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		def := models.DefaultSettings()
		return &def, nil
	}
	cp := *m.settings
	return &cp, nil
}

// Save stores a copy of s, migrated the same way JSONStore.Load migrates.
func (m *MemStore) Save(s *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	migrateSettings(&cp)
	m.settings = &cp
	return nil
}

// Path returns ":memory:" to indicate this is an in-memory store.
func (m *MemStore) Path() string { return ":memory:" }

// Ensure MemStore implements config.Store
var _ Store = (*MemStore)(nil)
