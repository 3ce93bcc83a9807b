// Package config loads and saves the daemon settings.
package config

import "github.com/roadrover/ivi-audio/internal/models"

// Store is the interface for persisting settings.
type Store interface {
	// Load loads the settings. Returns DefaultSettings if no file exists.
	Load() (*models.Settings, error)

	// Save persists the settings before returning.
	Save(s *models.Settings) error

	// Path returns the file path used by this store.
	Path() string
}
