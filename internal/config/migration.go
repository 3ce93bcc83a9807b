package config

import (
	"log/slog"
	"strings"

	"github.com/roadrover/ivi-audio/internal/models"
)

// migrateSettings fills in defaults for fields missing from older config
// files and repairs values the daemon cannot use.
func migrateSettings(s *models.Settings) {
	def := models.DefaultSettings()

	switch strings.ToLower(s.Bus) {
	case models.BusSystem, models.BusSession:
		s.Bus = strings.ToLower(s.Bus)
	case "":
		s.Bus = def.Bus
	default:
		slog.Warn("config: unknown bus, using default", "bus", s.Bus, "default", def.Bus)
		s.Bus = def.Bus
	}

	if s.ServiceName == "" {
		s.ServiceName = def.ServiceName
	}
	if s.ObjectPath == "" || !strings.HasPrefix(s.ObjectPath, "/") {
		if s.ObjectPath != "" {
			slog.Warn("config: invalid object path, using default", "path", s.ObjectPath)
		}
		s.ObjectPath = def.ObjectPath
	}
	if s.HTTPAddr == "" {
		s.HTTPAddr = def.HTTPAddr
	}
	if s.EffectsDir == "" {
		s.EffectsDir = def.EffectsDir
	}

	if s.ReconnectIntervalMS <= 0 {
		if s.ReconnectIntervalMS < 0 {
			slog.Warn("config: invalid reconnect interval, fixing", "ms", s.ReconnectIntervalMS)
		}
		s.ReconnectIntervalMS = def.ReconnectIntervalMS
	}
	if s.ReconnectBurst <= 0 {
		if s.ReconnectBurst < 0 {
			slog.Warn("config: invalid reconnect burst, fixing", "burst", s.ReconnectBurst)
		}
		s.ReconnectBurst = def.ReconnectBurst
	}
}
