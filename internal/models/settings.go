package models

// Bus names accepted in Settings.Bus.
const (
	BusSystem  = "system"
	BusSession = "session"
)

// Settings is the daemon configuration persisted in the config directory.
type Settings struct {
	Bus         string `json:"bus"`
	ServiceName string `json:"service_name"`
	ObjectPath  string `json:"object_path"`

	HTTPAddr  string `json:"http_addr"`
	Advertise bool   `json:"advertise"`

	EffectsDir   string `json:"effects_dir"`
	ApplyEffects bool   `json:"apply_effects"`

	ReconnectIntervalMS int `json:"reconnect_interval_ms"`
	ReconnectBurst      int `json:"reconnect_burst"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Bus:                 BusSystem,
		ServiceName:         "com.roadrover.services.Audio",
		ObjectPath:          "/com/roadrover/services/Audio",
		HTTPAddr:            ":8470",
		Advertise:           true,
		EffectsDir:          "/var/lib/ivi-audio/effects",
		ApplyEffects:        false,
		ReconnectIntervalMS: 2000,
		ReconnectBurst:      3,
	}
}
