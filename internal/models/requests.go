package models

// ParamUpdate is the PATCH body for an integer parameter.
// Default takes precedence over Value.
type ParamUpdate struct {
	Value   *int `json:"value,omitempty"`
	Default bool `json:"default,omitempty"`
}

// MuteUpdate is the PATCH body for a path's mute state.
type MuteUpdate struct {
	Mute *bool `json:"mute"`
}

// GainUpdate is the PATCH body for a channel gain or a volume gain step.
type GainUpdate struct {
	Value   *float64 `json:"value,omitempty"`
	Default bool     `json:"default,omitempty"`
}

// ShortMuteRequest asks the service to mute briefly, e.g. around a source switch.
type ShortMuteRequest struct {
	DurationMS int `json:"duration_ms"`
}

// PercentUpdate carries the analog media volume scaling.
type PercentUpdate struct {
	Percent *int `json:"percent"`
}

// ChipParamRequest tunes one DSP chip parameter.
type ChipParamRequest struct {
	Chip   int        `json:"chip"`
	Param  int        `json:"param"`
	Values [4]float64 `json:"values"`
}

// EffectUpdate points an expert effect at a profile file.
type EffectUpdate struct {
	Path  string `json:"path"`
	Apply bool   `json:"apply"`
}

// EffectInfo describes one expert effect and its current profile.
type EffectInfo struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
}

// SlotInfo describes the holder of a listener slot.
type SlotInfo struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Since string `json:"since"`
}

// Status is the GET /api/status response.
type Status struct {
	State             string    `json:"state"`
	CachedParams      int       `json:"cached_params"`
	AudioListener     *SlotInfo `json:"audio_listener,omitempty"`
	VolumeBarListener *SlotInfo `json:"volume_bar_listener,omitempty"`
}

// ParamValue is the GET /api/params/{id}/value response.
type ParamValue struct {
	ID    ParamID `json:"id"`
	Value int     `json:"value"`
}

// MuteState is the GET /api/paths/{path}/mute response.
type MuteState struct {
	Path string `json:"path"`
	Mute bool   `json:"mute"`
}

// ActiveVolume names the parameter the volume keys currently adjust.
type ActiveVolume struct {
	ID   ParamID `json:"id"`
	Name string  `json:"name"`
}

// EqPreset is the band gains of one equalizer mode.
type EqPreset struct {
	Mode  int   `json:"mode"`
	Gains []int `json:"gains"`
}

// MasterChannel is the channel routed to the primary path.
type MasterChannel struct {
	Channel Channel `json:"channel"`
	Name    string  `json:"name"`
}
