package models

// AudioParam is a snapshot of an integer parameter and its bounds.
type AudioParam struct {
	ID      ParamID `json:"id"`
	Name    string  `json:"name"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Default int     `json:"default"`
	Value   int     `json:"value"`
}

// ChannelParam is a snapshot of a channel's pre-volume gain on one path.
type ChannelParam struct {
	Channel Channel `json:"channel"`
	Path    Path    `json:"-"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Value   float64 `json:"value"`
}

// GainRange is the bounds of a path's volume gain curve.
type GainRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// VolumeRange is the bounds of a path's volume step.
type VolumeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GainStep is the gain applied at one volume step of a path's curve.
type GainStep struct {
	Volume  int     `json:"volume"`
	Value   float64 `json:"value"`
	Default float64 `json:"default"`
}
