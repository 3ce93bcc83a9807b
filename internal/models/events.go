package models

// EventKind names an outward event type on the bus and in the SSE stream.
type EventKind string

const (
	KindVolumeChanged        EventKind = "volume-changed"
	KindMuteChanged          EventKind = "mute-changed"
	KindVolumeBar            EventKind = "volume-bar"
	KindSecondaryMuteChanged EventKind = "secondary-mute-changed"
)

// Event is an immutable notification posted by the proxy.
type Event interface {
	Kind() EventKind
}

// VolumeChanged reports a new value for an integer parameter.
type VolumeChanged struct {
	ID    ParamID `json:"id"`
	Value int     `json:"value"`
}

func (VolumeChanged) Kind() EventKind { return KindVolumeChanged }

// MuteChanged reports a change of the primary mute state.
type MuteChanged struct {
	Mute   bool `json:"mute"`
	Source int  `json:"source"`
}

func (MuteChanged) Kind() EventKind { return KindMuteChanged }

// VolumeBar asks the UI to show (or, when ID is ParamNone, hide) the volume bar.
type VolumeBar struct {
	ID    ParamID `json:"id"`
	Value int     `json:"value"`
	Max   int     `json:"max"`
}

func (VolumeBar) Kind() EventKind { return KindVolumeBar }

// Hidden reports whether the event hides the volume bar.
func (e VolumeBar) Hidden() bool { return e.ID == ParamNone }

// SecondaryMuteChanged reports a change of the secondary path mute state.
type SecondaryMuteChanged struct {
	Mute bool `json:"mute"`
}

func (SecondaryMuteChanged) Kind() EventKind { return KindSecondaryMuteChanged }

// Envelope is the JSON shape of an event in the SSE stream.
type Envelope struct {
	Type EventKind `json:"type"`
	Data Event     `json:"data"`
}

// Wrap packs an event for the wire.
func Wrap(ev Event) Envelope {
	return Envelope{Type: ev.Kind(), Data: ev}
}
