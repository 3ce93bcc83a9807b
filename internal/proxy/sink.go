package proxy

import (
	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/remote"
)

// sink receives notifications for one connected episode. Once the proxy
// leaves that episode the sink is invalidated and drops everything, even if
// the transport keeps calling it.
//
// Value notifications are posted only when they change the cache. Cache
// update and post happen under the cache lock, so events are posted in the
// order the cache changed.
type sink struct {
	p     *Proxy
	valid bool // guarded by p.cacheMu
}

var _ remote.Sink = (*sink)(nil)

func (s *sink) OnVolumeChanged(id models.ParamID, value int) {
	s.gate(id, value, models.VolumeChanged{ID: id, Value: value})
}

func (s *sink) OnMuteChanged(mute bool, source int) {
	s.gate(models.ParamMute, models.BoolValue(mute), models.MuteChanged{Mute: mute, Source: source})
}

func (s *sink) OnSecondaryMuteChanged(mute bool) {
	s.gate(models.ParamMuteSecondary, models.BoolValue(mute), models.SecondaryMuteChanged{Mute: mute})
}

// OnVolumeBar is a presentation signal and is always forwarded.
func (s *sink) OnVolumeBar(id models.ParamID, value, maxValue int) {
	s.p.cacheMu.Lock()
	defer s.p.cacheMu.Unlock()
	if !s.valid {
		return
	}
	s.p.bus.Post(models.VolumeBar{ID: id, Value: value, Max: maxValue})
}

func (s *sink) gate(key models.ParamID, value int, ev models.Event) {
	s.p.cacheMu.Lock()
	defer s.p.cacheMu.Unlock()
	if !s.valid {
		return
	}
	if s.p.cache.Observe(key, value) {
		s.p.bus.Post(ev)
	}
}
