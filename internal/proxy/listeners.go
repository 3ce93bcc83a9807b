package proxy

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roadrover/ivi-audio/internal/models"
)

// AudioListener receives value notifications for volume and mute.
type AudioListener interface {
	OnVolumeChanged(id models.ParamID, value int)
	OnMuteChanged(mute bool, source int)
}

// SecondaryMuteListener may be implemented by an AudioListener to also
// receive secondary path mute changes.
type SecondaryMuteListener interface {
	OnSecondaryMuteChanged(mute bool)
}

// VolumeBarListener draws the volume bar.
type VolumeBarListener interface {
	OnShowVolumeBar(id models.ParamID, value, maxValue int)
	OnHideVolumeBar()
}

// SlotHolder identifies the current holder of a listener slot.
type SlotHolder struct {
	ID    uuid.UUID
	Owner string
	Since time.Time
}

type slots struct {
	mu        sync.Mutex
	audio     AudioListener
	audioBy   *SlotHolder
	volumeBar VolumeBarListener
	barBy     *SlotHolder
	closed    bool
}

func newHolder(owner string) *SlotHolder {
	return &SlotHolder{ID: uuid.New(), Owner: owner, Since: time.Now()}
}

// close empties both slots and refuses later registrations.
func (s *slots) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.audio, s.audioBy = nil, nil
	s.volumeBar, s.barBy = nil, nil
}

// SetAudioListener replaces the audio listener. A nil l empties the slot.
// It returns the new holder, or nil when the slot was emptied.
func (p *Proxy) SetAudioListener(owner string, l AudioListener) *SlotHolder {
	s := &p.listeners
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		slog.Warn("proxy: listener set after close ignored", "owner", owner)
		return nil
	}
	if prev := s.audioBy; prev != nil && l != nil {
		slog.Debug("proxy: audio listener replaced", "previous", prev.Owner, "owner", owner)
	}
	s.audio, s.audioBy = l, nil
	if l != nil {
		s.audioBy = newHolder(owner)
		return copyHolder(s.audioBy)
	}
	return nil
}

// SetVolumeBarListener replaces the volume-bar listener. A nil l empties the
// slot. It returns the new holder, or nil when the slot was emptied.
func (p *Proxy) SetVolumeBarListener(owner string, l VolumeBarListener) *SlotHolder {
	s := &p.listeners
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		slog.Warn("proxy: listener set after close ignored", "owner", owner)
		return nil
	}
	if prev := s.barBy; prev != nil && l != nil {
		slog.Debug("proxy: volume bar listener replaced", "previous", prev.Owner, "owner", owner)
	}
	s.volumeBar, s.barBy = l, nil
	if l != nil {
		s.barBy = newHolder(owner)
		return copyHolder(s.barBy)
	}
	return nil
}

// AudioListenerHolder returns who holds the audio listener slot, or nil.
func (p *Proxy) AudioListenerHolder() *SlotHolder {
	p.listeners.mu.Lock()
	defer p.listeners.mu.Unlock()
	return copyHolder(p.listeners.audioBy)
}

// VolumeBarListenerHolder returns who holds the volume-bar slot, or nil.
func (p *Proxy) VolumeBarListenerHolder() *SlotHolder {
	p.listeners.mu.Lock()
	defer p.listeners.mu.Unlock()
	return copyHolder(p.listeners.barBy)
}

func copyHolder(h *SlotHolder) *SlotHolder {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// route runs on the bus delivery goroutine.
func (p *Proxy) route(ev models.Event) {
	p.listeners.mu.Lock()
	audio, bar := p.listeners.audio, p.listeners.volumeBar
	p.listeners.mu.Unlock()

	switch e := ev.(type) {
	case models.VolumeChanged:
		if audio != nil {
			audio.OnVolumeChanged(e.ID, e.Value)
		}
	case models.MuteChanged:
		if audio != nil {
			audio.OnMuteChanged(e.Mute, e.Source)
		}
	case models.SecondaryMuteChanged:
		if l, ok := audio.(SecondaryMuteListener); ok {
			l.OnSecondaryMuteChanged(e.Mute)
		}
	case models.VolumeBar:
		if bar == nil {
			return
		}
		if e.Hidden() {
			bar.OnHideVolumeBar()
		} else {
			bar.OnShowVolumeBar(e.ID, e.Value, e.Max)
		}
	}
}
