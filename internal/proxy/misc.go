package proxy

import (
	"log/slog"
	"time"

	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/remote"
)

// ShowVolumeBar asks the service to show the volume bar of path.
func (p *Proxy) ShowVolumeBar(path models.Path) {
	ops, ok := lookup(path, "ShowVolumeBar")
	if !ok {
		return
	}
	p.invoke("ShowVolumeBar", ops.showVolumeBar, "path", path)
}

func (p *Proxy) HideVolumeBar() {
	p.invoke("HideVolumeBar", remote.Service.HideVolumeBar)
}

func (p *Proxy) ToggleVolumeBar() {
	p.invoke("ToggleVolumeBar", remote.Service.ToggleVolumeBar)
}

// ActiveVolumeID returns the parameter the hardware volume keys currently
// adjust. It falls back to master volume.
func (p *Proxy) ActiveVolumeID() models.ParamID {
	v, _ := read(p, "GetActiveVolumeID", models.ParamVolumeMaster, remote.Service.GetActiveVolumeID)
	return v
}

// EqGains returns the band gains of equalizer preset mode, or nil.
func (p *Proxy) EqGains(mode int) []int {
	v, _ := read(p, "GetEqGains", []int(nil), bind(remote.Service.GetEqGains, mode), "mode", mode)
	return v
}

// RequestShortMute asks the service to mute briefly, e.g. across a source
// switch. d is sent with millisecond resolution; durations under 1ms are
// ignored.
func (p *Proxy) RequestShortMute(d time.Duration) {
	ms := d.Milliseconds()
	if ms <= 0 {
		slog.Warn("proxy: short mute duration ignored", "duration", d)
		return
	}
	p.invoke("RequestInternalShortMute", func(svc remote.Service) error {
		return svc.RequestInternalShortMute(int(ms))
	}, "ms", ms)
}

// SetAnalogMediaVolumePercent scales the analog media input, 0 to 100.
func (p *Proxy) SetAnalogMediaVolumePercent(percent int) {
	p.invoke("SetAnalogMediaVolumePercent", func(svc remote.Service) error {
		return svc.SetAnalogMediaVolumePercent(percent)
	}, "percent", percent)
}

// MasterAudioChannel returns the channel routed to the primary path. It
// falls back to ChannelPC.
func (p *Proxy) MasterAudioChannel() models.Channel {
	v, _ := read(p, "GetMasterAudioChannel", models.ChannelPC, remote.Service.GetMasterAudioChannel)
	return v
}

// SetChipParam tunes a raw DSP parameter with four coefficients.
func (p *Proxy) SetChipParam(chip, param int, values [4]float64) {
	p.invoke("SetChipParam", func(svc remote.Service) error {
		return svc.SetChipParam(chip, param, values)
	}, "chip", chip, "param", param)
}

// AddExpertAudioEffect points effect at the profile file path, optionally
// applying it right away.
func (p *Proxy) AddExpertAudioEffect(effect int, path string, apply bool) {
	p.invoke("AddExpertAudioEffect", func(svc remote.Service) error {
		return svc.AddExpertAudioEffect(effect, path, apply)
	}, "effect", effect, "file", path, "apply", apply)
}

// AvailableExpertAudioEffects lists the effect ids the service supports.
// The result is never nil.
func (p *Proxy) AvailableExpertAudioEffects() []int {
	v, _ := read(p, "GetAvailableExpertAudioEffects", []int(nil), remote.Service.GetAvailableExpertAudioEffects)
	if v == nil {
		return []int{}
	}
	return v
}

// ExpertAudioEffectFile returns the profile file of effect, or "".
func (p *Proxy) ExpertAudioEffectFile(effect int) string {
	v, _ := read(p, "GetExpertAudioEffectFile", "", bind(remote.Service.GetExpertAudioEffectFile, effect), "effect", effect)
	return v
}
