package proxy

import (
	"log/slog"

	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/remote"
)

// pathOps holds the service entry points and cache keys of one audio path.
type pathOps struct {
	mute models.ParamID

	channelAvailable func(remote.Service, models.Channel) (bool, error)
	channelMin       func(remote.Service, models.Channel) (float64, error)
	channelMax       func(remote.Service, models.Channel) (float64, error)
	channelDefault   func(remote.Service, models.Channel) (float64, error)
	channelValue     func(remote.Service, models.Channel) (float64, error)
	setChannel       func(remote.Service, models.Channel, float64) error
	resetChannels    func(remote.Service) error

	deviceAvailable func(remote.Service) (bool, error)
	gainMin         func(remote.Service) (float64, error)
	gainMax         func(remote.Service) (float64, error)
	gainDefault     func(remote.Service, int) (float64, error)
	gainValue       func(remote.Service, int) (float64, error)
	setGain         func(remote.Service, int, float64) error
	resetGain       func(remote.Service) error

	volumeMin func(remote.Service) (int, error)
	volumeMax func(remote.Service) (int, error)

	showVolumeBar func(remote.Service) error
}

var pathTable = [...]pathOps{
	models.PathPrimary: {
		mute: models.ParamMute,

		channelAvailable: remote.Service.IsBuildInPreVolumeAvailable,
		channelMin:       remote.Service.GetBuildInPreVolumeMinValue,
		channelMax:       remote.Service.GetBuildInPreVolumeMaxValue,
		channelDefault:   remote.Service.GetBuildInPreVolumeDefaultValue,
		channelValue:     remote.Service.GetBuildInPreVolumeValue,
		setChannel:       remote.Service.SetBuildInPreVolumeValue,
		resetChannels:    remote.Service.ResetBuildInPreVolumeValue,

		deviceAvailable: remote.Service.IsMasterAudioDeviceAvailable,
		gainMin:         remote.Service.GetMasterVolumeGainMinValue,
		gainMax:         remote.Service.GetMasterVolumeGainMaxValue,
		gainDefault:     remote.Service.GetMasterVolumeGainDefaultValue,
		gainValue:       remote.Service.GetMasterVolumeGainValue,
		setGain:         remote.Service.SetMasterVolumeGainValue,
		resetGain:       remote.Service.ResetMasterVolumeGainValue,

		volumeMin: remote.Service.GetMasterVolumeMin,
		volumeMax: remote.Service.GetMasterVolumeMax,

		showVolumeBar: remote.Service.ShowVolumeBar,
	},
	models.PathSecondary: {
		mute: models.ParamMuteSecondary,

		channelAvailable: remote.Service.IsSecondaryBuildInPreVolumeAvailable,
		channelMin:       remote.Service.GetSecondaryBuildInPreVolumeMinValue,
		channelMax:       remote.Service.GetSecondaryBuildInPreVolumeMaxValue,
		channelDefault:   remote.Service.GetSecondaryBuildInPreVolumeDefaultValue,
		channelValue:     remote.Service.GetSecondaryBuildInPreVolumeValue,
		setChannel:       remote.Service.SetSecondaryBuildInPreVolumeValue,
		resetChannels:    remote.Service.ResetSecondaryBuildInPreVolumeValue,

		deviceAvailable: remote.Service.IsSecondaryAudioDeviceAvailable,
		gainMin:         remote.Service.GetSecondaryVolumeGainMinValue,
		gainMax:         remote.Service.GetSecondaryVolumeGainMaxValue,
		gainDefault:     remote.Service.GetSecondaryVolumeGainDefaultValue,
		gainValue:       remote.Service.GetSecondaryVolumeGainValue,
		setGain:         remote.Service.SetSecondaryVolumeGainValue,
		resetGain:       remote.Service.ResetSecondaryVolumeGainValue,

		volumeMin: remote.Service.GetSecondaryVolumeMin,
		volumeMax: remote.Service.GetSecondaryVolumeMax,

		showVolumeBar: remote.Service.ShowSecondaryVolumeBar,
	},
}

func lookup(path models.Path, op string) (*pathOps, bool) {
	if !path.Valid() {
		slog.Warn("proxy: unknown audio path", "op", op, "path", path)
		return nil, false
	}
	return &pathTable[path], true
}

// Mute reports whether path is muted. It reads through ParamValue, so the
// result warms the path's mute cache key.
func (p *Proxy) Mute(path models.Path) bool {
	ops, ok := lookup(path, "Mute")
	if !ok {
		return false
	}
	return p.ParamValue(ops.mute) != 0
}

// SetMute mutes or unmutes path with the same elision rules as SetParam.
func (p *Proxy) SetMute(path models.Path, mute bool) {
	ops, ok := lookup(path, "SetMute")
	if !ok {
		return
	}
	p.SetParam(ops.mute, models.BoolValue(mute))
}

// Channel pre-volume gains.

func (p *Proxy) IsChannelAvailable(path models.Path, ch models.Channel) bool {
	ops, ok := lookup(path, "IsChannelAvailable")
	if !ok {
		return false
	}
	v, _ := read(p, "IsChannelAvailable", false, bind(ops.channelAvailable, ch), "path", path, "channel", ch)
	return v
}

func (p *Proxy) ChannelMin(path models.Path, ch models.Channel) float64 {
	return p.channelFloat(path, ch, "ChannelMin", func(o *pathOps) func(remote.Service, models.Channel) (float64, error) {
		return o.channelMin
	})
}

func (p *Proxy) ChannelMax(path models.Path, ch models.Channel) float64 {
	return p.channelFloat(path, ch, "ChannelMax", func(o *pathOps) func(remote.Service, models.Channel) (float64, error) {
		return o.channelMax
	})
}

func (p *Proxy) ChannelDefault(path models.Path, ch models.Channel) float64 {
	return p.channelFloat(path, ch, "ChannelDefault", func(o *pathOps) func(remote.Service, models.Channel) (float64, error) {
		return o.channelDefault
	})
}

// ChannelValue returns the current pre-volume gain of ch. Gains are not
// cached.
func (p *Proxy) ChannelValue(path models.Path, ch models.Channel) float64 {
	return p.channelFloat(path, ch, "ChannelValue", func(o *pathOps) func(remote.Service, models.Channel) (float64, error) {
		return o.channelValue
	})
}

func (p *Proxy) channelFloat(path models.Path, ch models.Channel, op string, pick func(*pathOps) func(remote.Service, models.Channel) (float64, error)) float64 {
	ops, ok := lookup(path, op)
	if !ok {
		return 0
	}
	v, _ := read(p, op, 0, bind(pick(ops), ch), "path", path, "channel", ch)
	return v
}

// SetChannel writes the pre-volume gain of ch. Every call reaches the
// service.
func (p *Proxy) SetChannel(path models.Path, ch models.Channel, value float64) {
	ops, ok := lookup(path, "SetChannel")
	if !ok {
		return
	}
	p.invoke("SetChannel", func(svc remote.Service) error {
		return ops.setChannel(svc, ch, value)
	}, "path", path, "channel", ch, "value", value)
}

// ResetChannels restores every channel gain of path to its default.
func (p *Proxy) ResetChannels(path models.Path) {
	ops, ok := lookup(path, "ResetChannels")
	if !ok {
		return
	}
	p.invoke("ResetChannels", ops.resetChannels, "path", path)
}

// ApplyChannel writes the value carried by cp on its own path.
func (p *Proxy) ApplyChannel(cp *models.ChannelParam) {
	if cp == nil {
		return
	}
	p.SetChannel(cp.Path, cp.Channel, cp.Value)
}

// ApplyDefaultChannel restores cp to its default gain.
func (p *Proxy) ApplyDefaultChannel(cp *models.ChannelParam) {
	if cp == nil {
		return
	}
	p.SetChannel(cp.Path, cp.Channel, cp.Default)
}

// Channel returns a snapshot of ch on path, or nil when the channel is not
// available there, the service is not bound, or the availability check
// fails. Fields whose read fails hold 0.
func (p *Proxy) Channel(path models.Path, ch models.Channel) *models.ChannelParam {
	ops, ok := lookup(path, "Channel")
	if !ok {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.svc == nil {
		p.notConnected("Channel", []any{"path", path, "channel", ch})
		return nil
	}
	svc := p.svc
	if !probe(svc, "IsChannelAvailable", bind(ops.channelAvailable, ch), "path", path, "channel", ch) {
		return nil
	}

	cp := &models.ChannelParam{Channel: ch, Path: path}
	cp.Min, _ = fetch(svc, "ChannelMin", 0, bind(ops.channelMin, ch), "path", path, "channel", ch)
	cp.Max, _ = fetch(svc, "ChannelMax", 0, bind(ops.channelMax, ch), "path", path, "channel", ch)
	cp.Default, _ = fetch(svc, "ChannelDefault", 0, bind(ops.channelDefault, ch), "path", path, "channel", ch)
	cp.Value, _ = fetch(svc, "ChannelValue", 0, bind(ops.channelValue, ch), "path", path, "channel", ch)
	return cp
}

// Output device and volume gain curve.

// IsDeviceAvailable reports whether the output device of path is present.
func (p *Proxy) IsDeviceAvailable(path models.Path) bool {
	ops, ok := lookup(path, "IsDeviceAvailable")
	if !ok {
		return false
	}
	v, _ := read(p, "IsDeviceAvailable", false, ops.deviceAvailable, "path", path)
	return v
}

func (p *Proxy) GainMin(path models.Path) float64 {
	ops, ok := lookup(path, "GainMin")
	if !ok {
		return 0
	}
	v, _ := read(p, "GainMin", 0, ops.gainMin, "path", path)
	return v
}

func (p *Proxy) GainMax(path models.Path) float64 {
	ops, ok := lookup(path, "GainMax")
	if !ok {
		return 0
	}
	v, _ := read(p, "GainMax", 0, ops.gainMax, "path", path)
	return v
}

// GainDefault returns the default gain applied at volume step vol.
func (p *Proxy) GainDefault(path models.Path, vol int) float64 {
	ops, ok := lookup(path, "GainDefault")
	if !ok {
		return 0
	}
	v, _ := read(p, "GainDefault", 0, bind(ops.gainDefault, vol), "path", path, "volume", vol)
	return v
}

// GainValue returns the gain currently applied at volume step vol.
func (p *Proxy) GainValue(path models.Path, vol int) float64 {
	ops, ok := lookup(path, "GainValue")
	if !ok {
		return 0
	}
	v, _ := read(p, "GainValue", 0, bind(ops.gainValue, vol), "path", path, "volume", vol)
	return v
}

func (p *Proxy) SetGain(path models.Path, vol int, value float64) {
	ops, ok := lookup(path, "SetGain")
	if !ok {
		return
	}
	p.invoke("SetGain", func(svc remote.Service) error {
		return ops.setGain(svc, vol, value)
	}, "path", path, "volume", vol, "value", value)
}

// ResetGain restores the whole gain curve of path.
func (p *Proxy) ResetGain(path models.Path) {
	ops, ok := lookup(path, "ResetGain")
	if !ok {
		return
	}
	p.invoke("ResetGain", ops.resetGain, "path", path)
}

func (p *Proxy) VolumeMin(path models.Path) int {
	ops, ok := lookup(path, "VolumeMin")
	if !ok {
		return 0
	}
	v, _ := read(p, "VolumeMin", 0, ops.volumeMin, "path", path)
	return v
}

func (p *Proxy) VolumeMax(path models.Path) int {
	ops, ok := lookup(path, "VolumeMax")
	if !ok {
		return 0
	}
	v, _ := read(p, "VolumeMax", 0, ops.volumeMax, "path", path)
	return v
}
