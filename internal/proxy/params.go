package proxy

import (
	"log/slog"

	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/remote"
)

// IsParamAvailable reports whether the service build supports id.
func (p *Proxy) IsParamAvailable(id models.ParamID) bool {
	ok, _ := read(p, "IsParamAvailable", false, bind(remote.Service.IsParamAvailable, id), "id", id)
	return ok
}

func (p *Proxy) ParamMin(id models.ParamID) int {
	v, _ := read(p, "GetParamMinValue", 0, bind(remote.Service.GetParamMinValue, id), "id", id)
	return v
}

func (p *Proxy) ParamMax(id models.ParamID) int {
	v, _ := read(p, "GetParamMaxValue", 0, bind(remote.Service.GetParamMaxValue, id), "id", id)
	return v
}

func (p *Proxy) ParamDefault(id models.ParamID) int {
	v, _ := read(p, "GetParamDefaultValue", 0, bind(remote.Service.GetParamDefaultValue, id), "id", id)
	return v
}

// ParamValue returns the current value of id, or 0 when it cannot be read.
// A successful read becomes the cached baseline for later writes and
// notifications.
func (p *Proxy) ParamValue(id models.ParamID) int {
	v, _ := read(p, "GetParam", 0, p.getParam(id), "id", id)
	return v
}

func (p *Proxy) getParam(id models.ParamID) func(remote.Service) (int, error) {
	return func(svc remote.Service) (int, error) {
		v, err := svc.GetParam(id)
		if err == nil {
			p.observe(id, v)
		}
		return v, err
	}
}

// SetParam writes value to id unless the cache already holds it.
// While disconnected it does nothing, and the cache is left untouched.
// A failed write is logged and the cache keeps the new value.
func (p *Proxy) SetParam(id models.ParamID, value int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.svc == nil {
		p.notConnected("SetParam", []any{"id", id, "value", value})
		return
	}
	if !p.observe(id, value) {
		slog.Debug("proxy: value unchanged, skipping write", "id", id, "value", value)
		return
	}
	if err := p.svc.SetParam(id, value); err != nil {
		remoteFailed("SetParam", err, []any{"id", id, "value", value})
	}
}

// ApplyParam writes the current value carried by ap.
func (p *Proxy) ApplyParam(ap *models.AudioParam) {
	if ap == nil {
		return
	}
	p.SetParam(ap.ID, ap.Value)
}

// ApplyDefaultParam restores ap to its default value.
func (p *Proxy) ApplyDefaultParam(ap *models.AudioParam) {
	if ap == nil {
		return
	}
	p.SetParam(ap.ID, ap.Default)
}

// Param returns a snapshot of id, or nil when the service does not support
// it, is not bound, or the availability check fails. Fields whose read fails
// hold 0.
func (p *Proxy) Param(id models.ParamID) *models.AudioParam {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.svc == nil {
		p.notConnected("Param", []any{"id", id})
		return nil
	}
	svc := p.svc
	if !probe(svc, "IsParamAvailable", bind(remote.Service.IsParamAvailable, id), "id", id) {
		return nil
	}

	ap := &models.AudioParam{ID: id, Name: id.String()}
	ap.Min, _ = fetch(svc, "GetParamMinValue", 0, bind(remote.Service.GetParamMinValue, id), "id", id)
	ap.Max, _ = fetch(svc, "GetParamMaxValue", 0, bind(remote.Service.GetParamMaxValue, id), "id", id)
	ap.Default, _ = fetch(svc, "GetParamDefaultValue", 0, bind(remote.Service.GetParamDefaultValue, id), "id", id)
	ap.Value, _ = fetch(svc, "GetParam", 0, p.getParam(id), "id", id)
	return ap
}
