package api

import (
	"net/http"

	"github.com/roadrover/ivi-audio/internal/models"
)

func (h *Handlers) getMute(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.MuteState{Path: path.String(), Mute: h.audio.Mute(path)})
}

func (h *Handlers) setMute(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var upd models.MuteUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if upd.Mute == nil {
		writeError(w, models.ErrFieldRequired("mute"))
		return
	}
	h.audio.SetMute(path, *upd.Mute)
	writeJSON(w, http.StatusOK, models.MuteState{Path: path.String(), Mute: h.audio.Mute(path)})
}

func (h *Handlers) getVolumeRange(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.VolumeRange{Min: h.audio.VolumeMin(path), Max: h.audio.VolumeMax(path)})
}

// lookupChannel resolves {path} and {ch} to a channel available on that path.
func (h *Handlers) lookupChannel(r *http.Request) (*models.ChannelParam, error) {
	path, err := pathParam(r)
	if err != nil {
		return nil, err
	}
	n, err := intParam(r, "ch")
	if err != nil {
		return nil, err
	}
	ch := models.Channel(n)
	cp := h.audio.Channel(path, ch)
	if cp == nil {
		return nil, models.ErrNotFound("channel " + ch.String() + " not available on " + path.String() + " path")
	}
	return cp, nil
}

func (h *Handlers) getChannel(w http.ResponseWriter, r *http.Request) {
	cp, err := h.lookupChannel(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

func (h *Handlers) setChannel(w http.ResponseWriter, r *http.Request) {
	var upd models.GainUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if !upd.Default && upd.Value == nil {
		writeError(w, models.ErrFieldRequired("value"))
		return
	}
	cp, err := h.lookupChannel(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if upd.Default {
		h.audio.ApplyDefaultChannel(cp)
	} else {
		if v := *upd.Value; v < cp.Min || v > cp.Max {
			writeError(w, models.ErrBadRequest("value out of range"))
			return
		}
		cp.Value = *upd.Value
		h.audio.ApplyChannel(cp)
	}
	writeJSON(w, http.StatusOK, h.audio.Channel(cp.Path, cp.Channel))
}

func (h *Handlers) resetChannels(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.audio.ResetChannels(path)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getGainRange(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !h.audio.IsDeviceAvailable(path) {
		writeError(w, models.ErrNotFound("no audio device on "+path.String()+" path"))
		return
	}
	writeJSON(w, http.StatusOK, models.GainRange{Min: h.audio.GainMin(path), Max: h.audio.GainMax(path)})
}

// gainStepParams resolves {path} and {vol} against the path's volume range.
func (h *Handlers) gainStepParams(r *http.Request) (models.Path, int, error) {
	path, err := pathParam(r)
	if err != nil {
		return 0, 0, err
	}
	vol, err := intParam(r, "vol")
	if err != nil {
		return 0, 0, err
	}
	if vol < h.audio.VolumeMin(path) || vol > h.audio.VolumeMax(path) {
		return 0, 0, models.ErrNotFound("volume step out of range")
	}
	return path, vol, nil
}

func (h *Handlers) gainStep(path models.Path, vol int) models.GainStep {
	return models.GainStep{
		Volume:  vol,
		Value:   h.audio.GainValue(path, vol),
		Default: h.audio.GainDefault(path, vol),
	}
}

func (h *Handlers) getGainStep(w http.ResponseWriter, r *http.Request) {
	path, vol, err := h.gainStepParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.gainStep(path, vol))
}

func (h *Handlers) setGainStep(w http.ResponseWriter, r *http.Request) {
	var upd models.GainUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if !upd.Default && upd.Value == nil {
		writeError(w, models.ErrFieldRequired("value"))
		return
	}
	path, vol, err := h.gainStepParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	value := h.audio.GainDefault(path, vol)
	if !upd.Default {
		value = *upd.Value
	}
	h.audio.SetGain(path, vol, value)
	writeJSON(w, http.StatusOK, h.gainStep(path, vol))
}

func (h *Handlers) resetGain(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.audio.ResetGain(path)
	w.WriteHeader(http.StatusNoContent)
}
