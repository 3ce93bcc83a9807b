package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roadrover/ivi-audio/internal/models"
)

const maxShortMute = 10 * time.Second

func (h *Handlers) volumeBarCmd(w http.ResponseWriter, r *http.Request) {
	switch cmd := chi.URLParam(r, "cmd"); cmd {
	case "show":
		path := models.PathPrimary
		if s := r.URL.Query().Get("path"); s != "" {
			p, err := models.ParsePath(s)
			if err != nil {
				writeError(w, models.ErrBadRequest(err.Error()))
				return
			}
			path = p
		}
		h.audio.ShowVolumeBar(path)
	case "hide":
		h.audio.HideVolumeBar()
	case "toggle":
		h.audio.ToggleVolumeBar()
	default:
		writeError(w, models.ErrBadRequest("unknown volume bar command: "+cmd))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getActiveVolume(w http.ResponseWriter, r *http.Request) {
	id := h.audio.ActiveVolumeID()
	writeJSON(w, http.StatusOK, models.ActiveVolume{ID: id, Name: id.String()})
}

func (h *Handlers) getEqGains(w http.ResponseWriter, r *http.Request) {
	mode, err := intParam(r, "mode")
	if err != nil {
		writeError(w, err)
		return
	}
	gains := h.audio.EqGains(mode)
	if gains == nil {
		writeError(w, models.ErrNotFound("no equalizer preset for mode"))
		return
	}
	writeJSON(w, http.StatusOK, models.EqPreset{Mode: mode, Gains: gains})
}

func (h *Handlers) shortMute(w http.ResponseWriter, r *http.Request) {
	var req models.ShortMuteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d := time.Duration(req.DurationMS) * time.Millisecond
	if d <= 0 || d > maxShortMute {
		writeError(w, models.ErrBadRequest("duration_ms must be between 1 and 10000"))
		return
	}
	h.audio.RequestShortMute(d)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setAnalogMediaVolume(w http.ResponseWriter, r *http.Request) {
	var upd models.PercentUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if upd.Percent == nil {
		writeError(w, models.ErrFieldRequired("percent"))
		return
	}
	if p := *upd.Percent; p < 0 || p > 100 {
		writeError(w, models.ErrBadRequest("percent must be between 0 and 100"))
		return
	}
	h.audio.SetAnalogMediaVolumePercent(*upd.Percent)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getMasterChannel(w http.ResponseWriter, r *http.Request) {
	ch := h.audio.MasterAudioChannel()
	writeJSON(w, http.StatusOK, models.MasterChannel{Channel: ch, Name: ch.String()})
}

func (h *Handlers) setChipParam(w http.ResponseWriter, r *http.Request) {
	var req models.ChipParamRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.audio.SetChipParam(req.Chip, req.Param, req.Values)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getEffects(w http.ResponseWriter, r *http.Request) {
	ids := h.audio.AvailableExpertAudioEffects()
	out := make([]models.EffectInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.EffectInfo{ID: id, Path: h.audio.ExpertAudioEffectFile(id)})
	}
	writeJSON(w, http.StatusOK, out)
}

// lookupEffect resolves {effect} to an id the service offers.
func (h *Handlers) lookupEffect(r *http.Request) (int, error) {
	id, err := intParam(r, "effect")
	if err != nil {
		return 0, err
	}
	for _, avail := range h.audio.AvailableExpertAudioEffects() {
		if avail == id {
			return id, nil
		}
	}
	return 0, models.ErrNotFound("effect not available")
}

func (h *Handlers) getEffect(w http.ResponseWriter, r *http.Request) {
	id, err := h.lookupEffect(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.EffectInfo{ID: id, Path: h.audio.ExpertAudioEffectFile(id)})
}

func (h *Handlers) setEffect(w http.ResponseWriter, r *http.Request) {
	var upd models.EffectUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if upd.Path == "" {
		writeError(w, models.ErrFieldRequired("path"))
		return
	}
	id, err := h.lookupEffect(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.audio.AddExpertAudioEffect(id, upd.Path, upd.Apply)
	writeJSON(w, http.StatusOK, models.EffectInfo{ID: id, Path: h.audio.ExpertAudioEffectFile(id)})
}
