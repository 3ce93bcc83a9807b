package api

import (
	"net/http"

	"github.com/roadrover/ivi-audio/internal/models"
)

func (h *Handlers) status() models.Status {
	return models.Status{
		State:             h.audio.State().String(),
		CachedParams:      h.audio.CacheLen(),
		AudioListener:     slotInfo(h.audio.AudioListenerHolder()),
		VolumeBarListener: slotInfo(h.audio.VolumeBarListenerHolder()),
	}
}

func (h *Handlers) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status())
}

// lookupParam resolves {id} to a parameter the service supports.
func (h *Handlers) lookupParam(r *http.Request) (*models.AudioParam, error) {
	n, err := intParam(r, "id")
	if err != nil {
		return nil, err
	}
	id := models.ParamID(n)
	ap := h.audio.Param(id)
	if ap == nil {
		return nil, models.ErrNotFound("parameter " + id.String() + " not available")
	}
	return ap, nil
}

func (h *Handlers) getParam(w http.ResponseWriter, r *http.Request) {
	ap, err := h.lookupParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ap)
}

func (h *Handlers) getParamValue(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	id := models.ParamID(n)
	writeJSON(w, http.StatusOK, models.ParamValue{ID: id, Value: h.audio.ParamValue(id)})
}

func (h *Handlers) setParam(w http.ResponseWriter, r *http.Request) {
	var upd models.ParamUpdate
	if err := decodeBody(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	if !upd.Default && upd.Value == nil {
		writeError(w, models.ErrFieldRequired("value"))
		return
	}

	ap, err := h.lookupParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if upd.Default {
		h.audio.ApplyDefaultParam(ap)
	} else {
		ap.Value = *upd.Value
		h.audio.ApplyParam(ap)
	}
	writeJSON(w, http.StatusOK, models.ParamValue{ID: ap.ID, Value: h.audio.ParamValue(ap.ID)})
}
