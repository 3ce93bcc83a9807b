// Package api implements the HTTP control surface of the audio proxy.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/proxy"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	audio  Audio
	events EventBus
}

// Audio is the proxy surface the handlers use. *proxy.Proxy implements it.
type Audio interface {
	State() proxy.State
	Connected() bool
	CacheLen() int
	AudioListenerHolder() *proxy.SlotHolder
	VolumeBarListenerHolder() *proxy.SlotHolder

	Param(id models.ParamID) *models.AudioParam
	ParamValue(id models.ParamID) int
	ApplyParam(ap *models.AudioParam)
	ApplyDefaultParam(ap *models.AudioParam)

	Mute(path models.Path) bool
	SetMute(path models.Path, mute bool)
	VolumeMin(path models.Path) int
	VolumeMax(path models.Path) int

	Channel(path models.Path, ch models.Channel) *models.ChannelParam
	ApplyChannel(cp *models.ChannelParam)
	ApplyDefaultChannel(cp *models.ChannelParam)
	ResetChannels(path models.Path)

	IsDeviceAvailable(path models.Path) bool
	GainMin(path models.Path) float64
	GainMax(path models.Path) float64
	GainDefault(path models.Path, vol int) float64
	GainValue(path models.Path, vol int) float64
	SetGain(path models.Path, vol int, value float64)
	ResetGain(path models.Path)

	ShowVolumeBar(path models.Path)
	HideVolumeBar()
	ToggleVolumeBar()
	ActiveVolumeID() models.ParamID

	EqGains(mode int) []int
	RequestShortMute(d time.Duration)
	SetAnalogMediaVolumePercent(percent int)
	MasterAudioChannel() models.Channel
	SetChipParam(chip, param int, values [4]float64)

	AddExpertAudioEffect(effect int, path string, apply bool)
	AvailableExpertAudioEffects() []int
	ExpertAudioEffectFile(effect int) string
}

// EventBus is the interface for subscribing to proxy events.
type EventBus interface {
	Subscribe(id string) <-chan models.Event
	Unsubscribe(id string)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		w.WriteHeader(appErr.Status)
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrInternal(err.Error()))
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.ErrBadRequest("invalid JSON: " + err.Error())
	}
	return nil
}

// intParam reads an integer path parameter by name.
func intParam(r *http.Request, name string) (int, error) {
	s := chi.URLParam(r, name)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.ErrBadRequest("invalid " + name + " parameter")
	}
	return n, nil
}

// pathParam reads the {path} URL parameter.
func pathParam(r *http.Request) (models.Path, error) {
	p, err := models.ParsePath(chi.URLParam(r, "path"))
	if err != nil {
		return 0, models.ErrBadRequest(err.Error())
	}
	return p, nil
}

func slotInfo(h *proxy.SlotHolder) *models.SlotInfo {
	if h == nil {
		return nil
	}
	return &models.SlotInfo{
		ID:    h.ID.String(),
		Owner: h.Owner,
		Since: h.Since.UTC().Format(time.RFC3339),
	}
}
