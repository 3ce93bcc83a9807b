package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roadrover/ivi-audio/internal/models"
)

// NewRouter creates and returns the main HTTP router.
func NewRouter(audio Audio, bus EventBus) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(middleware.CleanPath)

	h := &Handlers{audio: audio, events: bus}

	r.Get("/api/status", h.getStatus)
	r.Get("/api/subscribe", h.sseEvents)

	// Everything else needs a bound audio service.
	r.Group(func(r chi.Router) {
		r.Use(h.requireConnected)

		// Integer parameters
		r.Get("/api/params/{id}", h.getParam)
		r.Get("/api/params/{id}/value", h.getParamValue)
		r.Patch("/api/params/{id}", h.setParam)

		// Per-path controls
		r.Route("/api/paths/{path}", func(r chi.Router) {
			r.Get("/mute", h.getMute)
			r.Patch("/mute", h.setMute)
			r.Get("/volume-range", h.getVolumeRange)

			r.Get("/channels/{ch}", h.getChannel)
			r.Patch("/channels/{ch}", h.setChannel)
			r.Post("/channels/reset", h.resetChannels)

			r.Get("/gain", h.getGainRange)
			r.Get("/gain/{vol}", h.getGainStep)
			r.Patch("/gain/{vol}", h.setGainStep)
			r.Post("/gain/reset", h.resetGain)
		})

		// Volume bar
		r.Post("/api/volumebar/{cmd}", h.volumeBarCmd)
		r.Get("/api/volumebar/active", h.getActiveVolume)

		// Auxiliary
		r.Get("/api/eq/{mode}", h.getEqGains)
		r.Post("/api/short-mute", h.shortMute)
		r.Put("/api/analog-media-volume", h.setAnalogMediaVolume)
		r.Get("/api/master-channel", h.getMasterChannel)
		r.Post("/api/chip-params", h.setChipParam)

		// Expert effects
		r.Get("/api/effects", h.getEffects)
		r.Get("/api/effects/{effect}", h.getEffect)
		r.Put("/api/effects/{effect}", h.setEffect)
	})

	return r
}

// requireConnected answers 503 while the audio service is not bound.
func (h *Handlers) requireConnected(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.audio.Connected() {
			writeError(w, models.ErrUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds permissive CORS headers for local network access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
