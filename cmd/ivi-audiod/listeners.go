package main

import (
	"log/slog"

	"github.com/roadrover/ivi-audio/internal/models"
)

// logListener holds the daemon's listener slots until a UI claims them.
type logListener struct{}

func (logListener) OnVolumeChanged(id models.ParamID, value int) {
	slog.Debug("volume changed", "id", id, "value", value)
}

func (logListener) OnMuteChanged(mute bool, source int) {
	slog.Debug("mute changed", "mute", mute, "source", source)
}

func (logListener) OnSecondaryMuteChanged(mute bool) {
	slog.Debug("secondary mute changed", "mute", mute)
}

func (logListener) OnShowVolumeBar(id models.ParamID, value, maxValue int) {
	slog.Debug("volume bar shown", "id", id, "value", value, "max", maxValue)
}

func (logListener) OnHideVolumeBar() {
	slog.Debug("volume bar hidden")
}
