package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/roadrover/ivi-audio/internal/models"
)

func TestParamIDString(t *testing.T) {
	tests := []struct {
		id   models.ParamID
		want string
	}{
		{models.ParamVolumeMaster, "VOLUME_MASTER"},
		{models.ParamMuteSecondary, "MUTE_SECONDARY"},
		{models.ParamNone, "NONE"},
		{models.ParamID(999), "PARAM(999)"},
	}
	for _, tc := range tests {
		if got := tc.id.String(); got != tc.want {
			t.Errorf("ParamID(%d).String() = %q, want %q", int(tc.id), got, tc.want)
		}
	}
	if got := models.Channel(42).String(); got != "CHANNEL(42)" {
		t.Errorf("unknown channel = %q", got)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want models.Path
		ok   bool
	}{
		{"primary", models.PathPrimary, true},
		{"Master", models.PathPrimary, true},
		{" secondary ", models.PathSecondary, true},
		{"rear", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, err := models.ParsePath(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParsePath(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParsePath(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if models.Path(7).Valid() {
		t.Error("Path(7) should not be valid")
	}
}

func TestVolumeBarHidden(t *testing.T) {
	if !(models.VolumeBar{ID: models.ParamNone}).Hidden() {
		t.Error("ParamNone volume bar should be hidden")
	}
	if (models.VolumeBar{ID: models.ParamVolumeMaster, Value: 3, Max: 40}).Hidden() {
		t.Error("master volume bar should be shown")
	}
}

func TestEnvelopeJSON(t *testing.T) {
	data, err := json.Marshal(models.Wrap(models.MuteChanged{Mute: true, Source: 2}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"mute-changed","data":{"mute":true,"source":2}}`
	if string(data) != want {
		t.Errorf("envelope = %s, want %s", data, want)
	}
}

func TestAppError(t *testing.T) {
	var err error = models.ErrFieldRequired("value")
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed for *AppError")
	}
	if appErr.Status != 400 || appErr.Field != "value" || appErr.Error() != "value is required" {
		t.Errorf("unexpected AppError: %+v", appErr)
	}
	if models.ErrUnavailable.Status != 503 {
		t.Errorf("ErrUnavailable status = %d, want 503", models.ErrUnavailable.Status)
	}
}
