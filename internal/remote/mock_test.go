package remote_test

import (
	"errors"
	"testing"

	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/remote"
)

type countingSink struct {
	volumes int
	mutes   int
	bars    []models.ParamID
	secMute int
}

func (s *countingSink) OnVolumeChanged(models.ParamID, int) { s.volumes++ }
func (s *countingSink) OnMuteChanged(bool, int)             { s.mutes++ }
func (s *countingSink) OnVolumeBar(id models.ParamID, _, _ int) {
	s.bars = append(s.bars, id)
}
func (s *countingSink) OnSecondaryMuteChanged(bool) { s.secMute++ }

func TestMockBroadcastsChangesToAllSinks(t *testing.T) {
	m := remote.NewMock()
	a, b := &countingSink{}, &countingSink{}
	if err := m.RegisterCallback(a); err != nil {
		t.Fatalf("RegisterCallback: %v", err)
	}
	if err := m.RegisterCallback(b); err != nil {
		t.Fatalf("RegisterCallback: %v", err)
	}

	if err := m.SetParam(models.ParamVolumeMaster, 20); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	// Unchanged value: no broadcast.
	if err := m.SetParam(models.ParamVolumeMaster, 20); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if err := m.SetParam(models.ParamMute, 1); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if err := m.SetParam(models.ParamMuteSecondary, 1); err != nil {
		t.Fatalf("SetParam: %v", err)
	}

	for name, s := range map[string]*countingSink{"a": a, "b": b} {
		if s.volumes != 1 || s.mutes != 1 || s.secMute != 1 {
			t.Errorf("sink %s: volumes=%d mutes=%d secMute=%d, want 1 each", name, s.volumes, s.mutes, s.secMute)
		}
	}
}

func TestMockClampsToRange(t *testing.T) {
	m := remote.NewMock()
	if err := m.SetParam(models.ParamVolumeMaster, 99); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	v, err := m.GetParam(models.ParamVolumeMaster)
	if err != nil {
		t.Fatalf("GetParam: %v", err)
	}
	if v != 40 {
		t.Errorf("GetParam = %d, want clamped 40", v)
	}
}

func TestMockFailure(t *testing.T) {
	m := remote.NewMock()
	m.SetFail(true)

	_, err := m.GetParam(models.ParamVolumeMaster)
	if !errors.Is(err, remote.ErrUnavailable) {
		t.Errorf("GetParam error = %v, want ErrUnavailable", err)
	}
	if n := m.Calls("GetParam"); n != 1 {
		t.Errorf("Calls(GetParam) = %d, want 1", n)
	}
}

func TestMockSeverAndRestore(t *testing.T) {
	m := remote.NewMock()
	s := &countingSink{}
	_ = m.RegisterCallback(s)

	m.Sever()
	select {
	case <-m.Done():
	default:
		t.Fatal("Done not closed after Sever")
	}
	if m.Sinks() != 0 {
		t.Errorf("Sinks = %d after Sever, want 0", m.Sinks())
	}
	if err := m.ShowVolumeBar(); !errors.Is(err, remote.ErrUnavailable) {
		t.Errorf("ShowVolumeBar error = %v, want ErrUnavailable", err)
	}

	m.Restore()
	select {
	case <-m.Done():
		t.Fatal("Done closed after Restore")
	default:
	}
	if err := m.ShowVolumeBar(); err != nil {
		t.Errorf("ShowVolumeBar after Restore: %v", err)
	}
}

func TestMockVolumeBarToggle(t *testing.T) {
	m := remote.NewMock()
	s := &countingSink{}
	_ = m.RegisterCallback(s)

	_ = m.ShowSecondaryVolumeBar()
	_ = m.ToggleVolumeBar()
	_ = m.ToggleVolumeBar()

	want := []models.ParamID{models.ParamVolumeSecondary, models.ParamNone, models.ParamVolumeSecondary}
	if len(s.bars) != len(want) {
		t.Fatalf("bars = %v, want %v", s.bars, want)
	}
	for i := range want {
		if s.bars[i] != want[i] {
			t.Errorf("bars[%d] = %v, want %v", i, s.bars[i], want[i])
		}
	}
	id, _ := m.GetActiveVolumeID()
	if id != models.ParamVolumeSecondary {
		t.Errorf("GetActiveVolumeID = %v, want %v", id, models.ParamVolumeSecondary)
	}
}
