package remote

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/roadrover/ivi-audio/internal/models"
)

type recordingSink struct {
	volumes  [][2]int
	mutes    []bool
	sources  []int
	bars     [][3]int
	secMutes []bool
}

func (s *recordingSink) OnVolumeChanged(id models.ParamID, value int) {
	s.volumes = append(s.volumes, [2]int{int(id), value})
}

func (s *recordingSink) OnMuteChanged(mute bool, source int) {
	s.mutes = append(s.mutes, mute)
	s.sources = append(s.sources, source)
}

func (s *recordingSink) OnVolumeBar(id models.ParamID, value, maxValue int) {
	s.bars = append(s.bars, [3]int{int(id), value, maxValue})
}

func (s *recordingSink) OnSecondaryMuteChanged(mute bool) {
	s.secMutes = append(s.secMutes, mute)
}

func audioSignal(member string, body ...interface{}) *dbus.Signal {
	return &dbus.Signal{
		Path: DefaultObjectPath,
		Name: Interface + "." + member,
		Body: body,
	}
}

func TestDecodeSignal(t *testing.T) {
	sink := &recordingSink{}

	signals := []*dbus.Signal{
		audioSignal("VolumeChanged", int32(models.ParamVolumeMaster), int32(17)),
		audioSignal("MuteChanged", true, int32(3)),
		audioSignal("VolumeBar", int32(models.ParamNone), int32(0), int32(0)),
		audioSignal("SecondaryMuteChanged", false),
	}
	for _, sig := range signals {
		if err := decodeSignal(sig, sink); err != nil {
			t.Fatalf("decodeSignal(%s): %v", sig.Name, err)
		}
	}

	if len(sink.volumes) != 1 || sink.volumes[0] != [2]int{int(models.ParamVolumeMaster), 17} {
		t.Errorf("volumes = %v", sink.volumes)
	}
	if len(sink.mutes) != 1 || !sink.mutes[0] || sink.sources[0] != 3 {
		t.Errorf("mutes = %v sources = %v", sink.mutes, sink.sources)
	}
	if len(sink.bars) != 1 || sink.bars[0][0] != int(models.ParamNone) {
		t.Errorf("bars = %v", sink.bars)
	}
	if len(sink.secMutes) != 1 || sink.secMutes[0] {
		t.Errorf("secondary mutes = %v", sink.secMutes)
	}
}

func TestDecodeSignalRejectsMalformed(t *testing.T) {
	sink := &recordingSink{}

	tests := []struct {
		name string
		sig  *dbus.Signal
	}{
		{"missing arg", audioSignal("VolumeChanged", int32(1))},
		{"wrong type", audioSignal("SecondaryMuteChanged", "yes")},
		{"unknown member", audioSignal("Balance", int32(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := decodeSignal(tt.sig, sink); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if len(sink.volumes)+len(sink.secMutes) != 0 {
		t.Error("malformed signals must not reach the sink")
	}
}

func TestEncodeArgs(t *testing.T) {
	got, err := encodeArgs("SetChipParam", []interface{}{models.ParamBass, models.ChannelAUX, -7, 1.5, "x", true})
	if err != nil {
		t.Fatalf("encodeArgs: %v", err)
	}
	want := []interface{}{int32(models.ParamBass), int32(models.ChannelAUX), int32(-7), 1.5, "x", true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestEncodeArgsRejectsOutOfRange(t *testing.T) {
	if strconv.IntSize == 32 {
		t.Skip("int cannot exceed int32 on this platform")
	}
	big := int64(math.MaxInt32)
	big++
	small := int64(math.MinInt32)
	small--

	tests := []struct {
		name string
		arg  interface{}
	}{
		{"int above", int(big)},
		{"int below", int(small)},
		{"param id", models.ParamID(big)},
		{"channel", models.Channel(small)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeArgs("SetParam", []interface{}{int32(0), tt.arg})
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("err = %v, want ErrOutOfRange", err)
			}
			if errors.Is(err, ErrUnavailable) {
				t.Error("range error must not read as a transport failure")
			}
		})
	}
}

func TestOwnerLost(t *testing.T) {
	lost := &dbus.Signal{
		Name: nameOwnerChanged,
		Body: []interface{}{DefaultServiceName, ":1.42", ""},
	}
	if !ownerLost(lost) {
		t.Error("empty new owner should mean the service is gone")
	}

	moved := &dbus.Signal{
		Name: nameOwnerChanged,
		Body: []interface{}{DefaultServiceName, "", ":1.43"},
	}
	if ownerLost(moved) {
		t.Error("a new owner should not be reported as lost")
	}
}
