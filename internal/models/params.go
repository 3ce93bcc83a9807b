// Package models defines the value types shared by the audio proxy, its
// transports and the HTTP control surface.
package models

import (
	"fmt"
	"strings"
)

// ParamID identifies an integer audio parameter in the audio service's
// catalog. The numeric values are owned by the service.
type ParamID int

// Parameter catalog.
const (
	ParamNone            ParamID = -1 // hidden volume bar
	ParamVolumeMaster    ParamID = 0
	ParamMute            ParamID = 1
	ParamMuteSecondary   ParamID = 2
	ParamVolumeSecondary ParamID = 3
	ParamVolumeMedia     ParamID = 4
	ParamVolumeNavi      ParamID = 5
	ParamVolumePhone     ParamID = 6
	ParamVolumeBluetooth ParamID = 7
	ParamVolumeRadio     ParamID = 8
	ParamVolumeAlarm     ParamID = 9
	ParamVolumeVoice     ParamID = 10
	ParamVolumeKeyTone   ParamID = 11
	ParamBalance         ParamID = 20
	ParamFade            ParamID = 21
	ParamBass            ParamID = 22
	ParamMiddle          ParamID = 23
	ParamTreble          ParamID = 24
	ParamLoudness        ParamID = 25
	ParamEqMode          ParamID = 26
	ParamSubwoofer       ParamID = 27
)

var paramNames = map[ParamID]string{
	ParamNone:            "NONE",
	ParamVolumeMaster:    "VOLUME_MASTER",
	ParamMute:            "MUTE",
	ParamMuteSecondary:   "MUTE_SECONDARY",
	ParamVolumeSecondary: "VOLUME_SECONDARY",
	ParamVolumeMedia:     "VOLUME_MEDIA",
	ParamVolumeNavi:      "VOLUME_NAVI",
	ParamVolumePhone:     "VOLUME_PHONE",
	ParamVolumeBluetooth: "VOLUME_BLUETOOTH",
	ParamVolumeRadio:     "VOLUME_RADIO",
	ParamVolumeAlarm:     "VOLUME_ALARM",
	ParamVolumeVoice:     "VOLUME_VOICE",
	ParamVolumeKeyTone:   "VOLUME_KEY_TONE",
	ParamBalance:         "BALANCE",
	ParamFade:            "FADE",
	ParamBass:            "BASS",
	ParamMiddle:          "MIDDLE",
	ParamTreble:          "TREBLE",
	ParamLoudness:        "LOUDNESS",
	ParamEqMode:          "EQ_MODE",
	ParamSubwoofer:       "SUBWOOFER",
}

// String returns the catalog name, or PARAM(n) for ids this build does not know.
func (id ParamID) String() string {
	if name, ok := paramNames[id]; ok {
		return name
	}
	return fmt.Sprintf("PARAM(%d)", int(id))
}

// Channel identifies an analog input whose pre-volume gain can be tuned.
// Channel ids and ParamIDs are unrelated number spaces.
type Channel int

const (
	ChannelPC        Channel = 0
	ChannelAUX       Channel = 1
	ChannelRadio     Channel = 2
	ChannelDVD       Channel = 3
	ChannelTV        Channel = 4
	ChannelBluetooth Channel = 5
	ChannelCarPlay   Channel = 6
	ChannelUSB       Channel = 7
)

var channelNames = map[Channel]string{
	ChannelPC:        "PC",
	ChannelAUX:       "AUX",
	ChannelRadio:     "RADIO",
	ChannelDVD:       "DVD",
	ChannelTV:        "TV",
	ChannelBluetooth: "BLUETOOTH",
	ChannelCarPlay:   "CARPLAY",
	ChannelUSB:       "USB",
}

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CHANNEL(%d)", int(c))
}

// Path selects one of the two parallel audio paths of the head unit.
type Path int

const (
	PathPrimary   Path = iota // master / driver zone
	PathSecondary             // rear / passenger zone
)

// Paths lists every audio path in table order.
var Paths = []Path{PathPrimary, PathSecondary}

func (p Path) String() string {
	switch p {
	case PathPrimary:
		return "primary"
	case PathSecondary:
		return "secondary"
	}
	return fmt.Sprintf("path(%d)", int(p))
}

// Valid reports whether p is one of the known paths.
func (p Path) Valid() bool {
	return p == PathPrimary || p == PathSecondary
}

// ParsePath accepts "primary" (or "master") and "secondary", case-insensitively.
func ParsePath(s string) (Path, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "master":
		return PathPrimary, nil
	case "secondary":
		return PathSecondary, nil
	}
	return 0, fmt.Errorf("unknown audio path %q", s)
}

// BoolValue encodes a flag the way the service stores it in an integer parameter.
func BoolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
