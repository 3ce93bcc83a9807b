// Package remote defines the contract of the out-of-process audio service and
// provides two implementations: a D-Bus client and an in-memory mock.
// It defines the Service interface used by the proxy and the Sink
// interface through which the service delivers notifications.
package remote

import (
	"errors"

	"github.com/roadrover/ivi-audio/internal/models"
)

// ErrUnavailable is wrapped by every error caused by the transport: the peer
// is gone, the bus is closed or the call could not be delivered.
var ErrUnavailable = errors.New("remote: audio service unavailable")

// ErrOutOfRange is wrapped by errors for arguments the wire format cannot
// carry. Nothing is sent to the service.
var ErrOutOfRange = errors.New("remote: argument out of range")

// Sink receives asynchronous notifications from the audio service.
// Calls arrive on a goroutine owned by the transport.
type Sink interface {
	OnVolumeChanged(id models.ParamID, value int)
	OnMuteChanged(mute bool, source int)
	OnVolumeBar(id models.ParamID, value, maxValue int)
	OnSecondaryMuteChanged(mute bool)
}

// Service is the synchronous request/response surface of the audio service.
// Every method blocks for a full round trip.
type Service interface {
	// Integer parameters.
	IsParamAvailable(id models.ParamID) (bool, error)
	GetParamMinValue(id models.ParamID) (int, error)
	GetParamMaxValue(id models.ParamID) (int, error)
	GetParamDefaultValue(id models.ParamID) (int, error)
	GetParam(id models.ParamID) (int, error)
	SetParam(id models.ParamID, value int) error

	// Pre-volume channel gains, primary path.
	IsBuildInPreVolumeAvailable(ch models.Channel) (bool, error)
	GetBuildInPreVolumeMinValue(ch models.Channel) (float64, error)
	GetBuildInPreVolumeMaxValue(ch models.Channel) (float64, error)
	GetBuildInPreVolumeDefaultValue(ch models.Channel) (float64, error)
	GetBuildInPreVolumeValue(ch models.Channel) (float64, error)
	SetBuildInPreVolumeValue(ch models.Channel, value float64) error
	ResetBuildInPreVolumeValue() error

	// Pre-volume channel gains, secondary path.
	IsSecondaryBuildInPreVolumeAvailable(ch models.Channel) (bool, error)
	GetSecondaryBuildInPreVolumeMinValue(ch models.Channel) (float64, error)
	GetSecondaryBuildInPreVolumeMaxValue(ch models.Channel) (float64, error)
	GetSecondaryBuildInPreVolumeDefaultValue(ch models.Channel) (float64, error)
	GetSecondaryBuildInPreVolumeValue(ch models.Channel) (float64, error)
	SetSecondaryBuildInPreVolumeValue(ch models.Channel, value float64) error
	ResetSecondaryBuildInPreVolumeValue() error

	// Volume gain curve, primary path. vol is a volume step.
	IsMasterAudioDeviceAvailable() (bool, error)
	GetMasterVolumeGainMinValue() (float64, error)
	GetMasterVolumeGainMaxValue() (float64, error)
	GetMasterVolumeGainDefaultValue(vol int) (float64, error)
	GetMasterVolumeGainValue(vol int) (float64, error)
	SetMasterVolumeGainValue(vol int, value float64) error
	ResetMasterVolumeGainValue() error

	// Volume gain curve, secondary path.
	IsSecondaryAudioDeviceAvailable() (bool, error)
	GetSecondaryVolumeGainMinValue() (float64, error)
	GetSecondaryVolumeGainMaxValue() (float64, error)
	GetSecondaryVolumeGainDefaultValue(vol int) (float64, error)
	GetSecondaryVolumeGainValue(vol int) (float64, error)
	SetSecondaryVolumeGainValue(vol int, value float64) error
	ResetSecondaryVolumeGainValue() error

	// Volume step ranges.
	GetMasterVolumeMin() (int, error)
	GetMasterVolumeMax() (int, error)
	GetSecondaryVolumeMin() (int, error)
	GetSecondaryVolumeMax() (int, error)

	// Volume bar.
	ShowVolumeBar() error
	ShowSecondaryVolumeBar() error
	HideVolumeBar() error
	ToggleVolumeBar() error
	GetActiveVolumeID() (models.ParamID, error)

	GetEqGains(mode int) ([]int, error)
	RequestInternalShortMute(durationMS int) error
	SetAnalogMediaVolumePercent(percent int) error
	GetMasterAudioChannel() (models.Channel, error)
	SetChipParam(chip, param int, values [4]float64) error

	// Expert effects.
	AddExpertAudioEffect(effect int, path string, apply bool) error
	GetAvailableExpertAudioEffects() ([]int, error)
	GetExpertAudioEffectFile(effect int) (string, error)

	// RegisterCallback installs the notification sink. A second registration
	// of a different sink replaces nothing; callers unregister first.
	RegisterCallback(sink Sink) error
	UnregisterCallback(sink Sink) error
}

// Conn is a live connection to the audio service.
type Conn interface {
	Service

	// Done is closed when the peer goes away or the connection is closed.
	Done() <-chan struct{}

	// Close releases the connection. It is safe to call more than once.
	Close() error
}
