package remote

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/roadrover/ivi-audio/internal/models"
)

// D-Bus coordinates of the head unit audio service.
const (
	DefaultServiceName = "com.roadrover.services.Audio"
	DefaultObjectPath  = "/com/roadrover/services/Audio"
	Interface          = "com.roadrover.services.Audio"
)

const (
	nameOwnerChanged = "org.freedesktop.DBus.NameOwnerChanged"
	signalBuffer     = 64
)

// DBusOptions selects the bus and the service object to talk to.
type DBusOptions struct {
	Session     bool   // session bus instead of the system bus
	ServiceName string // well-known name, default DefaultServiceName
	ObjectPath  string // default DefaultObjectPath
}

// DBusClient is a Conn to the audio service over D-Bus. Methods map 1:1 to
// D-Bus methods on Interface; integers travel as int32 and gains as double.
// Notifications are D-Bus signals on the service object, delivered to the
// registered sink from the client's signal goroutine.
type DBusClient struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	name    string
	path    dbus.ObjectPath
	signals chan *dbus.Signal

	mu   sync.Mutex
	sink Sink

	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
}

// DialDBus connects to the bus and checks that the audio service is running.
// The returned client's Done channel closes when the service's bus name
// loses its owner or the bus connection drops.
func DialDBus(ctx context.Context, opts DBusOptions) (*DBusClient, error) {
	if opts.ServiceName == "" {
		opts.ServiceName = DefaultServiceName
	}
	if opts.ObjectPath == "" {
		opts.ObjectPath = DefaultObjectPath
	}

	connect := dbus.ConnectSystemBus
	if opts.Session {
		connect = dbus.ConnectSessionBus
	}
	conn, err := connect(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: connect bus: %v", ErrUnavailable, err)
	}

	var hasOwner bool
	call := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, opts.ServiceName)
	if err := call.Store(&hasOwner); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: NameHasOwner: %v", ErrUnavailable, err)
	}
	if !hasOwner {
		conn.Close()
		return nil, fmt.Errorf("%w: %s is not running", ErrUnavailable, opts.ServiceName)
	}

	// Watch the service name so a restart of the service process is noticed.
	if err := conn.AddMatchSignal(
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
		dbus.WithMatchArg(0, opts.ServiceName),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: watch %s: %v", ErrUnavailable, opts.ServiceName, err)
	}

	c := &DBusClient{
		conn:    conn,
		obj:     conn.Object(opts.ServiceName, dbus.ObjectPath(opts.ObjectPath)),
		name:    opts.ServiceName,
		path:    dbus.ObjectPath(opts.ObjectPath),
		signals: make(chan *dbus.Signal, signalBuffer),
		done:    make(chan struct{}),
	}
	conn.Signal(c.signals)
	go c.signalLoop()

	slog.Info("dbus: connected to audio service", "name", c.name, "path", c.path, "session", opts.Session)
	return c, nil
}

// Done is closed when the audio service goes away.
func (c *DBusClient) Done() <-chan struct{} { return c.done }

// Close drops the bus connection.
func (c *DBusClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
		c.markDone()
	})
	return err
}

func (c *DBusClient) markDone() {
	c.doneOnce.Do(func() { close(c.done) })
}

// signalLoop runs until the bus connection closes the signal channel.
func (c *DBusClient) signalLoop() {
	defer c.markDone()
	for sig := range c.signals {
		if sig.Name == nameOwnerChanged {
			if ownerLost(sig) {
				slog.Warn("dbus: audio service left the bus", "name", c.name)
				c.markDone()
			}
			continue
		}
		if sig.Path != c.path || !strings.HasPrefix(sig.Name, Interface+".") {
			continue
		}

		c.mu.Lock()
		sink := c.sink
		c.mu.Unlock()
		if sink == nil {
			continue
		}
		if err := decodeSignal(sig, sink); err != nil {
			slog.Warn("dbus: dropping malformed signal", "signal", sig.Name, "err", err)
		}
	}
}

// ownerLost reports whether a NameOwnerChanged signal announces that the name
// has no owner any more.
func ownerLost(sig *dbus.Signal) bool {
	var name, oldOwner, newOwner string
	if err := dbus.Store(sig.Body, &name, &oldOwner, &newOwner); err != nil {
		return false
	}
	return newOwner == ""
}

// decodeSignal converts one audio service signal into a sink call.
func decodeSignal(sig *dbus.Signal, sink Sink) error {
	member := strings.TrimPrefix(sig.Name, Interface+".")
	switch member {
	case "VolumeChanged":
		var id, value int32
		if err := dbus.Store(sig.Body, &id, &value); err != nil {
			return err
		}
		sink.OnVolumeChanged(models.ParamID(id), int(value))
	case "MuteChanged":
		var mute bool
		var source int32
		if err := dbus.Store(sig.Body, &mute, &source); err != nil {
			return err
		}
		sink.OnMuteChanged(mute, int(source))
	case "VolumeBar":
		var id, value, maxValue int32
		if err := dbus.Store(sig.Body, &id, &value, &maxValue); err != nil {
			return err
		}
		sink.OnVolumeBar(models.ParamID(id), int(value), int(maxValue))
	case "SecondaryMuteChanged":
		var mute bool
		if err := dbus.Store(sig.Body, &mute); err != nil {
			return err
		}
		sink.OnSecondaryMuteChanged(mute)
	default:
		return fmt.Errorf("unknown signal %q", member)
	}
	return nil
}

// call invokes method on the service object and stores the reply into out
// (which may be nil for methods without a reply).
func (c *DBusClient) call(method string, out interface{}, args ...interface{}) error {
	args, err := encodeArgs(method, args)
	if err != nil {
		return err
	}
	call := c.obj.Call(Interface+"."+method, 0, args...)
	if call.Err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, method, call.Err)
	}
	if out == nil {
		return nil
	}
	if err := call.Store(out); err != nil {
		return fmt.Errorf("%w: %s: decode reply: %v", ErrUnavailable, method, err)
	}
	return nil
}

// encodeArgs narrows integer arguments to the int32 the service expects.
// Values outside the int32 range are rejected instead of wrapping.
func encodeArgs(method string, args []interface{}) ([]interface{}, error) {
	out := make([]interface{}, len(args))
	for i, a := range args {
		var n int
		switch v := a.(type) {
		case int:
			n = v
		case models.ParamID:
			n = int(v)
		case models.Channel:
			n = int(v)
		default:
			out[i] = a
			continue
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %s: argument %d is %d", ErrOutOfRange, method, i, n)
		}
		out[i] = int32(n)
	}
	return out, nil
}

func (c *DBusClient) callBool(method string, args ...interface{}) (bool, error) {
	var v bool
	err := c.call(method, &v, args...)
	return v, err
}

func (c *DBusClient) callInt(method string, args ...interface{}) (int, error) {
	var v int32
	err := c.call(method, &v, args...)
	return int(v), err
}

func (c *DBusClient) callFloat(method string, args ...interface{}) (float64, error) {
	var v float64
	err := c.call(method, &v, args...)
	return v, err
}

func (c *DBusClient) callInts(method string, args ...interface{}) ([]int, error) {
	var v []int32
	if err := c.call(method, &v, args...); err != nil {
		return nil, err
	}
	out := make([]int, len(v))
	for i, n := range v {
		out[i] = int(n)
	}
	return out, nil
}

func (c *DBusClient) IsParamAvailable(id models.ParamID) (bool, error) {
	return c.callBool("IsParamAvailable", id)
}

func (c *DBusClient) GetParamMinValue(id models.ParamID) (int, error) {
	return c.callInt("GetParamMinValue", id)
}

func (c *DBusClient) GetParamMaxValue(id models.ParamID) (int, error) {
	return c.callInt("GetParamMaxValue", id)
}

func (c *DBusClient) GetParamDefaultValue(id models.ParamID) (int, error) {
	return c.callInt("GetParamDefaultValue", id)
}

func (c *DBusClient) GetParam(id models.ParamID) (int, error) {
	return c.callInt("GetParam", id)
}

func (c *DBusClient) SetParam(id models.ParamID, value int) error {
	return c.call("SetParam", nil, id, value)
}

func (c *DBusClient) IsBuildInPreVolumeAvailable(ch models.Channel) (bool, error) {
	return c.callBool("IsBuildInPreVolumeAvailable", ch)
}

func (c *DBusClient) GetBuildInPreVolumeMinValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetBuildInPreVolumeMinValue", ch)
}

func (c *DBusClient) GetBuildInPreVolumeMaxValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetBuildInPreVolumeMaxValue", ch)
}

func (c *DBusClient) GetBuildInPreVolumeDefaultValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetBuildInPreVolumeDefaultValue", ch)
}

func (c *DBusClient) GetBuildInPreVolumeValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetBuildInPreVolumeValue", ch)
}

func (c *DBusClient) SetBuildInPreVolumeValue(ch models.Channel, value float64) error {
	return c.call("SetBuildInPreVolumeValue", nil, ch, value)
}

func (c *DBusClient) ResetBuildInPreVolumeValue() error {
	return c.call("ResetBuildInPreVolumeValue", nil)
}

func (c *DBusClient) IsSecondaryBuildInPreVolumeAvailable(ch models.Channel) (bool, error) {
	return c.callBool("IsSecondaryBuildInPreVolumeAvailable", ch)
}

func (c *DBusClient) GetSecondaryBuildInPreVolumeMinValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetSecondaryBuildInPreVolumeMinValue", ch)
}

func (c *DBusClient) GetSecondaryBuildInPreVolumeMaxValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetSecondaryBuildInPreVolumeMaxValue", ch)
}

func (c *DBusClient) GetSecondaryBuildInPreVolumeDefaultValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetSecondaryBuildInPreVolumeDefaultValue", ch)
}

func (c *DBusClient) GetSecondaryBuildInPreVolumeValue(ch models.Channel) (float64, error) {
	return c.callFloat("GetSecondaryBuildInPreVolumeValue", ch)
}

func (c *DBusClient) SetSecondaryBuildInPreVolumeValue(ch models.Channel, value float64) error {
	return c.call("SetSecondaryBuildInPreVolumeValue", nil, ch, value)
}

func (c *DBusClient) ResetSecondaryBuildInPreVolumeValue() error {
	return c.call("ResetSecondaryBuildInPreVolumeValue", nil)
}

func (c *DBusClient) IsMasterAudioDeviceAvailable() (bool, error) {
	return c.callBool("IsMasterAudioDeviceAvailable")
}

func (c *DBusClient) GetMasterVolumeGainMinValue() (float64, error) {
	return c.callFloat("GetMasterVolumeGainMinValue")
}

func (c *DBusClient) GetMasterVolumeGainMaxValue() (float64, error) {
	return c.callFloat("GetMasterVolumeGainMaxValue")
}

func (c *DBusClient) GetMasterVolumeGainDefaultValue(vol int) (float64, error) {
	return c.callFloat("GetMasterVolumeGainDefaultValue", vol)
}

func (c *DBusClient) GetMasterVolumeGainValue(vol int) (float64, error) {
	return c.callFloat("GetMasterVolumeGainValue", vol)
}

func (c *DBusClient) SetMasterVolumeGainValue(vol int, value float64) error {
	return c.call("SetMasterVolumeGainValue", nil, vol, value)
}

func (c *DBusClient) ResetMasterVolumeGainValue() error {
	return c.call("ResetMasterVolumeGainValue", nil)
}

func (c *DBusClient) IsSecondaryAudioDeviceAvailable() (bool, error) {
	return c.callBool("IsSecondaryAudioDeviceAvailable")
}

func (c *DBusClient) GetSecondaryVolumeGainMinValue() (float64, error) {
	return c.callFloat("GetSecondaryVolumeGainMinValue")
}

func (c *DBusClient) GetSecondaryVolumeGainMaxValue() (float64, error) {
	return c.callFloat("GetSecondaryVolumeGainMaxValue")
}

func (c *DBusClient) GetSecondaryVolumeGainDefaultValue(vol int) (float64, error) {
	return c.callFloat("GetSecondaryVolumeGainDefaultValue", vol)
}

func (c *DBusClient) GetSecondaryVolumeGainValue(vol int) (float64, error) {
	return c.callFloat("GetSecondaryVolumeGainValue", vol)
}

func (c *DBusClient) SetSecondaryVolumeGainValue(vol int, value float64) error {
	return c.call("SetSecondaryVolumeGainValue", nil, vol, value)
}

func (c *DBusClient) ResetSecondaryVolumeGainValue() error {
	return c.call("ResetSecondaryVolumeGainValue", nil)
}

func (c *DBusClient) GetMasterVolumeMin() (int, error) { return c.callInt("GetMasterVolumeMin") }

func (c *DBusClient) GetMasterVolumeMax() (int, error) { return c.callInt("GetMasterVolumeMax") }

func (c *DBusClient) GetSecondaryVolumeMin() (int, error) { return c.callInt("GetSecondaryVolumeMin") }

func (c *DBusClient) GetSecondaryVolumeMax() (int, error) { return c.callInt("GetSecondaryVolumeMax") }

func (c *DBusClient) ShowVolumeBar() error { return c.call("ShowVolumeBar", nil) }

func (c *DBusClient) ShowSecondaryVolumeBar() error { return c.call("ShowSecondaryVolumeBar", nil) }

func (c *DBusClient) HideVolumeBar() error { return c.call("HideVolumeBar", nil) }

func (c *DBusClient) ToggleVolumeBar() error { return c.call("ToggleVolumeBar", nil) }

func (c *DBusClient) GetActiveVolumeID() (models.ParamID, error) {
	id, err := c.callInt("GetActiveVolumeId")
	return models.ParamID(id), err
}

func (c *DBusClient) GetEqGains(mode int) ([]int, error) {
	return c.callInts("GetEqGains", mode)
}

func (c *DBusClient) RequestInternalShortMute(durationMS int) error {
	return c.call("RequestInternalShortMute", nil, durationMS)
}

func (c *DBusClient) SetAnalogMediaVolumePercent(percent int) error {
	return c.call("SetAnalogMediaVolumePercent", nil, percent)
}

func (c *DBusClient) GetMasterAudioChannel() (models.Channel, error) {
	ch, err := c.callInt("GetMasterAudioChannel")
	return models.Channel(ch), err
}

func (c *DBusClient) SetChipParam(chip, param int, values [4]float64) error {
	return c.call("SetChipParam", nil, chip, param, values[0], values[1], values[2], values[3])
}

func (c *DBusClient) AddExpertAudioEffect(effect int, path string, apply bool) error {
	return c.call("AddExpertAudioEffect", nil, effect, path, apply)
}

func (c *DBusClient) GetAvailableExpertAudioEffects() ([]int, error) {
	return c.callInts("GetAvailableExpertAudioEffects")
}

func (c *DBusClient) GetExpertAudioEffectFile(effect int) (string, error) {
	var path string
	err := c.call("GetExpertAudioEffectFile", &path, effect)
	return path, err
}

// RegisterCallback subscribes to the service's signals and routes them to sink.
func (c *DBusClient) RegisterCallback(sink Sink) error {
	if err := c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(c.path),
		dbus.WithMatchInterface(Interface),
	); err != nil {
		return fmt.Errorf("%w: add signal match: %v", ErrUnavailable, err)
	}
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
	return nil
}

// UnregisterCallback stops signal delivery to sink. Unknown sinks are ignored.
func (c *DBusClient) UnregisterCallback(sink Sink) error {
	c.mu.Lock()
	if c.sink != sink {
		c.mu.Unlock()
		return nil
	}
	c.sink = nil
	c.mu.Unlock()

	if err := c.conn.RemoveMatchSignal(
		dbus.WithMatchObjectPath(c.path),
		dbus.WithMatchInterface(Interface),
	); err != nil {
		return fmt.Errorf("%w: remove signal match: %v", ErrUnavailable, err)
	}
	return nil
}

// Ensure DBusClient implements Conn
var _ Conn = (*DBusClient)(nil)
