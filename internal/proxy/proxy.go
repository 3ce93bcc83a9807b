// Package proxy implements the client side of the head unit's audio service:
// a best-effort parameter surface that deduplicates writes and echoed
// notifications through a local cache and forwards notifications to a
// single audio listener and a single volume-bar listener.
package proxy

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/roadrover/ivi-audio/internal/events"
	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/paramcache"
	"github.com/roadrover/ivi-audio/internal/remote"
)

// State is the connection state of a Proxy.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Reasons logged when an operation finds no service bound.
var (
	ErrNotConnected = errors.New("proxy: audio service not connected")
	ErrTerminated   = errors.New("proxy: closed")
)

// Proxy is the single entry point to the remote audio service.
//
// Every public operation is total: reads return a documented sentinel and
// writes become no-ops when the service is not bound or a call fails.
// Operations block for the duration of the remote round trip.
type Proxy struct {
	// mu guards svc, sink and state. It is read-held for the whole of every
	// remote call, so a disconnect waits for in-flight calls to resolve.
	mu    sync.RWMutex
	svc   remote.Service
	sink  *sink
	state State

	// cacheMu guards cache and the validity of the current sink.
	cacheMu sync.Mutex
	cache   *paramcache.Cache

	bus       *events.Bus
	unhandle  func()
	listeners slots
}

// New creates a disconnected proxy that posts its events to bus. Listener
// callbacks are made from the goroutine running bus.Run.
func New(bus *events.Bus) *Proxy {
	p := &Proxy{
		cache: paramcache.New(),
		bus:   bus,
	}
	p.unhandle = bus.Handle(p.route)
	return p
}

// OnConnected binds svc and registers a fresh notification sink with it.
// If a service is already bound the proxy disconnects from it first.
func (p *Proxy) OnConnected(svc remote.Service) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateTerminated:
		slog.Warn("proxy: connect after close ignored")
		return
	case StateConnected:
		slog.Warn("proxy: connected while already connected, dropping previous service")
		p.disconnectLocked()
	}

	s := &sink{p: p, valid: true}
	p.svc = svc
	p.sink = s
	p.state = StateConnected
	if err := svc.RegisterCallback(s); err != nil {
		slog.Error("proxy: failed to register notification sink", "err", err)
	}
	slog.Info("proxy: connected to audio service")
}

// OnDisconnected unbinds the service and forgets every cached value.
// It returns after all in-flight remote calls have resolved.
func (p *Proxy) OnDisconnected() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateConnected {
		return
	}
	p.disconnectLocked()
	slog.Info("proxy: disconnected from audio service")
}

// disconnectLocked requires p.mu to be held for writing.
func (p *Proxy) disconnectLocked() {
	p.cacheMu.Lock()
	p.sink.valid = false
	p.cacheMu.Unlock()

	// The transport is usually gone already.
	if err := p.svc.UnregisterCallback(p.sink); err != nil {
		slog.Debug("proxy: unregister notification sink failed", "err", err)
	}
	p.svc = nil
	p.sink = nil
	p.state = StateDisconnected

	p.cacheMu.Lock()
	p.cache.Clear()
	p.cacheMu.Unlock()
}

// Close disconnects, drops both listeners and stops routing events.
// The proxy is unusable afterwards; operations behave as if disconnected.
func (p *Proxy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateTerminated {
		return
	}
	if p.state == StateConnected {
		p.disconnectLocked()
	}
	p.state = StateTerminated
	p.unhandle()
	p.listeners.close()

	p.cacheMu.Lock()
	p.cache.Clear()
	p.cacheMu.Unlock()
	slog.Info("proxy: closed")
}

// State returns the current connection state.
func (p *Proxy) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Connected reports whether a service is bound.
func (p *Proxy) Connected() bool {
	return p.State() == StateConnected
}

// CacheLen returns the number of parameters with a known value.
func (p *Proxy) CacheLen() int {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	return p.cache.Len()
}

// observe records a value read from or written to the service.
func (p *Proxy) observe(id models.ParamID, value int) bool {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	return p.cache.Observe(id, value)
}

func logArgs(op string, attrs []any) []any {
	return append([]any{"op", op}, attrs...)
}

// notConnected requires p.mu to be held.
func (p *Proxy) notConnected(op string, attrs []any) {
	err := ErrNotConnected
	if p.state == StateTerminated {
		err = ErrTerminated
	}
	slog.Debug("proxy: operation skipped", append(logArgs(op, attrs), "err", err)...)
}

func remoteFailed(op string, err error, attrs []any) {
	slog.Error("proxy: remote call failed", append(logArgs(op, attrs), "err", err)...)
}

// read runs fn against the bound service. It reports false, and returns
// zero, when no service is bound or the call fails.
func read[T any](p *Proxy, op string, zero T, fn func(remote.Service) (T, error), attrs ...any) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.svc == nil {
		p.notConnected(op, attrs)
		return zero, false
	}
	return fetch(p.svc, op, zero, fn, attrs...)
}

// fetch is read for callers already holding p.mu.
func fetch[T any](svc remote.Service, op string, zero T, fn func(remote.Service) (T, error), attrs ...any) (T, bool) {
	v, err := fn(svc)
	if err != nil {
		remoteFailed(op, err, attrs)
		return zero, false
	}
	return v, true
}

// invoke runs a remote command. Failures are logged and not retried.
func (p *Proxy) invoke(op string, fn func(remote.Service) error, attrs ...any) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.svc == nil {
		p.notConnected(op, attrs)
		return
	}
	if err := fn(p.svc); err != nil {
		remoteFailed(op, err, attrs)
	}
}

// probe runs an availability check for a composite read. It must be called
// with p.mu read-held and a service bound.
func probe(svc remote.Service, op string, fn func(remote.Service) (bool, error), attrs ...any) bool {
	ok, _ := fetch(svc, op, false, fn, attrs...)
	return ok
}

// bind fixes the argument of a one-argument service method.
func bind[A, T any](fn func(remote.Service, A) (T, error), a A) func(remote.Service) (T, error) {
	return func(svc remote.Service) (T, error) {
		return fn(svc, a)
	}
}
