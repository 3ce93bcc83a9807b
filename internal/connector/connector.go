// Package connector keeps a proxy bound to the audio service: it dials,
// waits for the connection to drop and dials again, pacing attempts with a
// token bucket.
package connector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/roadrover/ivi-audio/internal/remote"
)

const (
	defaultInterval = 2 * time.Second
	defaultBurst    = 3
)

// Dialer opens a connection to the audio service.
type Dialer func(ctx context.Context) (remote.Conn, error)

// Handler is driven through connection state transitions.
type Handler interface {
	OnConnected(svc remote.Service)
	OnDisconnected()
}

// Options tunes a Manager. Zero values select defaults.
type Options struct {
	// Interval is the sustained spacing between dial attempts.
	Interval time.Duration
	// Burst is how many attempts may be made back to back before Interval
	// pacing applies.
	Burst int
	// OnStateChange is called after each transition, on the Run goroutine.
	OnStateChange func(connected bool)
}

// Manager runs the dial loop. It is safe to query from any goroutine.
type Manager struct {
	dial    Dialer
	handler Handler
	opts    Options
	limiter *rate.Limiter

	mu        sync.Mutex
	connected bool
	attempts  int
	since     time.Time
}

// New creates a Manager. Nothing happens until Run is called.
func New(dial Dialer, h Handler, opts Options) *Manager {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	return &Manager{
		dial:    dial,
		handler: h,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.Interval), opts.Burst),
	}
}

// Run dials and redials until ctx is done. A live connection is handed to
// the handler and torn down again when ctx ends.
func (m *Manager) Run(ctx context.Context) error {
	for {
		if err := m.limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}

		m.mu.Lock()
		m.attempts++
		attempt := m.attempts
		m.mu.Unlock()

		conn, err := m.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("connector: dial failed", "attempt", attempt, "err", err)
			continue
		}

		m.serve(ctx, conn)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// serve keeps conn bound until it drops or ctx ends.
func (m *Manager) serve(ctx context.Context, conn remote.Conn) {
	m.handler.OnConnected(conn)
	m.setConnected(true)
	slog.Info("connector: audio service connected")

	select {
	case <-conn.Done():
		slog.Warn("connector: audio service connection lost")
	case <-ctx.Done():
	}

	m.handler.OnDisconnected()
	m.setConnected(false)
	if err := conn.Close(); err != nil {
		slog.Debug("connector: close failed", "err", err)
	}
}

func (m *Manager) setConnected(connected bool) {
	m.mu.Lock()
	m.connected = connected
	if connected {
		m.attempts = 0
		m.since = time.Now()
	}
	m.mu.Unlock()

	if m.opts.OnStateChange != nil {
		m.opts.OnStateChange(connected)
	}
}

// Connected reports whether a connection is currently bound.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Since returns when the current connection was established. It is the zero
// time while disconnected.
func (m *Manager) Since() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return time.Time{}
	}
	return m.since
}
