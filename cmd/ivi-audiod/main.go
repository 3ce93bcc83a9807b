// Command ivi-audiod binds to the head unit audio service, keeps a parameter
// cache in front of it and exposes it over HTTP.
// Run with --mock to use a simulated audio service (no D-Bus peer required).
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/roadrover/ivi-audio/internal/api"
	"github.com/roadrover/ivi-audio/internal/config"
	"github.com/roadrover/ivi-audio/internal/connector"
	"github.com/roadrover/ivi-audio/internal/effects"
	"github.com/roadrover/ivi-audio/internal/events"
	"github.com/roadrover/ivi-audio/internal/models"
	"github.com/roadrover/ivi-audio/internal/proxy"
	"github.com/roadrover/ivi-audio/internal/remote"
	"github.com/roadrover/ivi-audio/internal/zeroconf"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var (
		mock       = flag.Bool("mock", false, "use a simulated audio service (no D-Bus peer required)")
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		cfgDir     = flag.String("config-dir", "", "config directory (default: ~/.config/ivi-audio)")
		debug      = flag.Bool("debug", false, "enable debug logging")
		sessionBus = flag.Bool("session-bus", false, "connect over the session bus (overrides config)")
	)
	flag.Parse()

	// Configure logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Resolve config directory
	if *cfgDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("cannot determine home directory", "err", err)
			os.Exit(1)
		}
		*cfgDir = filepath.Join(home, ".config", "ivi-audio")
	}
	if err := os.MkdirAll(*cfgDir, 0755); err != nil {
		slog.Error("cannot create config directory", "path", *cfgDir, "err", err)
		os.Exit(1)
	}

	// Settings
	store := config.NewJSONStore(*cfgDir)
	settings, err := store.Load()
	if err != nil {
		slog.Error("cannot load settings", "path", store.Path(), "err", err)
		os.Exit(1)
	}
	if !store.Exists() {
		if err := store.Save(settings); err != nil {
			slog.Warn("cannot write default settings", "path", store.Path(), "err", err)
		}
	}
	if *addr != "" {
		settings.HTTPAddr = *addr
	}
	if *sessionBus {
		settings.Bus = models.BusSession
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Event bus and proxy
	bus := events.NewBus()
	busDone := make(chan struct{})
	go func() {
		defer close(busDone)
		bus.Run(ctx)
	}()

	px := proxy.New(bus)
	px.SetAudioListener("ivi-audiod", logListener{})
	px.SetVolumeBarListener("ivi-audiod", logListener{})

	// Expert effect profiles
	var watcher *effects.Watcher
	if settings.EffectsDir != "" {
		watcher, err = effects.New(settings.EffectsDir, px, settings.ApplyEffects)
		if err != nil {
			slog.Warn("effects watcher disabled", "dir", settings.EffectsDir, "err", err)
			watcher = nil
		}
	}

	// Connection manager
	dial := dialer(settings, *mock)
	mgr := connector.New(dial, px, connector.Options{
		Interval: time.Duration(settings.ReconnectIntervalMS) * time.Millisecond,
		Burst:    settings.ReconnectBurst,
		OnStateChange: func(connected bool) {
			slog.Info("audio service connection changed", "connected", connected)
			if connected && watcher != nil {
				if n, err := watcher.Rescan(); err != nil {
					slog.Warn("effects rescan failed", "err", err)
				} else {
					slog.Info("effects registered", "count", n)
				}
			}
		},
	})
	mgrDone := make(chan struct{})
	go func() {
		defer close(mgrDone)
		if err := mgr.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("connector stopped", "err", err)
		}
	}()

	// Zeroconf mDNS registration
	if settings.Advertise {
		port, err := zeroconf.PortFromAddr(settings.HTTPAddr)
		if err != nil {
			slog.Warn("zeroconf disabled", "addr", settings.HTTPAddr, "err", err)
		} else {
			hostname, _ := os.Hostname()
			zc := zeroconf.New(hostname, port, zeroconf.Info{
				Version:     version,
				ServiceName: settings.ServiceName,
				Mock:        *mock,
			})
			go func() {
				if err := zc.Start(ctx); err != nil {
					slog.Warn("zeroconf failed", "err", err)
				}
			}()
		}
	}

	// HTTP server
	srv := &http.Server{
		Addr:         settings.HTTPAddr,
		Handler:      api.NewRouter(px, bus),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout (needed for SSE)
		IdleTimeout:  120 * time.Second,
		// SSE streams end with the daemon
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("ivi-audiod listening", "addr", settings.HTTPAddr, "mock", *mock, "config", store.Path(), "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	<-mgrDone
	if watcher != nil {
		watcher.Close()
	}
	px.Close()
	<-busDone

	// Graceful HTTP shutdown
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Warn("server shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
}

// dialer returns how the connector reaches the audio service.
func dialer(s *models.Settings, mock bool) connector.Dialer {
	if mock {
		slog.Info("using mock audio service")
		svc := remote.NewMock()
		return func(context.Context) (remote.Conn, error) {
			return svc, nil
		}
	}
	opts := remote.DBusOptions{
		Session:     s.Bus == models.BusSession,
		ServiceName: s.ServiceName,
		ObjectPath:  s.ObjectPath,
	}
	slog.Info("using D-Bus audio service", "bus", s.Bus, "name", opts.ServiceName, "path", opts.ObjectPath)
	return func(ctx context.Context) (remote.Conn, error) {
		return remote.DialDBus(ctx, opts)
	}
}
