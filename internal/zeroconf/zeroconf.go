// Package zeroconf advertises the audio control API over mDNS/DNS-SD so
// diagnostic tools on the vehicle network can find it.
package zeroconf

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/grandcat/zeroconf"
)

// ServiceType is the DNS-SD service type of the control API.
const ServiceType = "_ivi-audio._tcp"

// Info is published in the TXT records.
type Info struct {
	Version     string
	ServiceName string // D-Bus name of the audio service
	Mock        bool
}

// TXTRecords renders info as DNS-SD TXT records.
func TXTRecords(info Info) []string {
	txt := []string{"version=" + info.Version, "path=/api"}
	if info.ServiceName != "" {
		txt = append(txt, "service="+info.ServiceName)
	}
	if info.Mock {
		txt = append(txt, "mock=1")
	}
	return txt
}

// PortFromAddr extracts the port of a listen address such as ":8470".
func PortFromAddr(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("zeroconf: invalid port %q", p)
	}
	return port, nil
}

// Service manages mDNS service registration.
type Service struct {
	name string // instance name, e.g. the hostname
	port int
	txt  []string
}

// New creates a Service that will advertise the API on the given port.
func New(name string, port int, info Info) *Service {
	return &Service{
		name: name,
		port: port,
		txt:  TXTRecords(info),
	}
}

// Start registers the mDNS service and blocks until ctx is cancelled, at which
// point it shuts down the server cleanly.
func (s *Service) Start(ctx context.Context) error {
	server, err := zeroconf.Register(
		s.name,      // instance name
		ServiceType, // service type
		"local.",    // domain
		s.port,      // port
		s.txt,       // TXT records
		nil,         // ifaces: nil means all interfaces
	)
	if err != nil {
		return fmt.Errorf("zeroconf register: %w", err)
	}
	slog.Info("zeroconf: registered mDNS service",
		"name", s.name,
		"port", s.port,
		"txt", s.txt,
	)

	<-ctx.Done()

	server.Shutdown()
	slog.Info("zeroconf: mDNS service unregistered")
	return nil
}
