// Package feed broadcasts live detector results to connected display
// clients over a line-delimited JSON TCP stream, announced on the LAN via
// mDNS/DNS-SD exactly as the teacher's dns_sd.go announces its KISS-over-TCP
// service — generalized from one hard-coded service type ("_kiss-tnc._tcp")
// to this monitor's own ("_cardiomon._tcp"). The TCP transport itself is
// plain stdlib net, matching the teacher's own kissnet.go, which also sits
// on raw net.Listener underneath the dnssd announcement.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/brutella/dnssd"

	core "github.com/cardiomon/cardiomon/core"
	"github.com/cardiomon/cardiomon/internal/console"
)

const ServiceType = "_cardiomon._tcp"

// Server accepts TCP clients and fans out every Result (and implicit QRS
// event) broadcast via Publish, one JSON object per line.
type Server struct {
	mu      sync.Mutex
	clients map[net.Conn]struct{}
	ln      net.Listener
}

// Listen opens the TCP listener on port. Call Serve to start accepting
// connections and Announce to advertise it.
func Listen(port int) (*Server, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("feed: listening on port %d: %w", port, err)
	}
	return &Server{clients: make(map[net.Conn]struct{}), ln: ln}, nil
}

// Port returns the bound TCP port, useful when Listen was called with 0.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.clients[conn] = struct{}{}
		s.mu.Unlock()
		console.Log(console.Info, "feed: client connected", "remote", conn.RemoteAddr())
	}
}

// Publish broadcasts r as one JSON line to every connected client,
// dropping any client whose write fails.
func (s *Server) Publish(r core.Result) {
	line, err := json.Marshal(r)
	if err != nil {
		console.Log(console.Error, "feed: marshal failed", "err", err)
		return
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if _, err := conn.Write(line); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Close shuts the listener and every connected client down.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	return s.ln.Close()
}

// Announce advertises the feed on the LAN via mDNS/DNS-SD, the same
// brutella/dnssd pattern as the teacher's dns_sd_announce.
func Announce(name string, port int) {
	if name == "" {
		name = "cardiomon"
	}

	cfg := dnssd.Config{Name: name, Type: ServiceType, Port: port} //nolint:exhaustruct

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		console.Log(console.Error, "dns-sd: failed to create service", "err", err)
		return
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		console.Log(console.Error, "dns-sd: failed to create responder", "err", err)
		return
	}

	if _, err := rp.Add(sv); err != nil {
		console.Log(console.Error, "dns-sd: failed to add service", "err", err)
		return
	}

	console.Log(console.Info, "dns-sd: announcing feed", "port", port, "name", name)

	go func() {
		if err := rp.Respond(context.Background()); err != nil {
			console.Log(console.Error, "dns-sd: responder error", "err", err)
		}
	}()
}
