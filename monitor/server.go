package monitor

import (
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
)

// Server serves a Hub at /ws
type Server struct {
	addr   string
	hub    *Hub
	logger *log.Logger

	mu     sync.Mutex
	server *http.Server
	bound  string
}

// NewServer creates a monitor server for addr, e.g. ":8080"
func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{addr: addr, hub: hub, logger: logger}
}

// Name implements service.Service
func (s *Server) Name() string {
	return "monitor"
}

// Dependencies implements service.Service
func (s *Server) Dependencies() []string {
	return nil
}

// Start binds the listener and begins serving and broadcasting
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", s.hub)

	s.mu.Lock()
	s.server = &http.Server{Handler: mux}
	s.bound = ln.Addr().String()
	srv := s.server
	s.mu.Unlock()

	s.hub.Start()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("Monitor server failed: %v", err)
		}
	}()
	s.logger.Printf("Monitor listening on %s", s.bound)
	return nil
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Stop closes the listener and every client
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	err := srv.Close()
	s.hub.Stop()
	return err
}
