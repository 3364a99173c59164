// Package server runs the HTTP listener and its graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default HTTP server configuration.
// WriteTimeout is zero because MCP responses may be long-lived event streams.
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8000,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// Server wraps the HTTP server.
type Server struct {
	config Config
	http   *http.Server
	log    logr.Logger

	mu             sync.Mutex
	cancelRequests context.CancelFunc
}

// NewServer creates a new HTTP server serving handler.
func NewServer(handler http.Handler, config Config, log logr.Logger) *Server {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config: config,
		http:   httpServer,
		log:    log.WithName("http"),
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start starts the HTTP server and blocks until it stops.
// Requests carry ctx's values but not its cancellation: they are cancelled by
// Shutdown once draining ends, so a signal does not abort in-flight calls.
// A clean Shutdown makes Start return nil.
func (s *Server) Start(ctx context.Context) error {
	base, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.cancelRequests = cancel
	s.mu.Unlock()

	s.log.Info("starting HTTP server", "addr", s.http.Addr)
	s.http.BaseContext = func(net.Listener) context.Context { return base }
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return nil
}

// Shutdown stops accepting connections, waits for in-flight requests until ctx is
// done, then cancels whatever is still running.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	defer s.cancelInFlight()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server shutdown complete")
	return nil
}

func (s *Server) cancelInFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelRequests != nil {
		s.cancelRequests()
	}
}
