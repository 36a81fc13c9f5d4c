// HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
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
// WriteTimeout leaves room for a generation that retries after timeouts.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         3001,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Server wraps the HTTP server.
type Server struct {
	config Config
	log    *zap.Logger
	http   *http.Server
}

// NewServer creates a new HTTP server for handler.
func NewServer(handler http.Handler, config Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(config.Host, fmt.Sprint(config.Port)),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Named("http")),
	}

	return &Server{
		config: config,
		log:    log,
		http:   httpServer,
	}
}

// Addr is the address the server listens on.
func (s *Server) Addr() string { return s.http.Addr }

// Start listens and serves until Shutdown. A clean shutdown returns nil.
func (s *Server) Start(_ context.Context) error {
	s.log.Info("starting HTTP server", zap.String("addr", s.http.Addr))
	return s.serve(func() error { return s.http.ListenAndServe() })
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
	return s.serve(func() error { return s.http.Serve(ln) })
}

func (s *Server) serve(fn func() error) error {
	if err := fn(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server shutdown complete")
	return nil
}
