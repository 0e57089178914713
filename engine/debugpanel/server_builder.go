package debugpanel

import (
	"log/slog"
	"net/http"
)

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*Server)

// WithAddr sets the listen address (default "127.0.0.1:8090").
//
// Parameters:
//   - addr: host:port to bind
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAddr(addr string) ServerBuilderOption {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger sets the logger for connection and request diagnostics.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithLogger(l *slog.Logger) ServerBuilderOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAllowAnyOrigin accepts websocket connections from pages served elsewhere.
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithAllowAnyOrigin() ServerBuilderOption {
	return func(s *Server) {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
}
