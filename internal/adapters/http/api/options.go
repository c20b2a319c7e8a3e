package api

import (
	"net/http"
	"time"

	"github.com/okian/astrohero/pkg/logger"
	"github.com/okian/astrohero/pkg/metrics"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMetrics records HTTP metrics and serves /metrics from m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDocs serves h at the root path.
func WithDocs(h http.Handler) Option {
	return func(s *Server) {
		s.docs = h
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// WithEnvironment names the deployment environment.
func WithEnvironment(env string) Option {
	return func(s *Server) {
		if env != "" {
			s.environment = env
		}
	}
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithRequestTimeout bounds each calculation.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDebug includes error details in 5xx responses.
func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}
