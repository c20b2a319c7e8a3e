package worker

import (
	"time"

	"github.com/okian/astrohero/pkg/logger"
	"github.com/okian/astrohero/pkg/metrics"
)

type settings struct {
	workers         int
	shutdownTimeout time.Duration
	logger          logger.Logger
	metrics         *metrics.Manager
}

// Option configures a Pool.
type Option func(*settings)

// WithWorkers sets the number of workers. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for busy workers.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics reports worker activity to m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *settings) {
		s.metrics = m
	}
}
