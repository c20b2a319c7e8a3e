package service

import (
	"github.com/okian/astrohero/internal/adapters/cache"
	"github.com/okian/astrohero/internal/adapters/ephemeris"
	"github.com/okian/astrohero/internal/domain/character"
	"github.com/okian/astrohero/pkg/logger"
	"github.com/okian/astrohero/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCalculator replaces the ephemeris.
func WithCalculator(c ephemeris.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithDeriver replaces the character deriver.
func WithDeriver(d *character.Deriver) Option {
	return func(s *Service) {
		if d != nil {
			s.deriver = d
		}
	}
}

// WithCache sets the result cache. Passing nil disables caching.
func WithCache(c cache.Cache[Result]) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithMetrics reports service activity to m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxBatchSize caps the subjects accepted by one CalculateBatch call.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatch = n
		}
	}
}

// WithEngine names the calculation engine reported to clients.
func WithEngine(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.engine = name
		}
	}
}

// WithCacheVariant adds settings that change results, such as the
// background length, to the cache key.
func WithCacheVariant(v string) Option {
	return func(s *Service) {
		s.variant = v
	}
}
