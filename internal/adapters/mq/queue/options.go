package queue

import "github.com/okian/astrohero/pkg/metrics"

type settings struct {
	capacity int
	metrics  *metrics.Manager
}

// Option configures an InMemoryQueue.
type Option func(*settings)

// WithCapacity sets the maximum number of queued items.
func WithCapacity(capacity int) Option {
	return func(s *settings) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithMetrics reports queue activity to m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *settings) {
		s.metrics = m
	}
}
