package cache

import "time"

type settings struct {
	maxSize int
	ttl     time.Duration
}

// Option applies a configuration option to the cache.
type Option func(*settings)

// WithMaxSize bounds the number of entries.
func WithMaxSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// WithTTL sets how long entries stay fresh.
func WithTTL(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.ttl = d
		}
	}
}
