// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Supported house systems.
const (
	HouseSystemEqual     = "equal"
	HouseSystemWholeSign = "whole_sign"
	HouseSystemPorphyry  = "porphyry"
)

// Supported rating scales.
const (
	RatingScaleStandard = "standard"
	RatingScaleExtended = "extended"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Environment is reported by the health endpoint.
	Environment string `koanf:"environment"`

	// RatingScale selects the grading table: standard or extended.
	RatingScale string `koanf:"rating_scale"`

	// BackgroundMaxLen caps the background story in grapheme clusters.
	BackgroundMaxLen int `koanf:"background_max_len"`

	// HouseSystem picks how house cusps are computed.
	HouseSystem string `koanf:"house_system"`

	// DefaultTimezone is used when a request carries none.
	DefaultTimezone string `koanf:"default_timezone"`

	// WorkerCount sets the number of batch workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory batch job queue.
	QueueSize int `koanf:"queue_size"`

	// CacheSize bounds the result cache; zero disables it.
	CacheSize int `koanf:"cache_size"`

	// CacheTTLSeconds is how long a cached result stays valid.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// MaxBatchSize caps subjects per batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// RequestTimeoutMS bounds a single calculation.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// MetricsEnabled toggles Prometheus collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// Debug exposes error details in responses.
	Debug bool `koanf:"debug"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Environment:      "production",
		RatingScale:      RatingScaleStandard,
		BackgroundMaxLen: 180,
		HouseSystem:      HouseSystemEqual,
		DefaultTimezone:  "Asia/Taipei",
		WorkerCount:      runtime.NumCPU(),
		QueueSize:        1024,
		CacheSize:        10_000,
		CacheTTLSeconds:  3600,
		MaxBatchSize:     50,
		MaxBodyBytes:     16 << 20,
		RequestTimeoutMS: 5000,
		MetricsEnabled:   true,
	}
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RatingScale != RatingScaleStandard && c.RatingScale != RatingScaleExtended:
		return fmt.Errorf("%w: unknown rating_scale %q", ErrInvalidConfig, c.RatingScale)
	case c.HouseSystem != HouseSystemEqual && c.HouseSystem != HouseSystemWholeSign && c.HouseSystem != HouseSystemPorphyry:
		return fmt.Errorf("%w: unknown house_system %q", ErrInvalidConfig, c.HouseSystem)
	case c.BackgroundMaxLen < 4:
		return fmt.Errorf("%w: background_max_len must be at least 4", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.RequestTimeoutMS <= 0:
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
