package smoke

import (
	"errors"
	"io"
	"time"

	"github.com/okian/astrohero/pkg/logger"
)

// Errors reported by a run.
var (
	ErrUnhealthy        = errors.New("smoke: service unhealthy")
	ErrNondeterministic = errors.New("smoke: responses differ for the same subject")
	ErrRequestsFailed   = errors.New("smoke: requests failed")
	ErrNoSubjects       = errors.New("smoke: no subjects")
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Subjects  int           // Number of distinct subjects to generate
	Repeats   int           // Times each subject is submitted
	BatchSize int           // Subjects per batch request; 0 skips the batch pass
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Seed      uint64        // Generator seed; equal seeds give equal subjects
	Output    io.Writer     // Progress and report output; nil discards
	Logger    logger.Logger // nil uses a no-op logger
	Verbose   bool          // Print every mismatch
}

// Subject is the request body for one chart calculation.
type Subject struct {
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	Hour      int     `json:"hour"`
	Minute    int     `json:"minute"`
	City      string  `json:"city"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Stats holds run statistics.
type Stats struct {
	SubjectsGenerated int
	RequestsSent      int
	RequestsOK        int
	RequestsFailed    int
	CacheHits         int
	BatchRequests     int
	Mismatches        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Repeats < 1 {
		out.Repeats = 1
	}
	if out.Workers < 1 {
		out.Workers = 1
	}
	if out.Timeout <= 0 {
		out.Timeout = 30 * time.Second
	}
	if out.Output == nil {
		out.Output = io.Discard
	}
	if out.Logger == nil {
		out.Logger = logger.NewNop()
	}
	return out
}
