// Package service ties the ephemeris, the character deriver, the result cache
// and the batch worker pool together behind the operations the HTTP API needs.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/astrohero/internal/adapters/cache"
	"github.com/okian/astrohero/internal/adapters/ephemeris"
	"github.com/okian/astrohero/internal/adapters/mq/queue"
	"github.com/okian/astrohero/internal/adapters/mq/worker"
	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/character"
	"github.com/okian/astrohero/internal/domain/model"
	"github.com/okian/astrohero/pkg/logger"
	"github.com/okian/astrohero/pkg/metrics"
)

// Default service configuration constants.
const (
	DefaultEngine       = "approximate-ephemeris"
	defaultQueueSize    = 1024
	defaultMaxBatchSize = 50
	stopTimeout         = 10 * time.Second
)

type job = worker.Job[model.BirthData, Result]

// BatchItem is the outcome for one subject of a batch, in input order.
type BatchItem struct {
	Index  int
	JobID  string
	Result Result
	Err    error
}

// Stats is a point-in-time view used by the health endpoint.
type Stats struct {
	Started       bool          `json:"started"`
	Engine        string        `json:"engine"`
	Workers       int           `json:"workers"`
	QueueCapacity int           `json:"queue_capacity"`
	QueueLength   int           `json:"queue_length"`
	CacheEntries  int           `json:"cache_entries"`
	Uptime        time.Duration `json:"-"`
	Requests      uint64        `json:"request_count"`
	Errors        uint64        `json:"error_count"`
}

// SuccessRate is the percentage of requests that did not end in an error.
func (st Stats) SuccessRate() float64 {
	if st.Requests == 0 {
		return 100
	}
	ok := float64(st.Requests) - float64(st.Errors)
	if ok < 0 {
		ok = 0
	}
	return ok / float64(st.Requests) * 100
}

// chartSettings is implemented by calculators whose settings change results.
type chartSettings interface {
	HouseSystem() ephemeris.HouseSystem
	DefaultTimezone() string
}

// Service derives character sheets from birth data.
type Service struct {
	mu sync.RWMutex

	// Core components
	calculator ephemeris.Calculator
	deriver    *character.Deriver
	cache      cache.Cache[Result]
	metrics    *metrics.Manager
	queue      *queue.InMemoryQueue[job]
	pool       *worker.Pool[model.BirthData, Result]

	// Configuration
	workerCount int
	queueSize   int
	maxBatch    int
	engine      string
	variant     string

	// State
	started   bool
	createdAt time.Time

	logger logger.Logger
}

// New constructs a Service. Without options it uses the approximate
// ephemeris, the default deriver and no cache.
func New(opts ...Option) *Service {
	s := &Service{
		calculator:  ephemeris.NewApproximate(),
		deriver:     character.NewDeriver(),
		workerCount: runtime.NumCPU(),
		queueSize:   defaultQueueSize,
		maxBatch:    defaultMaxBatchSize,
		engine:      DefaultEngine,
		createdAt:   time.Now(),
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine names the calculation engine.
func (s *Service) Engine() string { return s.engine }

// MaxBatchSize is the largest batch CalculateBatch accepts.
func (s *Service) MaxBatchSize() int { return s.maxBatch }

// Start creates the job queue and starts the batch workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.queue = queue.NewInMemoryQueue[job](
		queue.WithCapacity(s.queueSize),
		queue.WithMetrics(s.metrics),
	)
	s.pool = worker.NewPool[model.BirthData, Result](
		s.queue,
		worker.ProcessorFunc[model.BirthData, Result](s.Calculate),
		worker.WithWorkers(s.workerCount),
		worker.WithLogger(s.logger.Named("workers")),
		worker.WithMetrics(s.metrics),
	)
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.String("engine", s.engine),
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("max_batch", s.maxBatch),
	)
	return nil
}

// Stop closes the queue and waits for in-flight batch jobs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not stop cleanly", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "service stopped")
}

// Calculate validates b, computes its chart and derives the character. A
// cached result is returned when the same request was answered recently.
func (s *Service) Calculate(ctx context.Context, b model.BirthData) (Result, error) {
	start := time.Now()
	b.Name = strings.TrimSpace(b.Name)
	b.City = strings.TrimSpace(b.City)
	if err := b.Validate(); err != nil {
		return Result{}, err
	}

	tz, variant := s.chartSettings()
	key := cache.Key(b, tz, variant)
	if s.cache != nil {
		if r, ok := s.cache.Get(ctx, key); ok {
			s.metrics.RecordCacheHit()
			r.Cached = true
			return r, nil
		}
		s.metrics.RecordCacheMiss()
	}

	chart, err := s.calculator.Calculate(ctx, b)
	if err != nil {
		s.metrics.RecordChartError()
		s.logger.Error(ctx, "chart computation failed", logger.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrCalculation, err)
	}

	sheet, err := s.deriver.DeriveCharacter(chart, b.Name)
	if err != nil {
		s.metrics.RecordDerivationError(derivationReason(err))
		s.logger.Error(ctx, "character derivation failed", logger.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrCalculation, err)
	}

	r := Result{
		Character: sheet,
		AstroData: newAstroData(b, tz, chart),
		Warnings:  warningStrings(sheet.Warnings),
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, r)
	}

	elapsed := time.Since(start)
	s.metrics.RecordDerivation(sheet.Class.ID.String(), sheet.Rating.String(), float64(elapsed.Microseconds())/1000)
	s.logger.Debug(ctx, "character derived",
		logger.String("class", sheet.Class.ID.String()),
		logger.String("rating", sheet.Rating.String()),
		logger.Int("total", sheet.Total),
		logger.Duration("elapsed", elapsed),
	)
	return r, nil
}

// CalculateBatch runs subjects through the worker pool. Subjects the queue
// cannot take fail with ErrBackpressure; the rest carry their own result or
// error. Items still pending when ctx ends carry ctx's error.
func (s *Service) CalculateBatch(ctx context.Context, subjects []model.BirthData) ([]BatchItem, error) {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()

	switch {
	case !started:
		return nil, ErrNotStarted
	case len(subjects) == 0:
		return nil, ErrEmptyBatch
	case len(subjects) > s.maxBatch:
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(subjects), s.maxBatch)
	}

	items := make([]BatchItem, len(subjects))
	replies := make(chan worker.Result[Result], len(subjects))
	pending := make(map[int]bool, len(subjects))
	rejected := 0
	for i, b := range subjects {
		id := uuid.NewString()
		items[i] = BatchItem{Index: i, JobID: id}
		if !q.Enqueue(ctx, job{ID: id, Index: i, Payload: b, Reply: replies}) {
			items[i].Err = ErrBackpressure
			rejected++
			continue
		}
		pending[i] = true
	}
	s.metrics.RecordBatch(len(subjects), rejected)
	if rejected > 0 {
		s.logger.Warn(ctx, "batch hit backpressure",
			logger.Int("size", len(subjects)),
			logger.Int("rejected", rejected),
		)
	}

	for len(pending) > 0 {
		select {
		case r := <-replies:
			items[r.Index].Result = r.Value
			items[r.Index].Err = r.Err
			delete(pending, r.Index)
		case <-ctx.Done():
			for i := range pending {
				items[i].Err = ctx.Err()
			}
			return items, nil
		}
	}
	return items, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests, errs := s.metrics.Totals()
	st := Stats{
		Started:  s.started,
		Engine:   s.engine,
		Workers:  s.workerCount,
		Uptime:   time.Since(s.createdAt),
		Requests: requests,
		Errors:   errs,
	}
	if s.queue != nil {
		st.QueueCapacity = s.queue.Capacity()
		st.QueueLength = s.queue.Len(context.Background())
	}
	if s.cache != nil {
		st.CacheEntries = s.cache.Len()
	}
	return st
}

func (s *Service) chartSettings() (timezone, variant string) {
	timezone = ephemeris.DefaultTimezone
	variant = s.deriver.Scale().Name + "|" + s.variant
	if cs, ok := s.calculator.(chartSettings); ok {
		timezone = cs.DefaultTimezone()
		variant = string(cs.HouseSystem()) + "|" + variant
	}
	return timezone, variant
}

func derivationReason(err error) string {
	if errors.Is(err, astro.ErrMissingPlacement) {
		return "missing_placement"
	}
	return "other"
}
