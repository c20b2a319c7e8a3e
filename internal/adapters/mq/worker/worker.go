// Package worker runs the pool that drains the job queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/astrohero/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// ErrShutdownTimeout is returned when workers are still busy at the deadline.
var ErrShutdownTimeout = errors.New("worker pool shutdown timed out")

// Processor turns one payload into a result.
type Processor[T, R any] interface {
	Process(ctx context.Context, payload T) (R, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc[T, R any] func(ctx context.Context, payload T) (R, error)

// Process calls f.
func (f ProcessorFunc[T, R]) Process(ctx context.Context, payload T) (R, error) {
	return f(ctx, payload)
}

// Job is a unit of work. Reply should be buffered so a worker never waits on
// a caller that stopped listening.
type Job[T, R any] struct {
	ID      string
	Index   int
	Payload T
	Reply   chan<- Result[R]
}

// Result is what a worker sends back on Job.Reply.
type Result[R any] struct {
	JobID   string
	Index   int
	Value   R
	Err     error
	Latency time.Duration
}

// Source is where workers receive jobs from.
type Source[J any] interface {
	Dequeue(ctx context.Context) <-chan J
}

// Pool runs a fixed number of workers over a Source.
type Pool[T, R any] struct {
	source    Source[Job[T, R]]
	processor Processor[T, R]
	cfg       settings

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	stopped bool
}

// NewPool creates a pool. Workers start on Start.
func NewPool[T, R any](source Source[Job[T, R]], processor Processor[T, R], opts ...Option) *Pool[T, R] {
	cfg := settings{
		workers:         runtime.NumCPU(),
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pool[T, R]{source: source, processor: processor, cfg: cfg}
}

// Size returns the number of workers.
func (p *Pool[T, R]) Size() int { return p.cfg.workers }

// Start launches the workers. Calling it more than once has no effect.
func (p *Pool[T, R]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	for i := 0; i < p.cfg.workers; i++ {
		p.wg.Add(1)
		go p.run(runCtx, p.cfg.logger.Named("worker-"+strconv.Itoa(i)))
	}
	p.cfg.metrics.UpdateWorkerCount(p.cfg.workers)
}

func (p *Pool[T, R]) run(ctx context.Context, log logger.Logger) {
	defer p.wg.Done()

	jobs := p.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			p.handle(ctx, log, job)
		}
	}
}

func (p *Pool[T, R]) handle(ctx context.Context, log logger.Logger, job Job[T, R]) {
	start := time.Now()
	value, err := p.processor.Process(ctx, job.Payload)
	latency := time.Since(start)
	p.cfg.metrics.RecordWorkerLatency(float64(latency.Microseconds()) / 1000)

	if err != nil {
		log.Debug(ctx, "job failed", logger.String("job_id", job.ID), logger.Error(err))
	}
	if job.Reply == nil {
		return
	}
	select {
	case job.Reply <- Result[R]{JobID: job.ID, Index: job.Index, Value: value, Err: err, Latency: latency}:
	case <-ctx.Done():
	}
}

// Shutdown closes the source when it supports closing, lets the workers
// drain what is already queued and waits for them. If ctx or the configured
// timeout expires first the workers are cancelled and ErrShutdownTimeout is
// returned.
func (p *Pool[T, R]) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	cancel := p.cancel
	p.mu.Unlock()

	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.cfg.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timeoutCtx, stop := context.WithTimeout(ctx, p.cfg.shutdownTimeout)
	defer stop()

	defer func() {
		if cancel != nil {
			cancel()
		}
		p.cfg.metrics.UpdateWorkerCount(0)
	}()

	select {
	case <-done:
		return nil
	case <-timeoutCtx.Done():
		p.cfg.logger.Warn(ctx, "worker shutdown timed out")
		return fmt.Errorf("%w: %w", ErrShutdownTimeout, timeoutCtx.Err())
	}
}
