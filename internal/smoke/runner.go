package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/astrohero/pkg/logger"
)

// HTTP paths exercised by a run.
const (
	healthPath    = "/api/health"
	calculatePath = "/api/calculate_chart"
	batchPath     = "/api/calculate_batch"
)

type chartReply struct {
	Success   bool            `json:"success"`
	Character json.RawMessage `json:"character"`
	ErrorCode string          `json:"error_code"`
	Metadata  struct {
		Cached bool `json:"cached"`
	} `json:"metadata"`
}

type batchReply struct {
	Results []struct {
		Index     int             `json:"index"`
		Success   bool            `json:"success"`
		Character json.RawMessage `json:"character"`
		ErrorCode string          `json:"error_code"`
	} `json:"results"`
}

// observations collects every character returned per subject index.
type observations struct {
	mu   sync.Mutex
	seen [][]json.RawMessage
}

func (o *observations) add(i int, raw json.RawMessage) {
	o.mu.Lock()
	o.seen[i] = append(o.seen[i], raw)
	o.mu.Unlock()
}

// Run executes a complete smoke run: health check, concurrent submissions,
// an optional batch pass and the determinism check. The returned Stats are
// filled in even when an error is returned.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	cfg := config.withDefaults()
	stats := &Stats{StartTime: time.Now()}
	log := cfg.Logger

	log.Info(ctx, "starting astrohero smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("subjects", cfg.Subjects),
		logger.Int("repeats", cfg.Repeats),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	if cfg.Subjects < 1 {
		return stats, ErrNoSubjects
	}

	c := newClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkHealth(ctx, c); err != nil {
		return stats, err
	}

	// Step 2: Generate subjects
	subjects := GenerateSubjects(cfg.Subjects, cfg.Seed)
	stats.SubjectsGenerated = len(subjects)
	obs := &observations{seen: make([][]json.RawMessage, len(subjects))}

	// Step 3: Submit every subject Repeats times concurrently
	submitAll(ctx, &cfg, c, subjects, obs, stats)

	// Step 4: Batch pass
	if cfg.BatchSize > 0 {
		submitBatches(ctx, &cfg, c, subjects, obs, stats)
	}

	// Step 5: Verify
	stats.Mismatches = verify(cfg.Output, obs.seen, cfg.Verbose)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayStats(cfg.Output, stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d subjects", ErrNondeterministic, stats.Mismatches)
	}
	if stats.RequestsFailed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrRequestsFailed, stats.RequestsFailed, stats.RequestsSent)
	}
	log.Info(ctx, "smoke run completed successfully", logger.Duration("duration", stats.Duration))
	return stats, nil
}

// checkHealth verifies the service is up and reports itself healthy.
func checkHealth(ctx context.Context, c *client) error {
	status, body, err := c.get(ctx, healthPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("%w: reported %q", ErrUnhealthy, health.Status)
	}
	return nil
}

// submitAll fans the subjects out to a worker pool.
func submitAll(ctx context.Context, cfg *Config, c *client, subjects []Subject, obs *observations, stats *Stats) {
	total := len(subjects) * cfg.Repeats
	fmt.Fprintf(cfg.Output, "📤 Submitting %d requests with %d workers...\n", total, cfg.Workers)

	var sent, ok, failed, cached int64

	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				atomic.AddInt64(&sent, 1)
				reply, err := submitOne(ctx, c, subjects[i])
				if err != nil {
					atomic.AddInt64(&failed, 1)
					cfg.Logger.Debug(ctx, "request failed", logger.Int("subject", i), logger.Error(err))
					continue
				}
				atomic.AddInt64(&ok, 1)
				if reply.Metadata.Cached {
					atomic.AddInt64(&cached, 1)
				}
				obs.add(i, reply.Character)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for r := 0; r < cfg.Repeats; r++ {
			for i := range subjects {
				select {
				case <-ctx.Done():
					return
				case jobs <- i:
				}
			}
		}
	}()

	wg.Wait()

	stats.RequestsSent += int(sent)
	stats.RequestsOK += int(ok)
	stats.RequestsFailed += int(failed)
	stats.CacheHits += int(cached)
}

func submitOne(ctx context.Context, c *client, s Subject) (chartReply, error) {
	var reply chartReply
	status, body, err := c.post(ctx, calculatePath, s)
	if err != nil {
		return reply, err
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return reply, fmt.Errorf("decode status %d: %w", status, err)
	}
	if status != http.StatusOK || !reply.Success {
		return reply, fmt.Errorf("status %d: %s", status, reply.ErrorCode)
	}
	return reply, nil
}

// submitBatches sends the subjects in order, BatchSize at a time.
func submitBatches(ctx context.Context, cfg *Config, c *client, subjects []Subject, obs *observations, stats *Stats) {
	for start := 0; start < len(subjects); start += cfg.BatchSize {
		if ctx.Err() != nil {
			return
		}
		end := min(start+cfg.BatchSize, len(subjects))
		chunk := subjects[start:end]

		stats.BatchRequests++
		stats.RequestsSent += len(chunk)

		status, body, err := c.post(ctx, batchPath, map[string]any{"subjects": chunk})
		var reply batchReply
		if err == nil {
			err = json.Unmarshal(body, &reply)
		}
		if err != nil || status != http.StatusOK {
			cfg.Logger.Warn(ctx, "batch request failed", logger.Int("status", status), logger.Error(err))
			stats.RequestsFailed += len(chunk)
			continue
		}
		for _, r := range reply.Results {
			if !r.Success || r.Index < 0 || r.Index >= len(chunk) {
				stats.RequestsFailed++
				continue
			}
			stats.RequestsOK++
			obs.add(start+r.Index, r.Character)
		}
	}
}
