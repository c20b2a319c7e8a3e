// Package metrics provides Prometheus metrics for the astrohero service.
package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every metric of one service instance. It is built once in
// main and handed to the components that record into it. All methods are
// safe on a nil *Manager, which records nothing.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	runtime          bool
	registry         *prometheus.Registry

	// Plain totals for the health endpoint and status page.
	requests atomic.Uint64
	errors   atomic.Uint64

	// Derivation metrics
	derivations       *prometheus.CounterVec
	derivationLatency prometheus.Histogram
	chartErrors       prometheus.Counter
	derivationErrors  *prometheus.CounterVec

	// Cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByType        *prometheus.CounterVec

	// Queue and worker metrics
	queueSize       prometheus.Gauge
	queueCapacity   prometheus.Gauge
	queueEnqueue    prometheus.Counter
	queueDequeue    prometheus.Counter
	queueErrors     prometheus.Counter
	workerCount     prometheus.Gauge
	workerLatency   prometheus.Histogram
	batchSize       prometheus.Histogram
	batchRejections prometheus.Counter
}

// NewManager creates a metrics manager on its own registry unless one is supplied.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		namespace:        "astrohero",
		subsystem:        "api",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	if m.runtime {
		for _, c := range []prometheus.Collector{
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		} {
			if err := m.registry.Register(c); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrRegister, err)
			}
		}
	}

	if err := m.initializeMetrics(); err != nil {
		return nil, err
	}
	return m, nil
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() (err error) {
	// promauto panics on duplicate registration; report it as an error instead.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRegister, r)
		}
	}()
	auto := promauto.With(m.registry)

	m.derivations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derivations_total",
		Help:      "Characters derived, by class and rating tier",
	}, []string{"class", "rating"})

	m.derivationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derivation_latency_milliseconds",
		Help:      "Time from birth data to finished sheet in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.chartErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_computation_errors_total",
		Help:      "Ephemeris failures",
	})

	m.derivationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derivation_errors_total",
		Help:      "Derivation failures by reason",
	}, []string{"reason"})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Result cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Result cache misses",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Error responses by endpoint and error code",
	}, []string{"endpoint", "error_code"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Jobs waiting in the batch queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum number of queued jobs",
	})

	m.queueEnqueue = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueued_total",
		Help:      "Jobs accepted by the queue",
	})

	m.queueDequeue = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeued_total",
		Help:      "Jobs taken by workers",
	})

	m.queueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Jobs rejected because the queue was full or closed",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Running batch workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Time a worker spends on one job in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size",
		Help:      "Subjects per batch request",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	})

	m.batchRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_backpressure_total",
		Help:      "Batch items refused because the queue was full",
	})
	return nil
}

func (m *Manager) on() bool { return m != nil && m.enabled }

// RecordRequest counts one handled request for the plain totals.
func (m *Manager) RecordRequest() {
	if m == nil {
		return
	}
	m.requests.Add(1)
}

// RecordErrorResponse counts one error response for the plain totals.
func (m *Manager) RecordErrorResponse() {
	if m == nil {
		return
	}
	m.errors.Add(1)
}

// Totals returns the plain request and error counts.
func (m *Manager) Totals() (requests, errors uint64) {
	if m == nil {
		return 0, 0
	}
	return m.requests.Load(), m.errors.Load()
}

// RecordDerivation counts a finished sheet.
func (m *Manager) RecordDerivation(class, rating string, latencyMs float64) {
	if !m.on() {
		return
	}
	m.derivations.WithLabelValues(class, rating).Inc()
	m.derivationLatency.Observe(latencyMs)
}

// RecordDerivationError counts a failed derivation by reason.
func (m *Manager) RecordDerivationError(reason string) {
	if !m.on() {
		return
	}
	m.derivationErrors.WithLabelValues(reason).Inc()
}

// RecordChartError counts an ephemeris failure.
func (m *Manager) RecordChartError() {
	if !m.on() {
		return
	}
	m.chartErrors.Inc()
}

// RecordCacheHit increments the cache hit counter.
func (m *Manager) RecordCacheHit() {
	if !m.on() {
		return
	}
	m.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func (m *Manager) RecordCacheMiss() {
	if !m.on() {
		return
	}
	m.cacheMisses.Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.on() {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error response by code.
func (m *Manager) RecordError(endpoint, code string) {
	if !m.on() {
		return
	}
	m.errorsByType.WithLabelValues(endpoint, code).Inc()
}

// UpdateQueueSize sets the current queue size.
func (m *Manager) UpdateQueueSize(size int) {
	if !m.on() {
		return
	}
	m.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func (m *Manager) UpdateQueueCapacity(capacity int) {
	if !m.on() {
		return
	}
	m.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func (m *Manager) RecordQueueEnqueue() {
	if !m.on() {
		return
	}
	m.queueEnqueue.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func (m *Manager) RecordQueueDequeue() {
	if !m.on() {
		return
	}
	m.queueDequeue.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func (m *Manager) RecordQueueEnqueueError() {
	if !m.on() {
		return
	}
	m.queueErrors.Inc()
}

// UpdateWorkerCount sets the current worker count.
func (m *Manager) UpdateWorkerCount(count int) {
	if !m.on() {
		return
	}
	m.workerCount.Set(float64(count))
}

// RecordWorkerLatency records how long a worker spent on one job.
func (m *Manager) RecordWorkerLatency(latencyMs float64) {
	if !m.on() {
		return
	}
	m.workerLatency.Observe(latencyMs)
}

// RecordBatch records a batch size and how many of its items were refused.
func (m *Manager) RecordBatch(size, rejected int) {
	if !m.on() {
		return
	}
	m.batchSize.Observe(float64(size))
	m.batchRejections.Add(float64(rejected))
}

// Registry returns the registry the manager records into.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the manager's registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
