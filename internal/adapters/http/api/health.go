package api

import (
	"math"
	"net/http"
	"runtime"
)

type healthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Engine        string            `json:"engine"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	RequestCount  uint64            `json:"request_count"`
	ErrorCount    uint64            `json:"error_count"`
	SuccessRate   float64           `json:"success_rate"`
	Timestamp     string            `json:"timestamp"`
	Environment   healthEnvironment `json:"environment"`
}

type healthEnvironment struct {
	Name          string `json:"name"`
	GoVersion     string `json:"go_version"`
	Platform      string `json:"platform"`
	Workers       int    `json:"workers"`
	QueueLength   int    `json:"queue_length"`
	QueueCapacity int    `json:"queue_capacity"`
	CacheEntries  int    `json:"cache_entries"`
}

// Status summarizes the server for the health endpoint and the docs page.
type Status struct {
	Engine      string
	Version     string
	Uptime      float64 // seconds
	Requests    uint64
	Errors      uint64
	SuccessRate float64 // percent, one decimal
}

// Status returns the current server summary.
func (s *Server) Status() Status {
	requests, errs := s.metrics.Totals()
	return Status{
		Engine:      s.deps.Engine(),
		Version:     s.version,
		Uptime:      s.Uptime().Seconds(),
		Requests:    requests,
		Errors:      errs,
		SuccessRate: successRate(requests, errs),
	}
}

func successRate(requests, errs uint64) float64 {
	if requests == 0 {
		return 100
	}
	if errs > requests {
		errs = requests
	}
	return math.Round(float64(requests-errs)/float64(requests)*1000) / 10
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, r, NewKind("api.health", ErrMethodNotAllowed))
		return
	}
	st := s.Status()
	svc := s.deps.Stats()
	status := "healthy"
	if !svc.Started {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        status,
		Version:       st.Version,
		Engine:        st.Engine,
		UptimeSeconds: int64(math.Round(st.Uptime)),
		RequestCount:  st.Requests,
		ErrorCount:    st.Errors,
		SuccessRate:   st.SuccessRate,
		Timestamp:     now(),
		Environment: healthEnvironment{
			Name:          s.environment,
			GoVersion:     runtime.Version(),
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
			Workers:       svc.Workers,
			QueueLength:   svc.QueueLength,
			QueueCapacity: svc.QueueCapacity,
			CacheEntries:  svc.CacheEntries,
		},
	})
}
