// Package api declares the HTTP contract of the character service and its
// route registration.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	service "github.com/okian/astrohero/internal/app"
	"github.com/okian/astrohero/internal/domain/model"
	"github.com/okian/astrohero/pkg/logger"
	"github.com/okian/astrohero/pkg/metrics"
)

// Default server configuration constants.
const (
	DefaultVersion        = "2.0.0"
	defaultMaxBodyBytes   = 16 << 20
	defaultRequestTimeout = 5 * time.Second
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Calculate(ctx context.Context, b model.BirthData) (service.Result, error)
	CalculateBatch(ctx context.Context, subjects []model.BirthData) ([]service.BatchItem, error)
	Stats() service.Stats
	Engine() string
}

// Server wires HTTP routes for the character API.
type Server struct {
	deps    Dependencies
	metrics *metrics.Manager
	logger  logger.Logger
	docs    http.Handler

	version     string
	environment string
	maxBody     int64
	timeout     time.Duration
	debug       bool
	startedAt   time.Time
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:        deps,
		logger:      logger.NewNop(),
		version:     DefaultVersion,
		environment: "production",
		maxBody:     defaultMaxBodyBytes,
		timeout:     defaultRequestTimeout,
		startedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux. The root pattern serves the
// docs page for "/" and a JSON 404 for every other unknown path.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/api/health", s.instrument("health", s.handleHealth))
	mux.Handle("/api/calculate_chart", s.instrument("calculate_chart", s.handleCalculateChart))
	mux.Handle("/api/calculate_batch", s.instrument("calculate_batch", s.handleCalculateBatch))
	mux.Handle("/api/test", s.instrument("test", s.handleTest))
	mux.Handle("/metrics", s.metrics.Handler())
	mux.Handle("/", s.instrument("root", s.handleRoot))
}

// Handler wraps h with the middleware every request passes through.
func (s *Server) Handler(h http.Handler) http.Handler {
	return s.recoverer(s.requestID(securityHeaders(cors(s.count(h)))))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || s.docs == nil {
		s.writeError(w, r, NewKind("api.root", ErrNotFound))
		return
	}
	s.docs.ServeHTTP(w, r)
}

// Uptime reports how long the server has been running.
func (s *Server) Uptime() time.Duration { return time.Since(s.startedAt) }

type errorResponse struct {
	Success          bool     `json:"success"`
	Error            string   `json:"error"`
	ErrorCode        string   `json:"error_code"`
	MissingFields    []string `json:"missing_fields,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
	Details          string   `json:"details,omitempty"`
	Path             string   `json:"path,omitempty"`
	MaxSize          string   `json:"max_size,omitempty"`
	RequestID        string   `json:"request_id,omitempty"`
	Timestamp        string   `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	p := describe(err)
	resp := errorResponse{
		Error:            p.message,
		ErrorCode:        p.code,
		MissingFields:    p.missingFields,
		ValidationErrors: p.validationErrors,
		RequestID:        logger.RequestID(r.Context()),
		Timestamp:        now(),
	}
	switch p.code {
	case CodeNotFound:
		resp.Path = r.URL.Path
	case CodeTooLarge:
		resp.MaxSize = formatBytes(s.maxBody)
	case CodeCalculation, CodeInternal:
		resp.Details = "內部錯誤"
		if s.debug {
			resp.Details = err.Error()
		}
	}

	if rec, ok := w.(*statusRecorder); ok {
		rec.errorCode = p.code
	}
	if p.status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.Error(err))
	} else {
		s.logger.Debug(r.Context(), "request rejected", logger.String("path", r.URL.Path), logger.String("code", p.code))
	}
	writeJSON(w, p.status, resp)
}

func now() string { return time.Now().Format(time.RFC3339) }
