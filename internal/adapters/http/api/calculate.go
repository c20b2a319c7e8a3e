package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"time"

	service "github.com/okian/astrohero/internal/app"
	"github.com/okian/astrohero/internal/domain/model"
	"github.com/okian/astrohero/pkg/logger"
)

// TestSubject is the fixed input used by GET /api/test.
var TestSubject = model.BirthData{
	Name:      "系統測試用戶",
	Year:      1990,
	Month:     6,
	Day:       15,
	Hour:      14,
	Minute:    30,
	City:      "台北",
	Longitude: 121.55,
	Latitude:  25.017,
	Timezone:  "Asia/Taipei",
}

type metadata struct {
	CalculationTime float64 `json:"calculation_time"`
	Engine          string  `json:"engine"`
	Timestamp       string  `json:"timestamp"`
	RequestID       string  `json:"request_id"`
	Cached          bool    `json:"cached"`
}

type chartResponse struct {
	Success bool `json:"success"`
	service.Result
	Metadata metadata  `json:"metadata"`
	TestInfo *testInfo `json:"test_info,omitempty"`
}

type testInfo struct {
	TestPassed    bool    `json:"test_passed"`
	TestTime      float64 `json:"test_time"`
	EngineUsed    string  `json:"engine_used"`
	TestTimestamp string  `json:"test_timestamp"`
}

type batchRequest struct {
	Subjects []map[string]any `json:"subjects"`
}

type batchResult struct {
	Index   int  `json:"index"`
	Success bool `json:"success"`
	*service.Result
	JobID            string   `json:"job_id,omitempty"`
	Error            string   `json:"error,omitempty"`
	ErrorCode        string   `json:"error_code,omitempty"`
	MissingFields    []string `json:"missing_fields,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

type batchSummary struct {
	Total        int `json:"total"`
	Succeeded    int `json:"succeeded"`
	Failed       int `json:"failed"`
	Backpressure int `json:"backpressure"`
}

type batchResponse struct {
	Success  bool          `json:"success"`
	Results  []batchResult `json:"results"`
	Summary  batchSummary  `json:"summary"`
	Metadata metadata      `json:"metadata"`
}

// handleCalculateChart handles POST /api/calculate_chart.
func (s *Server) handleCalculateChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.calculate_chart"
	start := time.Now()
	if r.Method != http.MethodPost {
		s.writeError(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}

	var fields map[string]any
	if err := s.decodeBody(w, r, &fields); err != nil {
		s.writeError(w, r, Wrap(op, err))
		return
	}
	if len(fields) == 0 {
		s.writeError(w, r, NewKind(op, ErrEmptyRequest))
		return
	}
	b, err := model.FromFields(fields)
	if err != nil {
		s.writeError(w, r, Wrap(op, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	res, err := s.deps.Calculate(ctx, b)
	if err != nil {
		s.writeError(w, r, Wrap(op, err))
		return
	}

	s.logger.Info(r.Context(), "character generated",
		logger.String("class", res.Character.Class.ID.String()),
		logger.Bool("cached", res.Cached),
		logger.Duration("elapsed", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, chartResponse{
		Success:  true,
		Result:   res,
		Metadata: s.metadata(r, start, res.Cached),
	})
}

// handleCalculateBatch handles POST /api/calculate_batch.
func (s *Server) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.calculate_batch"
	start := time.Now()
	if r.Method != http.MethodPost {
		s.writeError(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}

	var req batchRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, Wrap(op, err))
		return
	}
	if len(req.Subjects) == 0 {
		s.writeError(w, r, NewKind(op, ErrEmptyRequest))
		return
	}

	results := make([]batchResult, len(req.Subjects))
	var (
		subjects []model.BirthData
		origin   []int
	)
	for i, fields := range req.Subjects {
		results[i].Index = i
		b, err := model.FromFields(fields)
		if err != nil {
			results[i].fail(err)
			continue
		}
		subjects = append(subjects, b)
		origin = append(origin, i)
	}

	if len(subjects) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		items, err := s.deps.CalculateBatch(ctx, subjects)
		if err != nil {
			s.writeError(w, r, Wrap(op, err))
			return
		}
		for _, item := range items {
			out := &results[origin[item.Index]]
			out.JobID = item.JobID
			if item.Err != nil {
				out.fail(item.Err)
				continue
			}
			res := item.Result
			out.Success = true
			out.Result = &res
		}
	}

	summary := batchSummary{Total: len(results)}
	for _, res := range results {
		switch {
		case res.Success:
			summary.Succeeded++
		case res.ErrorCode == CodeBackpressure:
			summary.Backpressure++
			summary.Failed++
		default:
			summary.Failed++
		}
	}

	status := http.StatusOK
	if summary.Backpressure > 0 && summary.Succeeded == 0 {
		status = http.StatusTooManyRequests
	}
	if rec, ok := w.(*statusRecorder); ok && status != http.StatusOK {
		rec.errorCode = CodeBackpressure
	}
	writeJSON(w, status, batchResponse{
		Success:  summary.Succeeded > 0,
		Results:  results,
		Summary:  summary,
		Metadata: s.metadata(r, start, false),
	})
}

func (b *batchResult) fail(err error) {
	p := describe(err)
	b.Success = false
	b.Error = p.message
	b.ErrorCode = p.code
	b.MissingFields = p.missingFields
	b.ValidationErrors = p.validationErrors
}

// handleTest handles GET /api/test by running the pipeline on TestSubject.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	const op = "api.test"
	start := time.Now()
	if r.Method != http.MethodGet {
		s.writeError(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	res, err := s.deps.Calculate(ctx, TestSubject)
	if err != nil {
		s.writeError(w, r, Wrap(op, err))
		return
	}

	meta := s.metadata(r, start, res.Cached)
	writeJSON(w, http.StatusOK, chartResponse{
		Success:  true,
		Result:   res,
		Metadata: meta,
		TestInfo: &testInfo{
			TestPassed:    true,
			TestTime:      meta.CalculationTime,
			EngineUsed:    meta.Engine,
			TestTimestamp: meta.Timestamp,
		},
	})
}

// decodeBody checks the content type, enforces the body limit and decodes
// JSON into v. Numbers are kept as json.Number.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrContentType
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrTooLarge
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return ErrEmptyRequest
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func (s *Server) metadata(r *http.Request, start time.Time, cached bool) metadata {
	return metadata{
		CalculationTime: math.Round(time.Since(start).Seconds()*1000) / 1000,
		Engine:          s.deps.Engine(),
		Timestamp:       now(),
		RequestID:       logger.RequestID(r.Context()),
		Cached:          cached,
	}
}
