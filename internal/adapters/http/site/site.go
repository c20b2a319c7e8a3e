// Package site renders the status and documentation page served at "/".
package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	service "github.com/okian/astrohero/internal/app"
)

// Error constants.
var (
	ErrRender = errors.New("docs page render failed")
)

//go:embed templates/index.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// StatsSource provides the figures shown on the page.
type StatsSource interface {
	Stats() service.Stats
}

type endpoint struct {
	Method  string
	Class   string
	Path    string
	Summary string
}

type errorCode struct {
	Code    string
	Meaning string
}

var endpoints = []endpoint{
	{"GET", "get", "/api/health", "系統健康檢查，返回服務狀態和基本資訊"},
	{"GET", "get", "/api/test", "使用預設資料測試占星計算和角色生成"},
	{"POST", "post", "/api/calculate_chart", "根據出生資訊計算星盤並生成角色"},
	{"POST", "post", "/api/calculate_batch", "一次為多位對象生成角色"},
	{"GET", "get", "/metrics", "Prometheus 指標"},
	{"GET", "get", "/api/openapi.yaml", "OpenAPI 規格"},
}

var errorCodes = []errorCode{
	{"INVALID_CONTENT_TYPE", "請求必須是JSON格式"},
	{"EMPTY_REQUEST", "請求body不能為空"},
	{"MISSING_REQUIRED_FIELDS", "缺少必填欄位"},
	{"VALIDATION_ERROR", "輸入資料驗證失敗"},
	{"CALCULATION_ERROR", "占星計算過程錯誤"},
	{"BACKPRESSURE", "系統忙碌，請稍後再試"},
	{"INTERNAL_ERROR", "內部服務器錯誤"},
	{"RESOURCE_NOT_FOUND", "請求的資源不存在"},
	{"REQUEST_TOO_LARGE", "請求資料過大"},
}

type view struct {
	Version     string
	Started     bool
	Engine      string
	Hours       int
	Minutes     int
	Requests    uint64
	Errors      uint64
	SuccessRate float64
	BaseURL     string
	GeneratedAt string
	Endpoints   []endpoint
	ErrorCodes  []errorCode
}

// Handler serves the docs page.
type Handler struct {
	stats   StatsSource
	version string
}

// NewHandler creates a docs page handler.
func NewHandler(stats StatsSource, version string) *Handler {
	return &Handler{stats: stats, version: version}
}

// ServeHTTP renders the page with the current service figures.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := h.stats.Stats()
	v := view{
		Version:     h.version,
		Started:     st.Started,
		Engine:      st.Engine,
		Hours:       int(st.Uptime.Hours()),
		Minutes:     int(st.Uptime.Minutes()) % 60,
		Requests:    st.Requests,
		Errors:      st.Errors,
		SuccessRate: st.SuccessRate(),
		BaseURL:     baseURL(r),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Endpoints:   endpoints,
		ErrorCodes:  errorCodes,
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, v); err != nil {
		http.Error(w, fmt.Errorf("%w: %w", ErrRender, err).Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
