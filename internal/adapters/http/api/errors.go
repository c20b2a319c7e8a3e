package api

import (
	"errors"
	"net/http"

	service "github.com/okian/astrohero/internal/app"
	"github.com/okian/astrohero/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrContentType      = errors.New("request must be JSON")
	ErrEmptyRequest     = errors.New("request body is empty")
	ErrTooLarge         = errors.New("request body too large")
	ErrNotFound         = errors.New("resource not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrPanic            = errors.New("handler panicked")
)

// Error codes carried in the error_code field of every error response.
const (
	CodeInvalidContentType = "INVALID_CONTENT_TYPE"
	CodeEmptyRequest       = "EMPTY_REQUEST"
	CodeMissingFields      = "MISSING_REQUIRED_FIELDS"
	CodeValidation         = "VALIDATION_ERROR"
	CodeCalculation        = "CALCULATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeTooLarge           = "REQUEST_TOO_LARGE"
	CodeBackpressure       = "BACKPRESSURE"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// KindError records the operation that failed, the sentinel kind it maps to
// and the underlying cause. errors.Is matches both Kind and Err.
type KindError struct {
	Op   string
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	switch {
	case e.Kind == nil && e.Err == nil:
		return e.Op
	case e.Err == nil:
		return e.Op + ": " + e.Kind.Error()
	case e.Kind == nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
}

func (e *KindError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind with no further cause.
func NewKind(op string, kind error) error {
	return &KindError{Op: op, Kind: kind}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &KindError{Op: op, Kind: kind, Err: err}
}

// Wrap tags err with op only; its kind is whatever err already matches.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Op: op, Err: err}
}

// problem is the client-facing description of an error.
type problem struct {
	status           int
	code             string
	message          string
	missingFields    []string
	validationErrors []string
}

func describe(err error) problem {
	var missing *model.MissingFieldsError
	var invalid *model.ValidationError
	switch {
	case errors.As(err, &missing):
		return problem{status: http.StatusBadRequest, code: CodeMissingFields, message: missing.Error(), missingFields: missing.Fields}
	case errors.As(err, &invalid):
		return problem{status: http.StatusBadRequest, code: CodeValidation, message: "資料驗證失敗", validationErrors: invalid.Problems}
	case errors.Is(err, ErrContentType):
		return problem{status: http.StatusBadRequest, code: CodeInvalidContentType, message: "請求必須是JSON格式"}
	case errors.Is(err, ErrEmptyRequest), errors.Is(err, service.ErrEmptyBatch):
		return problem{status: http.StatusBadRequest, code: CodeEmptyRequest, message: "請求body不能為空"}
	case errors.Is(err, ErrTooLarge):
		return problem{status: http.StatusRequestEntityTooLarge, code: CodeTooLarge, message: "請求資料過大"}
	case errors.Is(err, service.ErrBatchTooLarge):
		return problem{status: http.StatusBadRequest, code: CodeValidation, message: "批次數量超過上限", validationErrors: []string{err.Error()}}
	case errors.Is(err, ErrBadRequest):
		return problem{status: http.StatusBadRequest, code: CodeValidation, message: "請求格式錯誤", validationErrors: []string{err.Error()}}
	case errors.Is(err, ErrNotFound):
		return problem{status: http.StatusNotFound, code: CodeNotFound, message: "請求的資源不存在"}
	case errors.Is(err, ErrMethodNotAllowed):
		return problem{status: http.StatusMethodNotAllowed, code: CodeMethodNotAllowed, message: "不支援的請求方法"}
	case errors.Is(err, service.ErrBackpressure):
		return problem{status: http.StatusTooManyRequests, code: CodeBackpressure, message: "系統忙碌中，請稍後再試"}
	case errors.Is(err, service.ErrCalculation):
		return problem{status: http.StatusInternalServerError, code: CodeCalculation, message: "角色生成過程中發生錯誤"}
	default:
		return problem{status: http.StatusInternalServerError, code: CodeInternal, message: "內部服務器錯誤"}
	}
}
