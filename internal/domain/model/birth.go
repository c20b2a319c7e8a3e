// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Sentinel kinds for input errors.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrValidation    = errors.New("birth data validation failed")
)

// RequiredFields lists the request keys that must be present, in report order.
var RequiredFields = []string{"name", "year", "month", "day", "hour", "minute", "city", "longitude", "latitude"}

// BirthData is one subject's birth moment and place.
// Fields mirror the OpenAPI schema for /api/calculate_chart.
type BirthData struct {
	Name      string  `json:"name"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	Hour      int     `json:"hour"`
	Minute    int     `json:"minute"`
	City      string  `json:"city"`
	Longitude float64 `json:"longitude"` // east positive
	Latitude  float64 `json:"latitude"`  // north positive
	Timezone  string  `json:"timezone,omitempty"`
}

// MissingFieldsError names absent request keys.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "缺少必填欄位: " + strings.Join(e.Fields, ", ")
}

// Is makes errors.Is(err, ErrMissingFields) match.
func (e *MissingFieldsError) Is(target error) bool { return target == ErrMissingFields }

// ValidationError lists every out-of-range or malformed value.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "資料驗證失敗: " + strings.Join(e.Problems, "; ")
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validate checks value ranges and that the calendar date exists.
func (b BirthData) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}
	check(b.Year >= 1900 && b.Year <= 2050, "年份必須在1900-2050之間")
	check(b.Month >= 1 && b.Month <= 12, "月份必須在1-12之間")
	check(b.Day >= 1 && b.Day <= 31, "日期必須在1-31之間")
	check(b.Hour >= 0 && b.Hour <= 23, "小時必須在0-23之間")
	check(b.Minute >= 0 && b.Minute <= 59, "分鐘必須在0-59之間")
	check(b.Longitude >= -180 && b.Longitude <= 180, "經度必須在-180到180之間")
	check(b.Latitude >= -90 && b.Latitude <= 90, "緯度必須在-90到90之間")
	if len(problems) == 0 {
		check(dateExists(b.Year, b.Month, b.Day), fmt.Sprintf("日期不存在: %04d-%02d-%02d", b.Year, b.Month, b.Day))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func dateExists(y, m, d int) bool {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// FromFields builds BirthData from a decoded JSON object. Numbers may arrive
// as JSON numbers or numeric strings. It reports every missing key first,
// then every malformed or out-of-range value.
func FromFields(m map[string]any) (BirthData, error) {
	var missing []string
	for _, f := range RequiredFields {
		if v, ok := m[f]; !ok || v == nil {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return BirthData{}, &MissingFieldsError{Fields: missing}
	}

	var (
		b        BirthData
		problems []string
	)
	ints := []struct {
		key   string
		label string
		dst   *int
	}{
		{"year", "年份", &b.Year},
		{"month", "月份", &b.Month},
		{"day", "日期", &b.Day},
		{"hour", "小時", &b.Hour},
		{"minute", "分鐘", &b.Minute},
	}
	for _, f := range ints {
		v, err := toFloat(m[f.key])
		if err != nil {
			problems = append(problems, f.label+"必須是數字")
			continue
		}
		*f.dst = int(v)
	}
	floats := []struct {
		key   string
		label string
		dst   *float64
	}{
		{"longitude", "經度", &b.Longitude},
		{"latitude", "緯度", &b.Latitude},
	}
	for _, f := range floats {
		v, err := toFloat(m[f.key])
		if err != nil {
			problems = append(problems, f.label+"必須是數字")
			continue
		}
		*f.dst = v
	}

	b.Name = toString(m["name"])
	b.City = toString(m["city"])
	if tz, ok := m["timezone"]; ok && tz != nil {
		b.Timezone = strings.TrimSpace(toString(tz))
	}

	if len(problems) > 0 {
		return BirthData{}, &ValidationError{Problems: problems}
	}
	if err := b.Validate(); err != nil {
		return BirthData{}, err
	}
	return b, nil
}

func toFloat(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch x := v.(type) {
	case json.Number:
		f, err = x.Float64()
	case float64:
		f = x
	case int:
		f = float64(x)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
