package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrEmptyBatch    = errors.New("batch has no subjects")
	ErrBatchTooLarge = errors.New("batch exceeds the maximum size")
	ErrBackpressure  = errors.New("job queue is full")
	ErrCalculation   = errors.New("character calculation failed")
)
