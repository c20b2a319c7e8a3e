package ephemeris

import "errors"

// Sentinel kinds for ephemeris errors.
var (
	ErrChartComputation = errors.New("chart computation failed")
	ErrUnknownTimezone  = errors.New("unknown timezone")
	ErrHouseSystem      = errors.New("unknown house system")
)
