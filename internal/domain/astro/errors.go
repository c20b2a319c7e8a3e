package astro

import (
	"errors"
	"strings"
)

// Sentinel errors for this package.
var (
	ErrMissingPlacement = errors.New("missing placement data")
	ErrUnknownBody      = errors.New("unknown body")
)

// MissingPlacementError reports which required bodies are absent from a chart.
type MissingPlacementError struct {
	Bodies []Body
}

func (e *MissingPlacementError) Error() string {
	names := make([]string, len(e.Bodies))
	for i, b := range e.Bodies {
		names[i] = b.String()
	}
	return ErrMissingPlacement.Error() + ": " + strings.Join(names, ", ")
}

// Is lets errors.Is(err, ErrMissingPlacement) match.
func (e *MissingPlacementError) Is(target error) bool {
	return target == ErrMissingPlacement
}
