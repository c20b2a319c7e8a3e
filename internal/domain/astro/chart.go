package astro

import (
	"fmt"
	"time"
)

// Placement is one body's position in the chart.
type Placement struct {
	Sign       Sign    `json:"sign"`
	House      House   `json:"house"`
	Degree     float64 `json:"degree"` // 0..30 within the sign
	Retrograde bool    `json:"retrograde"`
}

// Angle is a chart angle or house cusp (sign + degree only).
type Angle struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
}

// Subject identifies whose chart this is. It feeds the stable seed.
type Subject struct {
	Name      string    `json:"name"`
	BirthTime time.Time `json:"birth_time"`
}

// NatalChart is the normalized chart produced by an ephemeris.
type NatalChart struct {
	Subject    Subject            `json:"subject"`
	Placements map[Body]Placement `json:"placements"`
	Ascendant  *Angle             `json:"ascendant,omitempty"`
	Midheaven  *Angle             `json:"midheaven,omitempty"`
	Cusps      []Angle            `json:"cusps,omitempty"` // house 1..12 cusps, optional
}

// Placement returns the placement for b and whether it is present.
func (c NatalChart) Placement(b Body) (Placement, bool) {
	p, ok := c.Placements[b]
	return p, ok
}

// Validate checks that every tracked body is present. The returned error is a
// *MissingPlacementError listing the absent bodies in canonical order.
func (c NatalChart) Validate() error {
	var missing []Body
	for _, b := range Bodies() {
		if _, ok := c.Placements[b]; !ok {
			missing = append(missing, b)
		}
	}
	if len(missing) > 0 {
		return &MissingPlacementError{Bodies: missing}
	}
	return nil
}

// Warnings lists non-fatal data problems: sign codes outside the enumeration
// and house numbers outside 1..12. Absent bodies are not reported here.
func (c NatalChart) Warnings() []Warning {
	var out []Warning
	for _, b := range Bodies() {
		p, ok := c.Placements[b]
		if !ok {
			continue
		}
		if !p.Sign.Valid() {
			out = append(out, Warning{
				Code:    WarnUnknownSign,
				Body:    b,
				Message: fmt.Sprintf("%s has an unknown sign code; default contribution used", b),
			})
		}
		if !p.House.Valid() {
			out = append(out, Warning{
				Code:    WarnInvalidHouse,
				Body:    b,
				Message: fmt.Sprintf("%s has house %d outside 1..12; house ignored", b, p.House),
			})
		}
	}
	return out
}

// WarningCode classifies a non-fatal chart problem.
type WarningCode string

// Warning codes.
const (
	WarnUnknownSign  WarningCode = "UNKNOWN_SIGN_CODE"
	WarnInvalidHouse WarningCode = "INVALID_HOUSE"
)

// Warning is a non-fatal fallback the derivation applied.
type Warning struct {
	Code    WarningCode `json:"code"`
	Body    Body        `json:"body"`
	Message string      `json:"message"`
}

func (w Warning) String() string { return string(w.Code) + ": " + w.Message }
