// Package rating grades an ability total into a letter tier.
package rating

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScale is returned by ParseScale for names it does not know.
var ErrUnknownScale = errors.New("unknown rating scale")

// Tier is an ordinal grade. Higher values are better.
type Tier int

// Tiers from worst to best.
const (
	D Tier = iota
	C
	B
	A
	S
	SS
)

var tierNames = [...]string{"D", "C", "B", "A", "S", "SS"}

func (t Tier) String() string {
	if t < D || t > SS {
		return "?"
	}
	return tierNames[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	for i, n := range tierNames {
		if n == string(text) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", text)
}

// Threshold maps a minimum total to a tier.
type Threshold struct {
	Min  int
	Tier Tier
}

// Scale is a named list of thresholds in descending Min order. Totals below
// every threshold grade as Floor.
type Scale struct {
	Name       string
	Thresholds []Threshold
	Floor      Tier
}

// Standard is the canonical five-tier scale.
var Standard = Scale{
	Name: "standard",
	Thresholds: []Threshold{
		{75, S},
		{70, A},
		{65, B},
		{60, C},
	},
	Floor: D,
}

// Extended is the six-tier scale with an SS grade on top.
var Extended = Scale{
	Name: "extended",
	Thresholds: []Threshold{
		{100, SS},
		{90, S},
		{80, A},
		{70, B},
		{60, C},
	},
	Floor: D,
}

// Grade returns the tier for total.
func (s Scale) Grade(total int) Tier {
	for _, th := range s.Thresholds {
		if total >= th.Min {
			return th.Tier
		}
	}
	return s.Floor
}

// Grade grades total on the Standard scale.
func Grade(total int) Tier { return Standard.Grade(total) }

// ParseScale returns the scale registered under name. An empty name selects Standard.
func ParseScale(name string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Standard.Name:
		return Standard, nil
	case Extended.Name:
		return Extended, nil
	}
	return Scale{}, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}
