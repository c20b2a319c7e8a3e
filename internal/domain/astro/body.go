// Package astro defines the normalized natal chart consumed by the character
// derivation pipeline: bodies, signs, houses and their placements.
package astro

import "strings"

// Body identifies one of the ten tracked celestial bodies.
type Body int

// Tracked bodies in canonical order.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// BodyCount is the number of tracked bodies.
const BodyCount = 10

var bodyIDs = [BodyCount]string{
	"sun", "moon", "mercury", "venus", "mars",
	"jupiter", "saturn", "uranus", "neptune", "pluto",
}

var bodyNames = [BodyCount]string{
	"太陽", "月亮", "水星", "金星", "火星",
	"木星", "土星", "天王星", "海王星", "冥王星",
}

// Bodies returns all tracked bodies in canonical order.
func Bodies() []Body {
	out := make([]Body, BodyCount)
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

// Valid reports whether b is one of the ten tracked bodies.
func (b Body) Valid() bool { return b >= Sun && b <= Pluto }

// String returns the lowercase body identifier, e.g. "mars".
func (b Body) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return bodyIDs[b]
}

// DisplayName returns the localized body name.
func (b Body) DisplayName() string {
	if !b.Valid() {
		return ""
	}
	return bodyNames[b]
}

// MarshalText implements encoding.TextMarshaler so bodies can key JSON maps.
func (b Body) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, ok := ParseBody(string(text))
	if !ok {
		return ErrUnknownBody
	}
	*b = parsed
	return nil
}

// ParseBody maps an identifier such as "Sun" or "sun" to a Body.
func ParseBody(id string) (Body, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for i, known := range bodyIDs {
		if known == id {
			return Body(i), true
		}
	}
	return 0, false
}
