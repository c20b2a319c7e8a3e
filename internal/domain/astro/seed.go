package astro

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"
)

// Seed returns a stable 64-bit seed for the chart. It hashes the
// NFC-normalized subject name, the birth time in UTC, and every placement's
// body, sign and house in canonical order. Degrees and retrograde flags are
// left out so that ephemeris rounding differences do not move the seed.
func (c NatalChart) Seed() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(norm.NFC.String(c.Subject.Name))
	_, _ = d.WriteString("\x00")
	if !c.Subject.BirthTime.IsZero() {
		_, _ = d.WriteString(c.Subject.BirthTime.UTC().Format(time.RFC3339))
	}
	_, _ = d.WriteString("\x00")
	for _, b := range Bodies() {
		p, ok := c.Placements[b]
		if !ok {
			continue
		}
		_, _ = d.WriteString(b.String())
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(p.Sign.String())
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(strconv.Itoa(int(p.House)))
		_, _ = d.WriteString(";")
	}
	return d.Sum64()
}
