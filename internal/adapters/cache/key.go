package cache

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/okian/astrohero/internal/domain/model"
)

// keySep separates key fields. Text fields are quoted, which escapes any
// separator inside them.
const keySep = "\x1f"

// Key encodes everything that changes a computed result: the NFC-normalized
// name and city, the birth moment and place, the effective timezone and the
// deriver settings in variant (house system, scale, and so on). The encoding
// is the key itself, so distinct inputs never share an entry.
func Key(b model.BirthData, timezone, variant string) string {
	if b.Timezone != "" {
		timezone = b.Timezone
	}
	return strings.Join([]string{
		strconv.Quote(norm.NFC.String(strings.TrimSpace(b.Name))),
		strconv.Quote(norm.NFC.String(strings.TrimSpace(b.City))),
		strconv.Itoa(b.Year), strconv.Itoa(b.Month), strconv.Itoa(b.Day),
		strconv.Itoa(b.Hour), strconv.Itoa(b.Minute),
		strconv.FormatUint(math.Float64bits(b.Longitude), 16),
		strconv.FormatUint(math.Float64bits(b.Latitude), 16),
		strconv.Quote(timezone),
		strconv.Quote(variant),
	}, keySep)
}
