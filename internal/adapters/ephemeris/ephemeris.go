// Package ephemeris turns birth data into a natal chart.
//
// Approximate uses low-precision mean orbital elements, good to a fraction
// of a degree for the Sun and planets and about a degree for the Moon over
// 1900-2050. That is enough to place bodies in signs and houses.
package ephemeris

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/model"
)

// DefaultTimezone is used when neither the birth data nor options name one.
const DefaultTimezone = "Asia/Taipei"

// retrogradeWindow is half the interval used to detect apparent backward motion.
const retrogradeWindow = 12 * time.Hour

// Calculator computes natal charts.
type Calculator interface {
	// Calculate computes the chart for b, honoring ctx for cancellation.
	Calculate(ctx context.Context, b model.BirthData) (astro.NatalChart, error)
}

// Approximate implements Calculator with an analytic orbital model.
type Approximate struct {
	houses    HouseSystem
	defaultTZ string
}

// NewApproximate creates a calculator using equal houses and DefaultTimezone.
func NewApproximate(opts ...Option) *Approximate {
	a := &Approximate{houses: EqualHouses, defaultTZ: DefaultTimezone}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HouseSystem reports the configured house system.
func (a *Approximate) HouseSystem() HouseSystem { return a.houses }

// DefaultTimezone reports the zone used for birth data without one.
func (a *Approximate) DefaultTimezone() string { return a.defaultTZ }

// Calculate computes the chart for b.
func (a *Approximate) Calculate(ctx context.Context, b model.BirthData) (astro.NatalChart, error) {
	if err := ctx.Err(); err != nil {
		return astro.NatalChart{}, fmt.Errorf("%w: %w", ErrChartComputation, err)
	}

	ut, err := a.universalTime(b)
	if err != nil {
		return astro.NatalChart{}, fmt.Errorf("%w: %w", ErrChartComputation, err)
	}

	d := dayNumber(ut)
	lons := geocentricLongitudes(d)
	before := geocentricLongitudes(dayNumber(ut.Add(-retrogradeWindow)))
	after := geocentricLongitudes(dayNumber(ut.Add(retrogradeWindow)))

	if err := ctx.Err(); err != nil {
		return astro.NatalChart{}, fmt.Errorf("%w: %w", ErrChartComputation, err)
	}

	ramc := localSiderealDegrees(d, b.Longitude)
	eps := obliquity(d)
	asc := ascendant(ramc, b.Latitude, eps)
	mc := midheaven(ramc, eps)
	cusps := a.houses.cusps(asc, mc)

	chart := astro.NatalChart{
		Subject:    astro.Subject{Name: b.Name, BirthTime: ut},
		Placements: make(map[astro.Body]astro.Placement, astro.BodyCount),
		Ascendant:  angleAt(asc),
		Midheaven:  angleAt(mc),
		Cusps:      make([]astro.Angle, 0, len(cusps)),
	}
	for _, c := range cusps {
		chart.Cusps = append(chart.Cusps, *angleAt(c))
	}
	for _, body := range astro.Bodies() {
		lon := lons[body]
		chart.Placements[body] = astro.Placement{
			Sign:       astro.SignAt(lon),
			House:      houseOf(lon, cusps),
			Degree:     floor2(degreeInSign(lon)),
			Retrograde: body != astro.Sun && body != astro.Moon && angularDelta(before[body], after[body]) < 0,
		}
	}
	return chart, nil
}

func (a *Approximate) universalTime(b model.BirthData) (time.Time, error) {
	name := b.Timezone
	if name == "" {
		name = a.defaultTZ
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrUnknownTimezone, name, err)
	}
	local := time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, loc)
	return local.UTC(), nil
}

func angleAt(lon float64) *astro.Angle {
	return &astro.Angle{Sign: astro.SignAt(lon), Degree: floor2(degreeInSign(lon))}
}
