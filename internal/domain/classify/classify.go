// Package classify picks the class whose affinity with a chart is highest.
package classify

import (
	"math"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/tables"
)

// Affinities are counted in integer points so that equal sums compare equal.
// One table weight unit of 0.001 at half strength is one point.
const (
	PointsPerUnit = 2000

	signFactor       = 2
	majorHouseFactor = 2
	minorHouseFactor = 1
)

// signBodies are the bodies with sign tables, in the order they are applied.
var signBodies = []astro.Body{astro.Sun, astro.Mars, astro.Mercury, astro.Venus, astro.Jupiter}

// Affinity accumulates points per class, indexed by tables.ClassID.
type Affinity [tables.ClassCount]int64

// Of returns the accumulated affinity for c in table weight units.
func (a Affinity) Of(c tables.ClassID) float64 {
	if !c.Valid() {
		return 0
	}
	return float64(a[c]) / PointsPerUnit
}

// Best returns the class with the highest affinity. Ties keep the class
// that comes first in canonical order.
func (a Affinity) Best() (tables.ClassID, float64) {
	best := tables.Barbarian
	for _, c := range tables.Classes() {
		if a[c] > a[best] {
			best = c
		}
	}
	return best, a.Of(best)
}

func (a *Affinity) add(ws []tables.ClassWeight, factor int64) {
	for _, w := range ws {
		a[w.Class] += int64(math.Round(w.Weight*1000)) * factor
	}
}

// Result is the chosen class with the accumulator it was picked from.
type Result struct {
	Class    tables.ClassID
	Score    float64
	Affinity Affinity
}

// Classify scores every class against chart and picks the best. Bodies
// without placements, unknown signs and invalid houses contribute nothing.
func Classify(chart astro.NatalChart) Result {
	var aff Affinity
	for _, b := range signBodies {
		p, ok := chart.Placements[b]
		if !ok {
			continue
		}
		aff.add(tables.SignClassWeights(b, p.Sign), signFactor)
	}
	for _, b := range astro.Bodies() {
		p, ok := chart.Placements[b]
		if !ok {
			continue
		}
		aff.add(tables.HouseClassWeights(p.House), houseWeight(b))
	}
	class, score := aff.Best()
	return Result{Class: class, Score: score, Affinity: aff}
}

func houseWeight(b astro.Body) int64 {
	if b == astro.Sun || b == astro.Mars {
		return majorHouseFactor
	}
	return minorHouseFactor
}
