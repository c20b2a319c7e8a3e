package ephemeris

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/astrohero/internal/domain/astro"
)

// HouseSystem names a method of dividing the chart into twelve houses.
type HouseSystem string

// Supported house systems.
const (
	EqualHouses     HouseSystem = "equal"
	WholeSignHouses HouseSystem = "whole_sign"
	PorphyryHouses  HouseSystem = "porphyry"
)

// ParseHouseSystem accepts the config spelling of a house system.
func ParseHouseSystem(s string) (HouseSystem, error) {
	hs := HouseSystem(strings.ToLower(strings.TrimSpace(s)))
	if !hs.Valid() {
		return "", fmt.Errorf("%w: %q", ErrHouseSystem, s)
	}
	return hs, nil
}

// Valid reports whether hs is supported.
func (hs HouseSystem) Valid() bool {
	switch hs {
	case EqualHouses, WholeSignHouses, PorphyryHouses:
		return true
	}
	return false
}

// cusps returns the twelve cusp longitudes starting with house 1.
func (hs HouseSystem) cusps(asc, mc float64) [astro.HouseCount]float64 {
	var out [astro.HouseCount]float64
	switch hs {
	case WholeSignHouses:
		start := math.Floor(astro.NormalizeDegrees(asc)/30) * 30
		for k := range out {
			out[k] = astro.NormalizeDegrees(start + 30*float64(k))
		}
	case PorphyryHouses:
		ic := astro.NormalizeDegrees(mc + 180)
		dsc := astro.NormalizeDegrees(asc + 180)
		q1 := astro.NormalizeDegrees(ic - asc)
		q2 := astro.NormalizeDegrees(dsc - ic)
		out[0] = astro.NormalizeDegrees(asc)
		out[1] = astro.NormalizeDegrees(asc + q1/3)
		out[2] = astro.NormalizeDegrees(asc + 2*q1/3)
		out[3] = ic
		out[4] = astro.NormalizeDegrees(ic + q2/3)
		out[5] = astro.NormalizeDegrees(ic + 2*q2/3)
		for k := 6; k < astro.HouseCount; k++ {
			out[k] = astro.NormalizeDegrees(out[k-6] + 180)
		}
	default:
		for k := range out {
			out[k] = astro.NormalizeDegrees(asc + 30*float64(k))
		}
	}
	return out
}

// houseOf returns the house whose span [cusp k, cusp k+1) contains lon.
func houseOf(lon float64, cusps [astro.HouseCount]float64) astro.House {
	for k := 0; k < astro.HouseCount; k++ {
		start := cusps[k]
		span := astro.NormalizeDegrees(cusps[(k+1)%astro.HouseCount] - start)
		if astro.NormalizeDegrees(lon-start) < span {
			return astro.House(k + 1)
		}
	}
	return 1
}

// obliquity of the ecliptic at day d, degrees.
func obliquity(d float64) float64 { return 23.4393 - 3.563e-7*d }

// localSiderealDegrees returns the right ascension of the meridian at day d
// for an observer at east longitude lon.
func localSiderealDegrees(d, lon float64) float64 {
	gmst := 280.46061837 + 360.98564736629*(d-1.5)
	return astro.NormalizeDegrees(gmst + lon)
}

// midheaven is the ecliptic longitude culminating at ramc.
func midheaven(ramc, eps float64) float64 {
	return atan2d(sind(ramc), cosd(ramc)*cosd(eps))
}

// ascendant is the ecliptic longitude rising in the east at latitude lat.
func ascendant(ramc, lat, eps float64) float64 {
	return atan2d(cosd(ramc), -(sind(ramc)*cosd(eps) + math.Tan(rad(lat))*sind(eps)))
}
