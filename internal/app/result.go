package service

import (
	"fmt"
	"time"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/character"
	"github.com/okian/astrohero/internal/domain/model"
)

// Result is a finished derivation together with the chart it came from.
type Result struct {
	Character character.Sheet `json:"character"`
	AstroData AstroData       `json:"astro_data"`
	Warnings  []string        `json:"warnings"`

	// Cached is set when the result was served from the cache.
	Cached bool `json:"-"`
}

// BirthInfo echoes the normalized request.
type BirthInfo struct {
	Name        string `json:"name"`
	DateTime    string `json:"datetime"`
	Location    string `json:"location"`
	Coordinates string `json:"coordinates"`
	Timezone    string `json:"timezone"`
}

// PlanetData is one body's placement with display names.
type PlanetData struct {
	Name       string  `json:"name"`
	Sign       string  `json:"sign"`
	SignCode   string  `json:"sign_code"`
	House      int     `json:"house"`
	Position   float64 `json:"position"`
	Retrograde bool    `json:"retrograde"`
	Element    string  `json:"element"`
	Quality    string  `json:"quality"`
}

// HouseData describes one house cusp.
type HouseData struct {
	House    int     `json:"house"`
	Sign     string  `json:"sign"`
	SignCode string  `json:"sign_code"`
	Position float64 `json:"position"`
	Element  string  `json:"element"`
	Quality  string  `json:"quality"`
}

// AngleData is the ascendant or midheaven.
type AngleData struct {
	Sign     string  `json:"sign"`
	SignCode string  `json:"sign_code"`
	Position float64 `json:"position"`
}

// AstroData is the chart section of a response.
type AstroData struct {
	BirthInfo BirthInfo             `json:"birth_info"`
	BirthTime time.Time             `json:"birth_time_utc"`
	Planets   map[string]PlanetData `json:"planets"`
	Houses    []HouseData           `json:"houses"`
	Angles    map[string]AngleData  `json:"angles"`
}

func newAstroData(b model.BirthData, timezone string, chart astro.NatalChart) AstroData {
	if b.Timezone != "" {
		timezone = b.Timezone
	}
	out := AstroData{
		BirthInfo: BirthInfo{
			Name:        chart.Subject.Name,
			DateTime:    fmt.Sprintf("%04d-%02d-%02d %02d:%02d", b.Year, b.Month, b.Day, b.Hour, b.Minute),
			Location:    b.City,
			Coordinates: fmt.Sprintf("%.3f°N, %.3f°E", b.Latitude, b.Longitude),
			Timezone:    timezone,
		},
		BirthTime: chart.Subject.BirthTime,
		Planets:   make(map[string]PlanetData, len(chart.Placements)),
		Houses:    make([]HouseData, 0, len(chart.Cusps)),
		Angles:    make(map[string]AngleData, 2),
	}

	for _, body := range astro.Bodies() {
		p, ok := chart.Placements[body]
		if !ok {
			continue
		}
		out.Planets[body.String()] = PlanetData{
			Name:       body.DisplayName(),
			Sign:       p.Sign.DisplayName(),
			SignCode:   p.Sign.Code(),
			House:      int(p.House),
			Position:   p.Degree,
			Retrograde: p.Retrograde,
			Element:    elementOf(p.Sign),
			Quality:    qualityOf(p.Sign),
		}
	}
	for i, c := range chart.Cusps {
		out.Houses = append(out.Houses, HouseData{
			House:    i + 1,
			Sign:     c.Sign.DisplayName(),
			SignCode: c.Sign.Code(),
			Position: c.Degree,
			Element:  elementOf(c.Sign),
			Quality:  qualityOf(c.Sign),
		})
	}
	if chart.Ascendant != nil {
		out.Angles["ascendant"] = angleData(*chart.Ascendant)
	}
	if chart.Midheaven != nil {
		out.Angles["midheaven"] = angleData(*chart.Midheaven)
	}
	return out
}

func angleData(a astro.Angle) AngleData {
	return AngleData{Sign: a.Sign.DisplayName(), SignCode: a.Sign.Code(), Position: a.Degree}
}

func elementOf(s astro.Sign) string {
	if !s.Valid() {
		return unknownLabel
	}
	return string(s.Element())
}

func qualityOf(s astro.Sign) string {
	if !s.Valid() {
		return unknownLabel
	}
	return string(s.Quality())
}

const unknownLabel = "未知"

func warningStrings(ws []astro.Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.String())
	}
	return out
}
