package character

import (
	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/rating"
	"github.com/okian/astrohero/internal/domain/scoring"
	"github.com/okian/astrohero/internal/domain/tables"
)

// ClassInfo is the chosen class as shown on the sheet.
type ClassInfo struct {
	ID                tables.ClassID   `json:"key"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	MatchScore        float64          `json:"match_score"`
	PrimaryStats      []tables.Ability `json:"primary_stats"`
	PersonalityTraits []string         `json:"personality_traits"`
}

// ChartSummary holds short display strings for the key placements.
type ChartSummary struct {
	Sun       string `json:"sun"`
	Moon      string `json:"moon"`
	Ascendant string `json:"ascendant"`
}

// Sheet is a finished character. Treat it as read-only.
type Sheet struct {
	Name       string                `json:"name"`
	Class      ClassInfo             `json:"class"`
	Abilities  scoring.AbilityScores `json:"stats"`
	Total      int                   `json:"total_stats"`
	Rating     rating.Tier           `json:"rating"`
	Background string                `json:"background"`
	Summary    ChartSummary          `json:"birth_chart"`
	Warnings   []astro.Warning       `json:"warnings,omitempty"`
}
