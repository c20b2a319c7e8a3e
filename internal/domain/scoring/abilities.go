package scoring

import "github.com/okian/astrohero/internal/domain/tables"

// AbilityScores holds one value per ability, each within [MinScore, MaxScore]
// when produced by a Scorer.
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the score for a.
func (s AbilityScores) Get(a tables.Ability) int {
	switch a {
	case tables.Strength:
		return s.Strength
	case tables.Dexterity:
		return s.Dexterity
	case tables.Constitution:
		return s.Constitution
	case tables.Intelligence:
		return s.Intelligence
	case tables.Wisdom:
		return s.Wisdom
	case tables.Charisma:
		return s.Charisma
	}
	return 0
}

func (s *AbilityScores) set(a tables.Ability, v int) {
	switch a {
	case tables.Strength:
		s.Strength = v
	case tables.Dexterity:
		s.Dexterity = v
	case tables.Constitution:
		s.Constitution = v
	case tables.Intelligence:
		s.Intelligence = v
	case tables.Wisdom:
		s.Wisdom = v
	case tables.Charisma:
		s.Charisma = v
	}
}

// Total sums all six scores.
func (s AbilityScores) Total() int {
	return s.Strength + s.Dexterity + s.Constitution + s.Intelligence + s.Wisdom + s.Charisma
}
