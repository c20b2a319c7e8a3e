package tables

import "github.com/okian/astrohero/internal/domain/astro"

// Ability is one of the six ability scores.
type Ability int

// Abilities in canonical order.
const (
	Strength Ability = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma
)

// AbilityCount is the number of abilities.
const AbilityCount = 6

var abilityIDs = [AbilityCount]string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}
var abilityNames = [AbilityCount]string{"力量", "敏捷", "體質", "智力", "智慧", "魅力"}

// Abilities returns all abilities in canonical order.
func Abilities() []Ability {
	return []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}
}

func (a Ability) String() string {
	if a < 0 || a >= AbilityCount {
		return "unknown"
	}
	return abilityIDs[a]
}

// DisplayName returns the localized ability name.
func (a Ability) DisplayName() string {
	if a < 0 || a >= AbilityCount {
		return ""
	}
	return abilityNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Ability) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// AbilityModifier is a signed bonus to one ability.
type AbilityModifier struct {
	Ability Ability
	Value   int
}

// signAbilityModifiers lists up to four weighted abilities per sign, indexed by astro.Sign.
var signAbilityModifiers = [astro.SignCount + 1][]AbilityModifier{
	astro.Aries:       {{Strength, 3}, {Constitution, 2}, {Dexterity, 1}, {Charisma, 2}},
	astro.Taurus:      {{Constitution, 3}, {Strength, 2}, {Wisdom, 1}, {Charisma, 1}},
	astro.Gemini:      {{Intelligence, 3}, {Dexterity, 2}, {Charisma, 2}, {Wisdom, 0}},
	astro.Cancer:      {{Wisdom, 3}, {Constitution, 2}, {Charisma, 1}, {Intelligence, 1}},
	astro.Leo:         {{Charisma, 3}, {Strength, 2}, {Constitution, 1}, {Dexterity, 1}},
	astro.Virgo:       {{Intelligence, 3}, {Wisdom, 2}, {Dexterity, 2}, {Constitution, 0}},
	astro.Libra:       {{Charisma, 3}, {Dexterity, 2}, {Intelligence, 1}, {Wisdom, 1}},
	astro.Scorpio:     {{Wisdom, 3}, {Constitution, 2}, {Intelligence, 2}, {Charisma, 0}},
	astro.Sagittarius: {{Wisdom, 3}, {Dexterity, 2}, {Charisma, 2}, {Strength, 0}},
	astro.Capricorn:   {{Constitution, 3}, {Strength, 2}, {Wisdom, 2}, {Intelligence, 0}},
	astro.Aquarius:    {{Intelligence, 3}, {Charisma, 2}, {Dexterity, 1}, {Wisdom, 1}},
	astro.Pisces:      {{Wisdom, 3}, {Charisma, 2}, {Constitution, 1}, {Intelligence, 1}},
}

// AbilityModifiers returns the ability modifiers for s. Unknown signs have none.
// The returned slice must not be modified.
func AbilityModifiers(s astro.Sign) []AbilityModifier {
	if !s.Valid() {
		return nil
	}
	return signAbilityModifiers[s]
}
