package tables

import (
	"strings"

	"github.com/okian/astrohero/internal/domain/astro"
)

// ClassID identifies a character class. Declaration order is the canonical
// order used for tie-breaking.
type ClassID int

// Classes in canonical order.
const (
	Barbarian ClassID = iota
	Bard
	Cleric
	Druid
	Fighter
	Monk
	Paladin
	Ranger
	Rogue
	Sorcerer
	Warlock
	Wizard
)

// ClassCount is the number of classes.
const ClassCount = 12

// Class describes a class for display.
type Class struct {
	ID                ClassID
	Key               string
	Name              string
	Description       string
	PrimaryAbilities  []Ability
	PersonalityTraits []string
}

var classCatalog = [ClassCount]Class{
	{Barbarian, "barbarian", "野蠻人", "原始力量的化身，在戰鬥中狂暴無比", []Ability{Strength, Constitution}, []string{"勇猛", "直覺", "自然親和", "情緒強烈"}},
	{Bard, "bard", "吟遊詩人", "魅力四射的表演者，以音樂和故事施展魔法", []Ability{Charisma, Dexterity}, []string{"魅力", "創意", "社交", "多才多藝"}},
	{Cleric, "cleric", "牧師", "神聖力量的代言人，治療與保護的守護者", []Ability{Wisdom, Constitution}, []string{"虔誠", "治療", "保護", "智慧"}},
	{Druid, "druid", "德魯伊", "自然的守護者，能變形並操控自然力量", []Ability{Wisdom, Constitution}, []string{"自然親和", "變化", "平衡", "直覺"}},
	{Fighter, "fighter", "戰士", "訓練有素的戰鬥專家，精通各種武器和戰術", []Ability{Strength, Constitution}, []string{"勇敢", "紀律", "領導", "堅韌"}},
	{Monk, "monk", "武僧", "內在力量的修行者，以氣功和武術戰鬥", []Ability{Dexterity, Wisdom}, []string{"自律", "平衡", "內省", "和諧"}},
	{Paladin, "paladin", "聖騎士", "正義的戰士，以神聖誓言為力量源泉", []Ability{Strength, Charisma}, []string{"正義", "保護", "領導", "犧牲"}},
	{Ranger, "ranger", "遊俠", "荒野的守護者，精通追蹤和遠程戰鬥", []Ability{Dexterity, Wisdom}, []string{"獨立", "自然親和", "警覺", "保護"}},
	{Rogue, "rogue", "盜賊", "陰影中的專家，擅長潛行和精準打擊", []Ability{Dexterity, Intelligence}, []string{"機敏", "靈活", "狡猾", "獨立"}},
	{Sorcerer, "sorcerer", "術士", "天生的魔法使用者，魔法在血脈中流淌", []Ability{Charisma, Constitution}, []string{"直覺", "情緒化", "天賦", "不可預測"}},
	{Warlock, "warlock", "邪術師", "與超自然存在締結契約的魔法使用者", []Ability{Charisma, Constitution}, []string{"野心", "神秘", "交易", "力量渴望"}},
	{Wizard, "wizard", "法師", "學識淵博的魔法學者，通過研究掌握魔法", []Ability{Intelligence, Constitution}, []string{"學者", "理性", "好奇", "準備充分"}},
}

// Classes returns the class ids in canonical order.
func Classes() []ClassID {
	out := make([]ClassID, ClassCount)
	for i := range out {
		out[i] = ClassID(i)
	}
	return out
}

// Valid reports whether c is a known class.
func (c ClassID) Valid() bool { return c >= Barbarian && c <= Wizard }

func (c ClassID) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return classCatalog[c].Key
}

// MarshalText implements encoding.TextMarshaler.
func (c ClassID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Info returns the catalog entry for c. The slices in the returned value are
// shared and must not be modified.
func (c ClassID) Info() Class {
	if !c.Valid() {
		return Class{ID: c, Key: "unknown"}
	}
	return classCatalog[c]
}

// ParseClass maps a class key such as "paladin" to its ClassID.
func ParseClass(key string) (ClassID, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, info := range classCatalog {
		if info.Key == key {
			return info.ID, true
		}
	}
	return 0, false
}

// ClassWeight is an affinity contribution to one class.
type ClassWeight struct {
	Class  ClassID
	Weight float64
}

// planetClassWeights holds the sign pass tables. Sun carries the core class
// tendency, Mars the fighting style, Mercury skills, Venus social graces and
// Jupiter wisdom. Bodies not listed contribute nothing in the sign pass.
var planetClassWeights = map[astro.Body]map[astro.Sign][]ClassWeight{
	astro.Sun: {
		astro.Aries:       {{Barbarian, 0.3}, {Fighter, 0.2}, {Paladin, 0.2}},
		astro.Taurus:      {{Druid, 0.3}, {Ranger, 0.2}, {Fighter, 0.2}},
		astro.Gemini:      {{Bard, 0.3}, {Rogue, 0.2}, {Wizard, 0.2}},
		astro.Cancer:      {{Cleric, 0.3}, {Druid, 0.2}, {Paladin, 0.2}},
		astro.Leo:         {{Paladin, 0.3}, {Bard, 0.2}, {Sorcerer, 0.2}},
		astro.Virgo:       {{Monk, 0.3}, {Cleric, 0.2}, {Wizard, 0.2}},
		astro.Libra:       {{Bard, 0.3}, {Paladin, 0.2}, {Cleric, 0.2}},
		astro.Scorpio:     {{Warlock, 0.3}, {Rogue, 0.2}, {Sorcerer, 0.2}},
		astro.Sagittarius: {{Ranger, 0.3}, {Bard, 0.2}, {Druid, 0.2}},
		astro.Capricorn:   {{Fighter, 0.3}, {Paladin, 0.2}, {Monk, 0.2}},
		astro.Aquarius:    {{Wizard, 0.3}, {Warlock, 0.2}, {Sorcerer, 0.2}},
		astro.Pisces:      {{Cleric, 0.3}, {Druid, 0.2}, {Sorcerer, 0.2}},
	},
	astro.Mars: {
		astro.Aries:       {{Barbarian, 0.2}, {Fighter, 0.15}},
		astro.Taurus:      {{Fighter, 0.2}, {Paladin, 0.15}},
		astro.Gemini:      {{Rogue, 0.2}, {Ranger, 0.15}},
		astro.Cancer:      {{Paladin, 0.2}, {Cleric, 0.15}},
		astro.Leo:         {{Paladin, 0.2}, {Fighter, 0.15}},
		astro.Virgo:       {{Monk, 0.2}, {Ranger, 0.15}},
		astro.Libra:       {{Paladin, 0.2}, {Bard, 0.15}},
		astro.Scorpio:     {{Rogue, 0.2}, {Warlock, 0.15}},
		astro.Sagittarius: {{Ranger, 0.2}, {Fighter, 0.15}},
		astro.Capricorn:   {{Fighter, 0.2}, {Monk, 0.15}},
		astro.Aquarius:    {{Fighter, 0.2}, {Wizard, 0.15}},
		astro.Pisces:      {{Cleric, 0.2}, {Druid, 0.15}},
	},
	astro.Mercury: {
		astro.Gemini:   {{Wizard, 0.15}, {Bard, 0.1}, {Rogue, 0.1}},
		astro.Virgo:    {{Wizard, 0.15}, {Monk, 0.1}, {Cleric, 0.1}},
		astro.Aquarius: {{Wizard, 0.15}, {Warlock, 0.1}},
	},
	astro.Venus: {
		astro.Taurus: {{Bard, 0.1}, {Druid, 0.1}},
		astro.Libra:  {{Bard, 0.15}, {Paladin, 0.1}},
		astro.Pisces: {{Bard, 0.1}, {Cleric, 0.1}},
	},
	astro.Jupiter: {
		astro.Sagittarius: {{Ranger, 0.1}, {Druid, 0.1}, {Cleric, 0.1}},
		astro.Pisces:      {{Cleric, 0.15}, {Druid, 0.1}},
	},
}

// SignClassWeights returns the sign pass contributions for body b placed in
// sign s. It is empty when either has no table entry.
func SignClassWeights(b astro.Body, s astro.Sign) []ClassWeight {
	bySign, ok := planetClassWeights[b]
	if !ok || !s.Valid() {
		return nil
	}
	return bySign[s]
}

// houseClassWeights is indexed by house number; index 0 is unused.
var houseClassWeights = [astro.HouseCount + 1][]ClassWeight{
	1:  {{Fighter, 0.1}, {Barbarian, 0.1}, {Paladin, 0.1}}, // self
	2:  {{Fighter, 0.05}, {Ranger, 0.05}},                  // resources
	3:  {{Bard, 0.1}, {Rogue, 0.05}},                       // communication
	4:  {{Cleric, 0.1}, {Druid, 0.1}},                      // home and roots
	5:  {{Bard, 0.1}, {Sorcerer, 0.1}, {Paladin, 0.05}},    // creativity
	6:  {{Monk, 0.1}, {Cleric, 0.05}, {Ranger, 0.05}},      // service
	7:  {{Bard, 0.05}, {Paladin, 0.05}},                    // partnership
	8:  {{Warlock, 0.15}, {Rogue, 0.1}, {Sorcerer, 0.05}},  // transformation
	9:  {{Cleric, 0.1}, {Wizard, 0.1}, {Ranger, 0.05}},     // philosophy
	10: {{Paladin, 0.1}, {Fighter, 0.05}},                  // career
	11: {{Wizard, 0.05}, {Bard, 0.05}},                     // ideals
	12: {{Monk, 0.1}, {Cleric, 0.1}, {Druid, 0.05}},        // the unseen
}

// HouseClassWeights returns the house pass contributions for house h. Houses
// outside 1..12 contribute nothing.
func HouseClassWeights(h astro.House) []ClassWeight {
	if !h.Valid() {
		return nil
	}
	return houseClassWeights[h]
}
