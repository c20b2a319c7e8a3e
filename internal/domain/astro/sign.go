package astro

import (
	"math"
	"strings"
)

// Sign is one of the twelve zodiac signs. The zero value is SignUnknown and
// stands for a code the ephemeris produced that is outside the enumeration.
type Sign int

// Zodiac signs in ecliptic order.
const (
	SignUnknown Sign = iota
	Aries
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of valid signs.
const SignCount = 12

// Element is the classical element of a sign.
type Element string

// Quality is the modality of a sign.
type Quality string

// Elements and qualities.
const (
	Fire  Element = "火"
	Earth Element = "土"
	Air   Element = "風"
	Water Element = "水"

	Cardinal Quality = "開創"
	Fixed    Quality = "固定"
	Mutable  Quality = "變動"
)

type signInfo struct {
	code    string
	english string
	name    string
	element Element
	quality Quality
}

var signTable = [SignCount + 1]signInfo{
	{code: "", english: "", name: "未知"},
	{"Ari", "aries", "牡羊座", Fire, Cardinal},
	{"Tau", "taurus", "金牛座", Earth, Fixed},
	{"Gem", "gemini", "雙子座", Air, Mutable},
	{"Can", "cancer", "巨蟹座", Water, Cardinal},
	{"Leo", "leo", "獅子座", Fire, Fixed},
	{"Vir", "virgo", "處女座", Earth, Mutable},
	{"Lib", "libra", "天秤座", Air, Cardinal},
	{"Sco", "scorpio", "天蠍座", Water, Fixed},
	{"Sag", "sagittarius", "射手座", Fire, Mutable},
	{"Cap", "capricorn", "摩羯座", Earth, Cardinal},
	{"Aqu", "aquarius", "水瓶座", Air, Fixed},
	{"Pis", "pisces", "雙魚座", Water, Mutable},
}

// Signs returns the twelve valid signs in ecliptic order.
func Signs() []Sign {
	out := make([]Sign, SignCount)
	for i := range out {
		out[i] = Sign(i + 1)
	}
	return out
}

// SignAt returns the sign containing the ecliptic longitude lon (degrees).
func SignAt(lon float64) Sign {
	lon = NormalizeDegrees(lon)
	idx := int(lon / 30)
	if idx >= SignCount {
		idx = SignCount - 1
	}
	return Sign(idx + 1)
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool { return s >= Aries && s <= Pisces }

// Code returns the three letter sign code, e.g. "Leo", or "" for SignUnknown.
func (s Sign) Code() string {
	if !s.Valid() {
		return ""
	}
	return signTable[s].code
}

// String returns the sign code, or "unknown".
func (s Sign) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return signTable[s].code
}

// DisplayName returns the localized sign name.
func (s Sign) DisplayName() string {
	if !s.Valid() {
		return signTable[SignUnknown].name
	}
	return signTable[s].name
}

// Element returns the sign's element, empty for SignUnknown.
func (s Sign) Element() Element {
	if !s.Valid() {
		return ""
	}
	return signTable[s].element
}

// Quality returns the sign's modality, empty for SignUnknown.
func (s Sign) Quality() Quality {
	if !s.Valid() {
		return ""
	}
	return signTable[s].quality
}

// MarshalText implements encoding.TextMarshaler.
func (s Sign) MarshalText() ([]byte, error) { return []byte(s.Code()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized codes decode
// to SignUnknown rather than failing; the derivation reports them as warnings.
func (s *Sign) UnmarshalText(text []byte) error {
	*s, _ = ParseSign(string(text))
	return nil
}

// ParseSign maps a sign code ("Leo"), English name ("Leo", "sagittarius") or
// localized name ("獅子座") to a Sign. It is total: unknown input yields
// SignUnknown and false.
func ParseSign(code string) (Sign, bool) {
	code = strings.TrimSpace(code)
	lower := strings.ToLower(code)
	for i := 1; i <= SignCount; i++ {
		info := signTable[i]
		if strings.ToLower(info.code) == lower || info.english == lower || info.name == code {
			return Sign(i), true
		}
	}
	return SignUnknown, false
}

// House is a mundane house number, valid in 1..12.
type House int

// HouseCount is the number of houses.
const HouseCount = 12

// Valid reports whether h is in 1..12.
func (h House) Valid() bool { return h >= 1 && h <= HouseCount }

// NormalizeDegrees maps any angle to [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
