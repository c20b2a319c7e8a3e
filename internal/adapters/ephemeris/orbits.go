package ephemeris

import (
	"math"
	"time"

	"github.com/okian/astrohero/internal/domain/astro"
)

// Julian date of the Unix epoch and of the element epoch (1999 Dec 31.0 TT).
const (
	unixEpochJD    = 2440587.5
	elementEpochJD = 2451543.5
	secondsPerDay  = 86400.0
)

// dayNumber counts days, with fraction, since the element epoch.
func dayNumber(t time.Time) float64 {
	jd := float64(t.UnixNano())/1e9/secondsPerDay + unixEpochJD
	return jd - elementEpochJD
}

// elements are mean orbital elements at day d. Angles in degrees, a in AU
// (Earth radii for the Moon).
type elements struct {
	N, i, w, a, e, M float64
}

type elementFunc func(d float64) elements

var planetElements = map[astro.Body]elementFunc{
	astro.Mercury: func(d float64) elements {
		return elements{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	},
	astro.Venus: func(d float64) elements {
		return elements{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	},
	astro.Mars: func(d float64) elements {
		return elements{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	},
	astro.Jupiter: func(d float64) elements {
		return elements{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	},
	astro.Saturn: func(d float64) elements {
		return elements{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	},
	astro.Uranus: func(d float64) elements {
		return elements{74.0005 + 1.3978e-5*d, 0.7733 + 1.9e-8*d, 96.6612 + 3.0565e-5*d, 19.18171 - 1.55e-8*d, 0.047318 + 7.45e-9*d, 142.5905 + 0.011725806*d}
	},
	astro.Neptune: func(d float64) elements {
		return elements{131.7806 + 3.0173e-5*d, 1.7700 - 2.55e-7*d, 272.8461 - 6.027e-6*d, 30.05826 + 3.313e-8*d, 0.008606 + 2.15e-9*d, 260.2471 + 0.005995147*d}
	},
}

func sunElements(d float64) elements {
	return elements{0, 0, 282.9404 + 4.70935e-5*d, 1, 0.016709 - 1.151e-9*d, 356.0470 + 0.9856002585*d}
}

func moonElements(d float64) elements {
	return elements{125.1228 - 0.0529538083*d, 5.1454, 318.0634 + 0.1643573223*d, 60.2666, 0.054900, 115.3654 + 13.0649929509*d}
}

// geocentricLongitudes returns the apparent ecliptic longitude of every body
// at day d, indexed by astro.Body.
func geocentricLongitudes(d float64) [astro.BodyCount]float64 {
	var out [astro.BodyCount]float64

	sun := sunElements(d)
	sx, sy, _ := orbitPosition(sun)
	out[astro.Sun] = atan2d(sy, sx)
	out[astro.Moon] = moonLongitude(d, sun)

	mj := planetElements[astro.Jupiter](d).M
	ms := planetElements[astro.Saturn](d).M
	mu := planetElements[astro.Uranus](d).M

	for body, fn := range planetElements {
		x, y, z := orbitPosition(fn(d))
		if dl := perturbation(body, mj, ms, mu); dl != 0 {
			x, y, z = rotateLongitude(x, y, z, dl)
		}
		out[body] = atan2d(y+sy, x+sx)
	}

	px, py, _ := plutoPosition(d)
	out[astro.Pluto] = atan2d(py+sy, px+sx)
	return out
}

// orbitPosition returns the ecliptic rectangular coordinates of a body on
// its orbit, centered on the body it orbits.
func orbitPosition(el elements) (x, y, z float64) {
	E := eccentricAnomaly(el.M, el.e)
	xv := el.a * (cosd(E) - el.e)
	yv := el.a * math.Sqrt(1-el.e*el.e) * sind(E)
	v := atan2d(yv, xv)
	r := math.Hypot(xv, yv)

	vw := v + el.w
	x = r * (cosd(el.N)*cosd(vw) - sind(el.N)*sind(vw)*cosd(el.i))
	y = r * (sind(el.N)*cosd(vw) + cosd(el.N)*sind(vw)*cosd(el.i))
	z = r * sind(vw) * sind(el.i)
	return x, y, z
}

// eccentricAnomaly solves Kepler's equation by Newton iteration. M in
// degrees, result in degrees.
func eccentricAnomaly(M, e float64) float64 {
	m := rad(astro.NormalizeDegrees(M))
	E := m + e*math.Sin(m)*(1+e*math.Cos(m))
	for i := 0; i < 30; i++ {
		dE := (E - e*math.Sin(E) - m) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return deg(E)
}

// moonLongitude adds the largest periodic terms to the Moon's orbit longitude.
func moonLongitude(d float64, sun elements) float64 {
	moon := moonElements(d)
	x, y, _ := orbitPosition(moon)
	lon := atan2d(y, x)

	Ms, Mm := sun.M, moon.M
	Ls := Ms + sun.w
	Lm := Mm + moon.w + moon.N
	D := Lm - Ls
	F := Lm - moon.N

	lon += -1.274*sind(Mm-2*D) +
		0.658*sind(2*D) -
		0.186*sind(Ms) -
		0.059*sind(2*Mm-2*D) -
		0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) -
		0.035*sind(D) -
		0.031*sind(Mm+Ms) -
		0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)
	return astro.NormalizeDegrees(lon)
}

// perturbation returns the mutual Jupiter-Saturn-Uranus longitude terms.
func perturbation(body astro.Body, mj, ms, mu float64) float64 {
	switch body {
	case astro.Jupiter:
		return -0.332*sind(2*mj-5*ms-67.6) -
			0.056*sind(2*mj-2*ms+21) +
			0.042*sind(3*mj-5*ms+21) -
			0.036*sind(mj-2*ms) +
			0.022*cosd(mj-ms) +
			0.023*sind(2*mj-3*ms+52) -
			0.016*sind(mj-5*ms-69)
	case astro.Saturn:
		return 0.812*sind(2*mj-5*ms-67.6) -
			0.229*cosd(2*mj-4*ms-2) +
			0.119*sind(mj-2*ms-3) +
			0.046*sind(2*mj-6*ms-69) +
			0.014*sind(mj-3*ms+32)
	case astro.Uranus:
		return 0.040*sind(ms-2*mu+6) +
			0.035*sind(ms-3*mu+33) -
			0.015*sind(mj-mu+20)
	}
	return 0
}

// plutoPosition uses a periodic fit valid for roughly 1800-2100.
func plutoPosition(d float64) (x, y, z float64) {
	S := 50.03 + 0.033459652*d
	P := 238.95 + 0.003968789*d

	lon := 238.9508 + 0.00400703*d -
		19.799*sind(P) + 19.848*cosd(P) +
		0.897*sind(2*P) - 4.956*cosd(2*P) +
		0.610*sind(3*P) + 1.211*cosd(3*P) -
		0.341*sind(4*P) - 0.190*cosd(4*P) +
		0.128*sind(5*P) - 0.034*cosd(5*P) -
		0.038*sind(6*P) + 0.031*cosd(6*P) +
		0.020*sind(S-P) - 0.010*cosd(S-P)
	lat := -3.9082 -
		5.453*sind(P) - 14.975*cosd(P) +
		3.527*sind(2*P) + 1.673*cosd(2*P) -
		1.051*sind(3*P) + 0.328*cosd(3*P) +
		0.179*sind(4*P) - 0.292*cosd(4*P) +
		0.019*sind(5*P) + 0.100*cosd(5*P) -
		0.031*sind(6*P) - 0.026*cosd(6*P) +
		0.011*cosd(S-P)
	r := 40.72 +
		6.68*sind(P) + 6.90*cosd(P) -
		1.18*sind(2*P) - 0.03*cosd(2*P) +
		0.15*sind(3*P) - 0.14*cosd(3*P)

	return r * cosd(lon) * cosd(lat), r * sind(lon) * cosd(lat), r * sind(lat)
}

// rotateLongitude shifts a point's ecliptic longitude by dl degrees.
func rotateLongitude(x, y, z, dl float64) (float64, float64, float64) {
	c, s := cosd(dl), sind(dl)
	return x*c - y*s, x*s + y*c, z
}

// angularDelta returns b-a folded into (-180, 180].
func angularDelta(a, b float64) float64 {
	delta := astro.NormalizeDegrees(b - a)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

func degreeInSign(lon float64) float64 {
	n := astro.NormalizeDegrees(lon)
	return n - 30*float64(astro.SignAt(n)-astro.Aries)
}

func floor2(v float64) float64 { return math.Floor(v*100) / 100 }

func rad(d float64) float64       { return d * math.Pi / 180 }
func deg(r float64) float64       { return r * 180 / math.Pi }
func sind(d float64) float64      { return math.Sin(rad(d)) }
func cosd(d float64) float64      { return math.Cos(rad(d)) }
func atan2d(y, x float64) float64 { return astro.NormalizeDegrees(deg(math.Atan2(y, x))) }
