package ephemeris

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func utcBirth(t time.Time) model.BirthData {
	return model.BirthData{
		Name: "probe", Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), City: "Greenwich", Timezone: "UTC",
	}
}

func TestApproximate_Positions(t *testing.T) {
	Convey("Given the chart for 2000-01-01 12:00 UTC at Greenwich", t, func() {
		calc := NewApproximate()
		chart, err := calc.Calculate(context.Background(), utcBirth(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)))
		So(err, ShouldBeNil)

		Convey("Then all ten bodies are placed", func() {
			So(chart.Validate(), ShouldBeNil)
			So(chart.Warnings(), ShouldBeEmpty)
			for _, b := range astro.Bodies() {
				p := chart.Placements[b]
				So(p.Degree, ShouldBeBetweenOrEqual, 0, 30)
				So(p.House.Valid(), ShouldBeTrue)
			}
		})

		Convey("Then slow bodies fall in their known signs", func() {
			So(chart.Placements[astro.Sun].Sign, ShouldEqual, astro.Capricorn)
			So(chart.Placements[astro.Moon].Sign, ShouldEqual, astro.Scorpio)
			So(chart.Placements[astro.Mars].Sign, ShouldEqual, astro.Aquarius)
			So(chart.Placements[astro.Jupiter].Sign, ShouldEqual, astro.Aries)
			So(chart.Placements[astro.Saturn].Sign, ShouldEqual, astro.Taurus)
			So(chart.Placements[astro.Uranus].Sign, ShouldEqual, astro.Aquarius)
			So(chart.Placements[astro.Pluto].Sign, ShouldEqual, astro.Sagittarius)
		})

		Convey("Then the subject carries the UTC birth time", func() {
			So(chart.Subject.Name, ShouldEqual, "probe")
			So(chart.Subject.BirthTime.Equal(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(chart.Ascendant, ShouldNotBeNil)
			So(chart.Midheaven, ShouldNotBeNil)
			So(chart.Cusps, ShouldHaveLength, astro.HouseCount)
		})
	})

	Convey("Given a local birth time in Taipei", t, func() {
		calc := NewApproximate()
		b := model.BirthData{Name: "系統測試用戶", Year: 1990, Month: 6, Day: 15, Hour: 14, Minute: 30,
			City: "台北", Longitude: 121.55, Latitude: 25.017}

		Convey("Then the default timezone converts it to UTC", func() {
			chart, err := calc.Calculate(context.Background(), b)
			So(err, ShouldBeNil)
			So(chart.Subject.BirthTime, ShouldEqual, time.Date(1990, 6, 15, 6, 30, 0, 0, time.UTC))
			So(chart.Placements[astro.Sun].Sign, ShouldEqual, astro.Gemini)
		})

		Convey("Then repeated calculations are identical", func() {
			a, err := calc.Calculate(context.Background(), b)
			So(err, ShouldBeNil)
			c, err := calc.Calculate(context.Background(), b)
			So(err, ShouldBeNil)
			So(c, ShouldResemble, a)
		})
	})
}

func TestApproximate_Retrograde(t *testing.T) {
	Convey("Given dates inside and outside known retrograde periods", t, func() {
		calc := NewApproximate()
		at := func(y int, m time.Month, d int) astro.NatalChart {
			chart, err := calc.Calculate(context.Background(), utcBirth(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)))
			So(err, ShouldBeNil)
			return chart
		}

		Convey("Then mercury is retrograde in early September 2023", func() {
			So(at(2023, time.September, 3).Placements[astro.Mercury].Retrograde, ShouldBeTrue)
			So(at(2023, time.October, 20).Placements[astro.Mercury].Retrograde, ShouldBeFalse)
		})

		Convey("Then mars is retrograde in December 2022", func() {
			So(at(2022, time.December, 8).Placements[astro.Mars].Retrograde, ShouldBeTrue)
		})

		Convey("Then the luminaries are never retrograde", func() {
			c := at(2023, time.September, 3)
			So(c.Placements[astro.Sun].Retrograde, ShouldBeFalse)
			So(c.Placements[astro.Moon].Retrograde, ShouldBeFalse)
		})
	})
}

func TestApproximate_Errors(t *testing.T) {
	Convey("Given a calculator", t, func() {
		calc := NewApproximate()
		b := utcBirth(time.Date(1995, 3, 1, 8, 0, 0, 0, time.UTC))

		Convey("When the timezone is unknown", func() {
			b.Timezone = "Mars/Olympus_Mons"
			_, err := calc.Calculate(context.Background(), b)

			Convey("Then the failure is a chart computation error", func() {
				So(errors.Is(err, ErrChartComputation), ShouldBeTrue)
				So(errors.Is(err, ErrUnknownTimezone), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := calc.Calculate(ctx, b)

			Convey("Then the cancellation is reported", func() {
				So(errors.Is(err, ErrChartComputation), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestAngles(t *testing.T) {
	Convey("Given the equator and the ecliptic obliquity", t, func() {
		eps := 23.4393

		Convey("Then the ascendant sits ninety degrees from the meridian at the equinoxes", func() {
			So(ascendant(0, 0, eps), ShouldAlmostEqual, 90, 1e-9)
			So(ascendant(90, 0, eps), ShouldAlmostEqual, 180, 1e-9)
		})

		Convey("Then the midheaven matches the meridian at the cardinal points", func() {
			So(midheaven(0, eps), ShouldAlmostEqual, 0, 1e-9)
			So(midheaven(90, eps), ShouldAlmostEqual, 90, 1e-9)
			So(midheaven(180, eps), ShouldAlmostEqual, 180, 1e-9)
		})

		Convey("Then sidereal time at the epoch is about 280.46 degrees", func() {
			So(localSiderealDegrees(1.5, 0), ShouldAlmostEqual, 280.46061837, 1e-6)
			So(localSiderealDegrees(1.5, 121.5), ShouldAlmostEqual, math.Mod(280.46061837+121.5, 360), 1e-6)
		})
	})
}

func TestHouses(t *testing.T) {
	Convey("Given an ascendant at 100 degrees and a midheaven at 10 degrees", t, func() {
		asc, mc := 100.0, 10.0

		Convey("Then equal houses step by thirty from the ascendant", func() {
			c := EqualHouses.cusps(asc, mc)
			So(c[0], ShouldEqual, 100)
			So(c[3], ShouldEqual, 190)
			So(c[11], ShouldEqual, 70)
		})

		Convey("Then whole sign houses start at the ascendant's sign", func() {
			c := WholeSignHouses.cusps(asc, mc)
			So(c[0], ShouldEqual, 90)
			So(c[1], ShouldEqual, 120)
			So(houseOf(95, c), ShouldEqual, astro.House(1))
			So(houseOf(89.9, c), ShouldEqual, astro.House(12))
		})

		Convey("Then porphyry trisects each quadrant", func() {
			c := PorphyryHouses.cusps(asc, mc)
			So(c[0], ShouldEqual, 100)
			So(c[3], ShouldEqual, 190)
			So(c[9], ShouldEqual, 10)
			So(c[1], ShouldAlmostEqual, 130)
			So(c[6], ShouldEqual, 280)
		})

		Convey("Then longitudes map to the house containing them", func() {
			c := EqualHouses.cusps(asc, mc)
			So(houseOf(100, c), ShouldEqual, astro.House(1))
			So(houseOf(129.99, c), ShouldEqual, astro.House(1))
			So(houseOf(130, c), ShouldEqual, astro.House(2))
			So(houseOf(75, c), ShouldEqual, astro.House(12))
			So(houseOf(5, c), ShouldEqual, astro.House(9))
		})
	})

	Convey("Given house system names", t, func() {
		hs, err := ParseHouseSystem(" Porphyry ")
		So(err, ShouldBeNil)
		So(hs, ShouldEqual, PorphyryHouses)

		_, err = ParseHouseSystem("placidus")
		So(errors.Is(err, ErrHouseSystem), ShouldBeTrue)

		So(NewApproximate(WithHouseSystem("bogus")).HouseSystem(), ShouldEqual, EqualHouses)
		So(NewApproximate(WithHouseSystem(WholeSignHouses)).HouseSystem(), ShouldEqual, WholeSignHouses)
	})
}
