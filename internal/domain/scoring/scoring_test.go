package scoring_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/scoring"
	"github.com/okian/astrohero/internal/domain/tables"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedSource always draws the same value.
type fixedSource int

func (f fixedSource) Intn(int) int { return int(f) }

// cycleSource draws 0, 1, 2, ... modulo n.
type cycleSource struct{ next int }

func (c *cycleSource) Intn(n int) int {
	v := c.next % n
	c.next++
	return v
}

func uniformChart(sign astro.Sign) astro.NatalChart {
	c := astro.NatalChart{
		Subject:    astro.Subject{Name: "Tester", BirthTime: time.Date(1990, 8, 1, 12, 0, 0, 0, time.UTC)},
		Placements: make(map[astro.Body]astro.Placement),
	}
	for _, b := range astro.Bodies() {
		c.Placements[b] = astro.Placement{Sign: sign, House: 1}
	}
	return c
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a chart with every body in Leo", t, func() {
		chart := uniformChart(astro.Leo)

		Convey("When scoring without perturbation", func() {
			got, err := scoring.NewScorer(scoring.WithoutPerturbation()).Score(chart)

			Convey("Then weighted modifiers are truncated and summed", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, scoring.AbilityScores{
					Strength: 16, Dexterity: 11, Constitution: 11,
					Intelligence: 10, Wisdom: 10, Charisma: 18,
				})
				So(got.Total(), ShouldEqual, 76)
			})
		})

		Convey("When every draw is the maximum", func() {
			got, err := scoring.NewScorer(scoring.WithSource(fixedSource(4))).Score(chart)

			Convey("Then scores are raised by two and clamped at the top", func() {
				So(err, ShouldBeNil)
				So(got.Strength, ShouldEqual, 18)
				So(got.Dexterity, ShouldEqual, 13)
				So(got.Charisma, ShouldEqual, scoring.MaxScore)
			})
		})

		Convey("When every draw is the minimum", func() {
			got, err := scoring.NewScorer(scoring.WithSource(fixedSource(0))).Score(chart)

			Convey("Then scores are lowered by two", func() {
				So(err, ShouldBeNil)
				So(got.Intelligence, ShouldEqual, scoring.MinScore)
				So(got.Charisma, ShouldEqual, 16)
			})
		})
	})

	Convey("Given a chart whose signs are all unknown", t, func() {
		chart := uniformChart(astro.SignUnknown)

		Convey("Then no modifiers apply", func() {
			got, err := scoring.NewScorer(scoring.WithoutPerturbation()).Score(chart)
			So(err, ShouldBeNil)
			for _, a := range tables.Abilities() {
				So(got.Get(a), ShouldEqual, scoring.BaseScore)
			}
		})

		Convey("Then draws are applied in canonical ability order", func() {
			got, err := scoring.NewScorer(scoring.WithSource(&cycleSource{})).Score(chart)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, scoring.AbilityScores{
				Strength: 8, Dexterity: 9, Constitution: 10,
				Intelligence: 11, Wisdom: 12, Charisma: 8,
			})
		})
	})

	Convey("Given a chart without a moon or venus", t, func() {
		chart := uniformChart(astro.Aries)
		delete(chart.Placements, astro.Venus)
		delete(chart.Placements, astro.Moon)

		Convey("Then scoring fails listing the bodies in canonical order", func() {
			_, err := scoring.NewScorer().Score(chart)
			So(errors.Is(err, astro.ErrMissingPlacement), ShouldBeTrue)

			var mpe *astro.MissingPlacementError
			So(errors.As(err, &mpe), ShouldBeTrue)
			So(mpe.Bodies, ShouldResemble, []astro.Body{astro.Moon, astro.Venus})
		})
	})
}

func TestScorer_Determinism(t *testing.T) {
	Convey("Given the default seeded scorer", t, func() {
		scorer := scoring.NewScorer()

		Convey("Then equal charts always produce equal scores", func() {
			chart := uniformChart(astro.Scorpio)
			first, err := scorer.Score(chart)
			So(err, ShouldBeNil)
			for i := 0; i < 20; i++ {
				again, err := scorer.Score(uniformChart(astro.Scorpio))
				So(err, ShouldBeNil)
				So(again, ShouldResemble, first)
			}
		})

		Convey("Then scores stay within bounds for arbitrary charts", func() {
			rng := rand.New(rand.NewSource(7))
			signs := astro.Signs()
			for i := 0; i < 500; i++ {
				chart := uniformChart(astro.Aries)
				chart.Subject.Name = string(rune('A' + i%26))
				for _, b := range astro.Bodies() {
					chart.Placements[b] = astro.Placement{
						Sign:  signs[rng.Intn(len(signs))],
						House: astro.House(rng.Intn(12) + 1),
					}
				}
				got, err := scorer.Score(chart)
				So(err, ShouldBeNil)
				for _, a := range tables.Abilities() {
					So(got.Get(a), ShouldBeBetweenOrEqual, scoring.MinScore, scoring.MaxScore)
				}
			}
		})
	})
}
