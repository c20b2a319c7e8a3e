package rating_test

import (
	"errors"
	"testing"

	"github.com/okian/astrohero/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStandardScale(t *testing.T) {
	Convey("Given the standard scale", t, func() {
		Convey("Then totals map to the documented tiers", func() {
			So(rating.Grade(76), ShouldEqual, rating.S)
			So(rating.Grade(75), ShouldEqual, rating.S)
			So(rating.Grade(74), ShouldEqual, rating.A)
			So(rating.Grade(70), ShouldEqual, rating.A)
			So(rating.Grade(65), ShouldEqual, rating.B)
			So(rating.Grade(60), ShouldEqual, rating.C)
			So(rating.Grade(59), ShouldEqual, rating.D)
			So(rating.Grade(48), ShouldEqual, rating.D)
		})

		Convey("Then SS is never reached", func() {
			So(rating.Standard.Grade(108), ShouldEqual, rating.S)
		})
	})
}

func TestExtendedScale(t *testing.T) {
	Convey("Given the extended scale", t, func() {
		s := rating.Extended

		Convey("Then totals map to six tiers", func() {
			So(s.Grade(108), ShouldEqual, rating.SS)
			So(s.Grade(100), ShouldEqual, rating.SS)
			So(s.Grade(99), ShouldEqual, rating.S)
			So(s.Grade(80), ShouldEqual, rating.A)
			So(s.Grade(76), ShouldEqual, rating.B)
			So(s.Grade(60), ShouldEqual, rating.C)
			So(s.Grade(59), ShouldEqual, rating.D)
		})
	})
}

func TestMonotonic(t *testing.T) {
	Convey("Given both scales", t, func() {
		for _, s := range []rating.Scale{rating.Standard, rating.Extended} {
			Convey("Then "+s.Name+" never grades a higher total lower", func() {
				prev := s.Grade(0)
				for total := 1; total <= 120; total++ {
					cur := s.Grade(total)
					So(cur, ShouldBeGreaterThanOrEqualTo, prev)
					prev = cur
				}
			})
		}
	})
}

func TestParseScale(t *testing.T) {
	Convey("Given scale names", t, func() {
		Convey("Then known names resolve", func() {
			s, err := rating.ParseScale("Extended")
			So(err, ShouldBeNil)
			So(s.Name, ShouldEqual, "extended")

			s, err = rating.ParseScale("")
			So(err, ShouldBeNil)
			So(s.Name, ShouldEqual, "standard")
		})

		Convey("Then unknown names fail", func() {
			_, err := rating.ParseScale("legendary")
			So(errors.Is(err, rating.ErrUnknownScale), ShouldBeTrue)
		})
	})
}

func TestTierText(t *testing.T) {
	Convey("Given a tier", t, func() {
		b, err := rating.SS.MarshalText()
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, "SS")

		var tier rating.Tier
		So(tier.UnmarshalText([]byte("B")), ShouldBeNil)
		So(tier, ShouldEqual, rating.B)
		So(tier.UnmarshalText([]byte("Z")), ShouldNotBeNil)
	})
}
