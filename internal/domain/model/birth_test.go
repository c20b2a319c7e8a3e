package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/okian/astrohero/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func decode(s string) map[string]any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		panic(err)
	}
	return m
}

func TestFromFields(t *testing.T) {
	convey.Convey("Given a complete request body", t, func() {
		m := decode(`{"name":"艾莉亞","year":1989,"month":"9","day":23,"hour":12,"minute":30,
			"city":"台北","longitude":121.5654,"latitude":25.033,"timezone":" Asia/Taipei "}`)

		convey.Convey("Then it converts numbers and numeric strings", func() {
			b, err := model.FromFields(m)
			convey.So(err, convey.ShouldBeNil)
			convey.So(b, convey.ShouldResemble, model.BirthData{
				Name: "艾莉亞", Year: 1989, Month: 9, Day: 23, Hour: 12, Minute: 30,
				City: "台北", Longitude: 121.5654, Latitude: 25.033, Timezone: "Asia/Taipei",
			})
		})
	})

	convey.Convey("Given a body with missing and null fields", t, func() {
		m := decode(`{"name":"x","year":1990,"month":null,"hour":1,"minute":2,"longitude":0}`)

		convey.Convey("Then every missing key is listed in order", func() {
			_, err := model.FromFields(m)
			convey.So(errors.Is(err, model.ErrMissingFields), convey.ShouldBeTrue)

			var mfe *model.MissingFieldsError
			convey.So(errors.As(err, &mfe), convey.ShouldBeTrue)
			convey.So(mfe.Fields, convey.ShouldResemble, []string{"month", "day", "city", "latitude"})
		})
	})

	convey.Convey("Given a body with bad values", t, func() {
		m := decode(`{"name":"x","year":1800,"month":13,"day":"abc","hour":24,"minute":60,
			"city":"c","longitude":181,"latitude":-91}`)

		convey.Convey("Then malformed numbers are reported before ranges are checked", func() {
			_, err := model.FromFields(m)
			var ve *model.ValidationError
			convey.So(errors.As(err, &ve), convey.ShouldBeTrue)
			convey.So(ve.Problems, convey.ShouldResemble, []string{"日期必須是數字"})
		})

		convey.Convey("Then every range problem is reported", func() {
			m["day"] = json.Number("10")
			_, err := model.FromFields(m)
			convey.So(errors.Is(err, model.ErrValidation), convey.ShouldBeTrue)
			var ve *model.ValidationError
			convey.So(errors.As(err, &ve), convey.ShouldBeTrue)
			convey.So(ve.Problems, convey.ShouldHaveLength, 6)
			convey.So(ve.Problems[0], convey.ShouldEqual, "年份必須在1900-2050之間")
		})
	})
}

func TestBirthData_Validate(t *testing.T) {
	convey.Convey("Given birth data", t, func() {
		b := model.BirthData{Name: "x", Year: 2000, Month: 2, Day: 29, Hour: 0, Minute: 0, City: "c"}

		convey.Convey("Then a leap day is accepted", func() {
			convey.So(b.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then a day that does not exist is rejected", func() {
			b.Year = 2001
			err := b.Validate()
			convey.So(errors.Is(err, model.ErrValidation), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "2001-02-29")
		})

		convey.Convey("Then boundary values are accepted", func() {
			b.Year, b.Month, b.Day, b.Hour, b.Minute = 2050, 12, 31, 23, 59
			b.Longitude, b.Latitude = -180, 90
			convey.So(b.Validate(), convey.ShouldBeNil)
		})
	})
}
