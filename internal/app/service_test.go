package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/astrohero/internal/adapters/cache"
	service "github.com/okian/astrohero/internal/app"
	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/model"
	"github.com/okian/astrohero/internal/domain/tables"
	"github.com/okian/astrohero/pkg/metrics"
)

// leoCalculator returns an all-Leo chart for any input.
type leoCalculator struct {
	calls atomic.Int64
	delay time.Duration
	err   error
}

func (c *leoCalculator) Calculate(ctx context.Context, b model.BirthData) (astro.NatalChart, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.err != nil {
		return astro.NatalChart{}, c.err
	}
	chart := astro.NatalChart{
		Subject:    astro.Subject{Name: b.Name, BirthTime: time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, 0, 0, time.UTC)},
		Placements: make(map[astro.Body]astro.Placement, astro.BodyCount),
		Ascendant:  &astro.Angle{Sign: astro.Scorpio, Degree: 12.5},
		Midheaven:  &astro.Angle{Sign: astro.Leo, Degree: 3},
	}
	for _, body := range astro.Bodies() {
		chart.Placements[body] = astro.Placement{Sign: astro.Leo, House: 1, Degree: 10}
	}
	for i := 0; i < astro.HouseCount; i++ {
		chart.Cusps = append(chart.Cusps, astro.Angle{Sign: astro.Sign(i + 1), Degree: 5})
	}
	return chart, nil
}

func subject(name string) model.BirthData {
	return model.BirthData{
		Name: name, Year: 1990, Month: 6, Day: 15, Hour: 14, Minute: 30,
		City: "台北", Longitude: 121.55, Latitude: 25.017, Timezone: "Asia/Taipei",
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc.Engine(), ShouldEqual, service.DefaultEngine)
			So(svc.MaxBatchSize(), ShouldEqual, 50)
			So(svc.Stats().Started, ShouldBeFalse)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithEngine("test-engine"),
			service.WithMaxBatchSize(5),
			service.WithQueueSize(8),
			service.WithWorkerCount(2),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the options are applied", func() {
			st := svc.Stats()
			So(st.Started, ShouldBeTrue)
			So(st.Engine, ShouldEqual, "test-engine")
			So(st.Workers, ShouldEqual, 2)
			So(st.QueueCapacity, ShouldEqual, 8)
			So(svc.MaxBatchSize(), ShouldEqual, 5)
		})
	})
}

func TestService_Calculate(t *testing.T) {
	Convey("Given a service over a fixed chart with a cache", t, func() {
		calc := &leoCalculator{}
		m, err := metrics.NewManager(metrics.WithNamespace("service_calc_test"))
		So(err, ShouldBeNil)
		svc := service.New(
			service.WithCalculator(calc),
			service.WithCache(cache.NewInMemory[service.Result](cache.WithMaxSize(10))),
			service.WithMetrics(m),
		)

		Convey("When calculating a valid subject", func() {
			res, err := svc.Calculate(context.Background(), subject("  艾莉亞 "))
			So(err, ShouldBeNil)

			Convey("Then the sheet is derived from the chart", func() {
				So(res.Character.Name, ShouldEqual, "艾莉亞")
				So(res.Character.Class.ID, ShouldEqual, tables.Paladin)
				So(res.Warnings, ShouldBeEmpty)
				So(res.Cached, ShouldBeFalse)
			})

			Convey("And the astro data carries display names", func() {
				sun := res.AstroData.Planets["sun"]
				So(sun.Name, ShouldEqual, "太陽")
				So(sun.Sign, ShouldEqual, "獅子座")
				So(sun.SignCode, ShouldEqual, "Leo")
				So(sun.Element, ShouldEqual, "火")
				So(sun.Quality, ShouldEqual, "固定")
				So(sun.House, ShouldEqual, 1)
				So(res.AstroData.Planets, ShouldHaveLength, astro.BodyCount)
				So(res.AstroData.Houses, ShouldHaveLength, astro.HouseCount)
				So(res.AstroData.Houses[0].SignCode, ShouldEqual, "Ari")
				So(res.AstroData.Angles["ascendant"].Sign, ShouldEqual, "天蠍座")
				So(res.AstroData.BirthInfo.DateTime, ShouldEqual, "1990-06-15 14:30")
				So(res.AstroData.BirthInfo.Timezone, ShouldEqual, "Asia/Taipei")
			})

			Convey("And a repeated request is served from the cache", func() {
				again, err := svc.Calculate(context.Background(), subject("艾莉亞"))
				So(err, ShouldBeNil)
				So(again.Cached, ShouldBeTrue)
				So(again.Character, ShouldResemble, res.Character)
				So(calc.calls.Load(), ShouldEqual, 1)
			})

			Convey("And the same moment in another city is computed afresh", func() {
				elsewhere := subject("艾莉亞")
				elsewhere.City = "高雄"
				other, err := svc.Calculate(context.Background(), elsewhere)
				So(err, ShouldBeNil)
				So(other.Cached, ShouldBeFalse)
				So(other.AstroData.BirthInfo.Location, ShouldEqual, "高雄")
				So(res.AstroData.BirthInfo.Location, ShouldEqual, "台北")
				So(calc.calls.Load(), ShouldEqual, 2)
			})
		})

		Convey("When the subject fails validation", func() {
			b := subject("x")
			b.Month = 13
			_, err := svc.Calculate(context.Background(), b)

			Convey("Then a validation error is returned and nothing is computed", func() {
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
				So(calc.calls.Load(), ShouldEqual, 0)
			})
		})

		Convey("When the ephemeris fails", func() {
			boom := errors.New("boom")
			calc.err = boom
			_, err := svc.Calculate(context.Background(), subject("x"))

			Convey("Then the error is a calculation error wrapping the cause", func() {
				So(errors.Is(err, service.ErrCalculation), ShouldBeTrue)
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})
	})
}

func TestService_CalculateRealEphemeris(t *testing.T) {
	Convey("Given the default service", t, func() {
		svc := service.New()

		Convey("When calculating the built-in test subject", func() {
			res, err := svc.Calculate(context.Background(), subject("系統測試用戶"))
			So(err, ShouldBeNil)

			Convey("Then the sun is in Gemini and every section is present", func() {
				So(res.AstroData.Planets["sun"].SignCode, ShouldEqual, "Gem")
				So(res.AstroData.Angles, ShouldContainKey, "ascendant")
				So(res.AstroData.Angles, ShouldContainKey, "midheaven")
				So(res.Character.Total, ShouldBeBetweenOrEqual, 48, 108)
				So(res.Character.Background, ShouldNotBeEmpty)
			})
		})
	})
}

func TestService_CalculateBatch(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithCalculator(&leoCalculator{}))
		_, err := svc.CalculateBatch(context.Background(), []model.BirthData{subject("a")})
		So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
	})

	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithCalculator(&leoCalculator{}),
			service.WithWorkerCount(3),
			service.WithMaxBatchSize(4),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When a batch mixes valid and invalid subjects", func() {
			bad := subject("bad")
			bad.Hour = 25
			items, err := svc.CalculateBatch(context.Background(), []model.BirthData{
				subject("甲"), bad, subject("丙"),
			})
			So(err, ShouldBeNil)

			Convey("Then results come back in input order with per-item errors", func() {
				So(items, ShouldHaveLength, 3)
				So(items[0].Err, ShouldBeNil)
				So(items[0].Result.Character.Name, ShouldEqual, "甲")
				So(errors.Is(items[1].Err, model.ErrValidation), ShouldBeTrue)
				So(items[2].Err, ShouldBeNil)
				So(items[2].Result.Character.Name, ShouldEqual, "丙")
				So(items[0].JobID, ShouldNotEqual, items[2].JobID)
			})
		})

		Convey("When the batch is empty or too large", func() {
			_, err := svc.CalculateBatch(context.Background(), nil)
			So(errors.Is(err, service.ErrEmptyBatch), ShouldBeTrue)

			many := make([]model.BirthData, 5)
			for i := range many {
				many[i] = subject("x")
			}
			_, err = svc.CalculateBatch(context.Background(), many)
			So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
		})
	})

	Convey("Given a one-worker service with a one-slot queue and a slow ephemeris", t, func() {
		svc := service.New(
			service.WithCalculator(&leoCalculator{delay: 50 * time.Millisecond}),
			service.WithWorkerCount(1),
			service.WithQueueSize(1),
			service.WithMaxBatchSize(6),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When six subjects arrive at once", func() {
			batch := make([]model.BirthData, 6)
			for i := range batch {
				batch[i] = subject("x")
			}
			items, err := svc.CalculateBatch(context.Background(), batch)
			So(err, ShouldBeNil)

			Convey("Then the overflow is refused with backpressure and the rest succeed", func() {
				refused := 0
				for _, it := range items {
					if errors.Is(it.Err, service.ErrBackpressure) {
						refused++
						continue
					}
					So(it.Err, ShouldBeNil)
				}
				So(refused, ShouldBeGreaterThanOrEqualTo, 3)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithCalculator(&leoCalculator{}))
		So(svc.Start(context.Background()), ShouldBeNil)
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()
			svc.Stop()

			Convey("Then it is marked as stopped and refuses batches", func() {
				So(svc.Stats().Started, ShouldBeFalse)
				_, err := svc.CalculateBatch(context.Background(), []model.BirthData{subject("a")})
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}
