package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/astrohero/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.RatingScale, convey.ShouldEqual, config.RatingScaleStandard)
			convey.So(cfg.HouseSystem, convey.ShouldEqual, config.HouseSystemEqual)
			convey.So(cfg.DefaultTimezone, convey.ShouldEqual, "Asia/Taipei")
			convey.So(cfg.BackgroundMaxLen, convey.ShouldEqual, 180)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 16*1024*1024)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, time.Hour)
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"unknown scale", func(c *config.Config) { c.RatingScale = "mythic" }},
			{"unknown houses", func(c *config.Config) { c.HouseSystem = "placidus" }},
			{"tiny background", func(c *config.Config) { c.BackgroundMaxLen = 3 }},
			{"no workers", func(c *config.Config) { c.WorkerCount = 0 }},
			{"no queue", func(c *config.Config) { c.QueueSize = -1 }},
			{"negative cache", func(c *config.Config) { c.CacheSize = -1 }},
			{"no batch", func(c *config.Config) { c.MaxBatchSize = 0 }},
			{"no body", func(c *config.Config) { c.MaxBodyBytes = 0 }},
			{"no request timeout", func(c *config.Config) { c.RequestTimeoutMS = 0 }},
		}
		for _, tc := range cases {
			convey.Convey("Then "+tc.name+" is rejected", func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then a disabled cache is allowed", func() {
			cfg := config.New()
			cfg.CacheSize = 0
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
