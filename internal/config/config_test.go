package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/wbdash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, time.Hour)
			convey.So(cfg.PerPage, convey.ShouldEqual, 1000)
			convey.So(cfg.MinYear, convey.ShouldEqual, 2000)
			convey.So(cfg.MaxYear, convey.ShouldEqual, 2023)
			convey.So(cfg.DefaultLocale, convey.ShouldEqual, "ja")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs violating invariants", t, func() {
		mutate := func(f func(c *config.Config)) error {
			c := config.New(context.Background())
			f(c)
			return c.Validate()
		}

		convey.So(errors.Is(mutate(func(c *config.Config) { c.Addr = " " }), config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(errors.Is(mutate(func(c *config.Config) { c.FetchTimeoutMS = 0 }), config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(errors.Is(mutate(func(c *config.Config) { c.MaxPages = 0 }), config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(errors.Is(mutate(func(c *config.Config) { c.CacheTTLSeconds = -1 }), config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(errors.Is(mutate(func(c *config.Config) { c.MinYear = 2030 }), config.ErrInvalidConfig), convey.ShouldBeTrue)
		convey.So(errors.Is(mutate(func(c *config.Config) { c.DefaultLocale = "fr" }), config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}

func TestConfig_AllowedOrigins(t *testing.T) {
	convey.Convey("Given a comma separated origin list", t, func() {
		cfg := config.New(context.Background())
		cfg.CORSAllowedOrigins = " http://a.example , ,http://b.example"

		convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"http://a.example", "http://b.example"})
	})
}
