package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// stub serves indicator -> country -> year -> value and counts fetches.
type stub struct {
	data  map[string]map[string]map[int]float64
	calls atomic.Int32
}

func (s *stub) Fetch(_ context.Context, q model.Query) []model.IndicatorRecord {
	s.calls.Add(1)
	var out []model.IndicatorRecord
	for _, c := range q.Countries {
		for y, v := range s.data[q.Indicator][c] {
			if y < q.Span.Start || y > q.Span.End {
				continue
			}
			out = append(out, model.IndicatorRecord{
				Country: "Country " + c, CountryCode: c, CountryID: c,
				IndicatorCode: q.Indicator, Year: y, Value: v,
			})
		}
	}
	model.SortRecords(out)
	return out
}

func started(f model.Fetcher, opts ...service.Option) *service.Service {
	svc := service.New(append([]service.Option{service.WithFetcher(f)}, opts...)...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["minYear"], ShouldEqual, 2000)
			So(stats["maxYear"], ShouldEqual, 2023)
			So(stats["cacheBackend"], ShouldEqual, "memory")
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorldBank("http://localhost:1", time.Second, 100, 2),
			service.WithCache(time.Minute, 10, "", "@every 1m"),
			service.WithYearWindow(1990, 2020),
			service.WithDefaultLocale("en"),
		)

		Convey("Then it should be created successfully", func() {
			stats := svc.GetStats()
			So(stats["baseURL"], ShouldEqual, "http://localhost:1")
			So(stats["cacheTTL"], ShouldEqual, "1m0s")
			So(stats["minYear"], ShouldEqual, 1990)
			So(stats["defaultLocale"], ShouldEqual, "en")
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithFetcher(&stub{}))
		defer svc.Stop()

		Convey("When an operation runs before Start", func() {
			_, err := svc.Compare(context.Background(), model.RequestConfig{}, "", nil, "")

			Convey("Then it is refused", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["cacheEntries"], ShouldEqual, 0)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})

	Convey("Given an invalid purge schedule", t, func() {
		svc := service.New(service.WithFetcher(&stub{}), service.WithCache(0, 0, "", "every now and then"))

		Convey("Then Start fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})

	Convey("Given a sqlite cache path", t, func() {
		path := filepath.Join(t.TempDir(), "cache.db")
		svc := started(&stub{}, service.WithCache(time.Hour, 0, path, ""))
		defer svc.Stop()

		Convey("Then the sqlite backend is reported", func() {
			So(svc.GetStats()["cacheBackend"], ShouldEqual, "sqlite")
		})
	})
}

func TestService_RequestConfig(t *testing.T) {
	Convey("Given the default year window", t, func() {
		svc := service.New()

		Convey("Zero years select the whole window", func() {
			cfg, err := svc.RequestConfig("", 0, 0)
			So(err, ShouldBeNil)
			So(cfg.Span, ShouldResemble, model.Span{Start: 2000, End: 2023})
			So(cfg.Locale, ShouldEqual, model.LocaleJA)
		})

		Convey("A known locale is kept", func() {
			cfg, err := svc.RequestConfig("en", 2010, 2015)
			So(err, ShouldBeNil)
			So(cfg.Locale, ShouldEqual, model.LocaleEN)
		})

		Convey("Years outside the window are a bad request", func() {
			_, err := svc.RequestConfig("en", 1990, 2015)
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, model.ErrInvalidSpan), ShouldBeTrue)
		})

		Convey("A reversed span is a bad request", func() {
			_, err := svc.RequestConfig("en", 2015, 2010)
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})
	})
}
