package cache

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wbdash/internal/domain/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func recs(code string) []model.IndicatorRecord {
	return []model.IndicatorRecord{{Country: code, CountryCode: code, IndicatorCode: "X", Year: 2020, Value: 1}}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store with a one hour TTL", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		s := NewMemoryStore(WithTTL(time.Hour), WithMaxEntries(2), WithClock(clock.now))

		So(s.Set(ctx, "a", recs("GTM")), ShouldBeNil)

		Convey("A fresh entry is returned", func() {
			got, ok := s.Get(ctx, "a")
			So(ok, ShouldBeTrue)
			So(got[0].CountryCode, ShouldEqual, "GTM")
		})

		Convey("An entry is not returned once its TTL has elapsed", func() {
			clock.advance(time.Hour)
			_, ok := s.Get(ctx, "a")
			So(ok, ShouldBeFalse)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("The oldest entry is evicted beyond capacity", func() {
			So(s.Set(ctx, "b", recs("HND")), ShouldBeNil)
			So(s.Set(ctx, "c", recs("SLV")), ShouldBeNil)
			_, ok := s.Get(ctx, "a")
			So(ok, ShouldBeFalse)
			_, ok = s.Get(ctx, "c")
			So(ok, ShouldBeTrue)
			So(s.Len(), ShouldEqual, 2)
		})

		Convey("Overwriting a key keeps a single entry", func() {
			So(s.Set(ctx, "a", recs("CRI")), ShouldBeNil)
			got, _ := s.Get(ctx, "a")
			So(got[0].CountryCode, ShouldEqual, "CRI")
			So(s.Len(), ShouldEqual, 1)
		})

		Convey("Purge removes only expired entries", func() {
			clock.advance(30 * time.Minute)
			So(s.Set(ctx, "b", recs("HND")), ShouldBeNil)
			clock.advance(45 * time.Minute)
			n, err := s.Purge(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
			_, ok := s.Get(ctx, "b")
			So(ok, ShouldBeTrue)
		})
	})
}

func TestJanitorRun(t *testing.T) {
	Convey("Given a store holding an expired entry", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Unix(0, 0)}
		s := NewMemoryStore(WithTTL(time.Minute), WithClock(clock.now))
		So(s.Set(ctx, "k", recs("GTM")), ShouldBeNil)
		clock.advance(2 * time.Minute)

		j, err := NewJanitor(s, "@every 1h", testLogger())
		So(err, ShouldBeNil)

		Convey("Run purges it", func() {
			So(j.Run(ctx), ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("Start and Stop do not block", func() {
			j.Start()
			j.Stop()
		})
	})

	Convey("An invalid schedule is rejected", t, func() {
		_, err := NewJanitor(NewMemoryStore(), "not a schedule", testLogger())
		So(err, ShouldNotBeNil)
	})
}
