package profile

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
)

type source map[string]map[int]float64

func (s source) Fetch(_ context.Context, q model.Query) []model.IndicatorRecord {
	var out []model.IndicatorRecord
	for y, v := range s[q.Indicator] {
		out = append(out, model.IndicatorRecord{Country: "Guatemala", CountryCode: "GTM", CountryID: q.Countries[0], IndicatorCode: q.Indicator, Year: y, Value: v})
	}
	model.SortRecords(out)
	return out
}

var cfg = model.RequestConfig{Locale: model.LocaleEN, Span: model.Span{Start: 2010, End: 2012}}

func TestPackage(t *testing.T) {
	Convey("Given data for one economy indicator", t, func() {
		c := catalog.New()
		p := New(source{catalog.CodeGDPGrowth: {2010: 1, 2011: 2, 2012: 3}}, c)
		pkg, _ := c.ResolvePackage(catalog.PackageEconomy)

		v, err := p.Package(context.Background(), "GT", pkg, cfg)

		Convey("Then the latest value and series are reported", func() {
			So(err, ShouldBeNil)
			So(v.Indicators, ShouldHaveLength, 1)
			So(v.Indicators[0].Key, ShouldEqual, "gdp_growth")
			So(v.Indicators[0].Latest.Year, ShouldEqual, 2012)
			So(v.Indicators[0].Latest.Value, ShouldEqual, 3.0)
			So(v.Indicators[0].Series.Points, ShouldHaveLength, 3)
			So(len(v.Missing), ShouldEqual, len(pkg.Indicators)-1)
		})
	})

	Convey("Given no data at all", t, func() {
		c := catalog.New()
		pkg, _ := c.ResolvePackage(catalog.PackageTrade)
		_, err := New(source{}, c).Package(context.Background(), "GT", pkg, cfg)
		So(errors.Is(err, model.ErrNoData), ShouldBeTrue)
	})
}

func TestGDPComposition(t *testing.T) {
	Convey("Given expenditure parts with one incomplete year", t, func() {
		p := New(source{
			catalog.CodeGovernmentSpending: {2010: 10, 2011: 11},
			catalog.CodeInvestment:         {2010: 20, 2011: 21},
			catalog.CodeConsumption:        {2010: 60, 2011: 61},
			catalog.CodeExportsUSD:         {2010: 30, 2011: 35},
			catalog.CodeImportsUSD:         {2010: 40},
		}, catalog.New())

		Convey("Then only complete years appear with net exports", func() {
			out, err := p.GDPComposition(context.Background(), "GT", cfg.Span)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0].Year, ShouldEqual, 2010)
			So(out[0].NetExports, ShouldEqual, -10.0)
		})
	})
}

func TestIndustry(t *testing.T) {
	Convey("Given agriculture and industry without services", t, func() {
		src := source{
			catalog.CodeAgriculture: {2010: 10, 2011: 12},
			catalog.CodeIndustry:    {2010: 25, 2011: 24},
		}
		p := New(src, catalog.New())

		Convey("Then services are derived as the remainder", func() {
			out, err := p.Industry(context.Background(), "GT", cfg.Span)
			So(err, ShouldBeNil)
			So(out.ServicesDerived, ShouldBeTrue)
			So(out.Years, ShouldHaveLength, 2)
			So(out.Years[0].Services, ShouldEqual, 65.0)
		})

		Convey("Then reported services are used as is", func() {
			src[catalog.CodeServices] = map[int]float64{2011: 60}
			out, err := p.Industry(context.Background(), "GT", cfg.Span)
			So(err, ShouldBeNil)
			So(out.ServicesDerived, ShouldBeFalse)
			So(out.Years, ShouldHaveLength, 1)
			So(out.Years[0].Services, ShouldEqual, 60.0)
		})
	})
}

func TestPopulation(t *testing.T) {
	Convey("Population needs at least one series", t, func() {
		p := New(source{catalog.CodePopulation: {2010: 1}}, catalog.New())
		tr, err := p.Population(context.Background(), "GT", cfg.Span)
		So(err, ShouldBeNil)
		So(tr.WorkingAge.Empty(), ShouldBeTrue)

		_, err = New(source{}, catalog.New()).Population(context.Background(), "GT", cfg.Span)
		So(errors.Is(err, model.ErrNoData), ShouldBeTrue)
	})
}
