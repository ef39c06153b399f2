package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/analytics"
	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
)

const (
	codeInflation    = "FP.CPI.TOTL.ZG"
	codeUnemployment = "SL.UEM.TOTL.ZS"
)

var en = model.RequestConfig{Locale: model.LocaleEN, Span: model.Span{Start: 2010, End: 2015}}

func macroStub() *stub {
	return &stub{data: map[string]map[string]map[int]float64{
		catalog.CodeGDPGrowth: {
			"GT": {2010: 3, 2011: 4, 2012: 2},
			"HN": {2010: 5, 2011: 6, 2012: 7},
			"SV": {2010: 1, 2011: 1.5, 2012: 0.5},
		},
		codeInflation: {
			"GT": {2010: 4, 2011: 6, 2012: 3.5},
			"HN": {2010: 5.5, 2011: 7, 2012: 4},
			"SV": {2010: 1, 2011: 2.5, 2012: 1.5},
		},
		codeUnemployment: {
			"GT": {2010: 3.1, 2011: 2.9, 2012: 2.4},
			"HN": {2010: 6.2, 2011: 5.5, 2012: 7.1},
			"SV": {2010: 4.4, 2011: 5.0, 2012: 3.9},
		},
		catalog.CodePopulation: {
			"GT": {2010: 14.6e6, 2011: 15e6},
		},
	}}
}

func TestCompare(t *testing.T) {
	Convey("Given growth data for three Central American countries", t, func() {
		src := macroStub()
		svc := started(src)
		defer svc.Stop()

		Convey("When comparing the default group", func() {
			res, err := svc.Compare(context.Background(), en, "gdp_growth", nil, catalog.GroupCentralAmerica)
			So(err, ShouldBeNil)

			Convey("Then one series per country with data is returned", func() {
				So(res.Indicator.Code, ShouldEqual, catalog.CodeGDPGrowth)
				So(res.Series, ShouldHaveLength, 3)
				So(res.Series[0].CountryCode, ShouldEqual, "GT")
				So(res.Series[0].Country, ShouldEqual, "Guatemala")
				So(res.Missing, ShouldHaveLength, 6)
				So(res.Warnings, ShouldNotBeEmpty)
			})

			Convey("And the pivot covers the union of years", func() {
				So(res.Pivot.Years, ShouldResemble, []int{2010, 2011, 2012})
				So(res.Pivot.Countries, ShouldResemble, []string{"GT", "HN", "SV"})
				So(*res.Pivot.Cells[1][1], ShouldEqual, 6.0)
			})

			Convey("And a repeated request is served from the cache", func() {
				before := src.calls.Load()
				_, err := svc.Compare(context.Background(), en, "gdp_growth", nil, catalog.GroupCentralAmerica)
				So(err, ShouldBeNil)
				So(src.calls.Load(), ShouldEqual, before)
			})
		})

		Convey("When the indicator and group are unknown", func() {
			res, err := svc.Compare(context.Background(), en, "no such thing", nil, "atlantis")

			Convey("Then defaults are used and reported", func() {
				So(err, ShouldBeNil)
				So(res.Indicator.Key, ShouldEqual, catalog.DefaultIndicator)
				So(res.Warnings, ShouldHaveLength, 3)
			})
		})

		Convey("When nothing has data", func() {
			_, err := svc.Compare(context.Background(), en, "gdp_growth", []string{"JP"}, "")

			Convey("Then the result is no_data", func() {
				So(errors.Is(err, model.ErrNoData), ShouldBeTrue)
			})
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given growth data only", t, func() {
		svc := started(macroStub())
		defer svc.Stop()

		Convey("When ranking the economic development index", func() {
			res, err := svc.Composite(context.Background(), en, "economic_development", []string{"GT", "HN", "SV", "JP"}, "", "")
			So(err, ShouldBeNil)

			Convey("Then countries are ordered by the growth mean", func() {
				So(res.Entries, ShouldHaveLength, 3)
				So(res.Entries[0].CountryCode, ShouldEqual, "HN")
				So(res.Entries[0].Score, ShouldEqual, 6.0)
				So(res.Entries[1].CountryCode, ShouldEqual, "GT")
				So(res.Entries[1].Highlight, ShouldBeTrue)
				So(res.Entries[2].Rank, ShouldEqual, 3)
				So(res.Omitted, ShouldResemble, []string{"JP"})
				So(res.Components, ShouldHaveLength, 3)
				So(res.Label, ShouldEqual, "Economic development index")
			})
		})

		Convey("When a z-score transform is requested", func() {
			res, err := svc.Composite(context.Background(), en, "", []string{"GT", "HN", "SV"}, "", "zscore")
			So(err, ShouldBeNil)

			Convey("Then scores are centred", func() {
				var sum float64
				for _, e := range res.Entries {
					sum += e.Score
				}
				So(sum, ShouldAlmostEqual, 0, 1e-9)
				So(res.Transform, ShouldEqual, model.TransformZScore)
			})
		})

		Convey("When an unknown SDG index is requested", func() {
			_, err := svc.SDG(context.Background(), en, "sdg99", []string{"GT"}, "", "")

			Convey("Then the life expectancy fallback has no data", func() {
				So(errors.Is(err, model.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When a country code smuggles a second country", func() {
			res, err := svc.Composite(context.Background(), en, "economic_development", []string{"GT;HN", "SV"}, "", "")
			So(err, ShouldBeNil)

			Convey("Then it is dropped with a warning and never ranked", func() {
				So(res.Entries, ShouldHaveLength, 1)
				So(res.Entries[0].CountryCode, ShouldEqual, "SV")
				So(res.Warnings, ShouldContain, `ignored invalid country code "GT;HN"`)
			})
		})

		Convey("When the transform is unknown", func() {
			_, err := svc.Composite(context.Background(), en, "", []string{"GT"}, "", "log")
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})

		Convey("When a z-score needs more than one country", func() {
			_, err := svc.Composite(context.Background(), en, "", []string{"GT"}, "", "zscore")
			So(errors.Is(err, model.ErrInsufficientSample), ShouldBeTrue)
		})
	})
}

func TestPCAAndModel(t *testing.T) {
	Convey("Given three indicators for three countries", t, func() {
		svc := started(macroStub())
		defer svc.Stop()
		countries := []string{"GT", "HN", "SV"}

		Convey("When running PCA on two indicators", func() {
			res, err := svc.PCA(context.Background(), en, []string{"gdp_growth", "inflation"}, countries, "", 0)

			Convey("Then two components are projected per row", func() {
				So(err, ShouldBeNil)
				So(res.Features, ShouldResemble, []string{catalog.CodeGDPGrowth, codeInflation})
				So(res.Scores, ShouldHaveLength, 9)
				So(res.Scores[0], ShouldHaveLength, 2)
				So(res.Indicators, ShouldHaveLength, 2)
				So(res.Names, ShouldHaveLength, 3)
			})
		})

		Convey("When PCA gets a single indicator", func() {
			_, err := svc.PCA(context.Background(), en, []string{"gdp_growth", "gdp_growth"}, countries, "", 2)

			Convey("Then it is a bad request", func() {
				So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
			})
		})

		Convey("When training a ridge model", func() {
			res, err := svc.Model(context.Background(), en, "gdp_growth", []string{"inflation", "unemployment", "gdp_growth"}, countries, "", "ridge")

			Convey("Then the target is dropped from the features", func() {
				So(err, ShouldBeNil)
				So(res.Model, ShouldEqual, analytics.ModelRidge)
				So(res.Features, ShouldResemble, []string{codeInflation, codeUnemployment})
				So(res.TrainSize+res.TestSize, ShouldEqual, 9)
				So(res.Importance.Kind(), ShouldEqual, "linear")
				So(res.TargetRef.Code, ShouldEqual, catalog.CodeGDPGrowth)
			})
		})

		Convey("When the same model is requested concurrently", func() {
			const callers = 3
			views := make([]service.ModelView, callers)
			errs := make([]error, callers)
			var wg sync.WaitGroup
			for i := range callers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					views[i], errs[i] = svc.Model(context.Background(), en, "gdp_growth", []string{"inflation", "unemployment"}, countries, "", "random_forest")
				}()
			}
			wg.Wait()

			Convey("Then one trained result is shared", func() {
				for i := range callers {
					So(errs[i], ShouldBeNil)
					So(views[i].Features, ShouldResemble, views[0].Features)
					So(views[i].TrainSize, ShouldEqual, views[0].TrainSize)
				}
				So(svc.GetStats()["trainedModels"], ShouldEqual, 1)
			})
		})

		Convey("When training fails", func() {
			_, err := svc.Model(context.Background(), en, "gdp_growth", []string{"inflation"}, []string{"GT"}, "", "")
			So(err, ShouldNotBeNil)

			Convey("Then nothing is kept", func() {
				So(svc.GetStats()["trainedModels"], ShouldEqual, 0)
			})
		})

		Convey("When the model type is unknown", func() {
			_, err := svc.Model(context.Background(), en, "gdp_growth", []string{"inflation"}, countries, "", "svm")
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})

		Convey("When the only feature is the target", func() {
			_, err := svc.Model(context.Background(), en, "gdp_growth", []string{"gdp_growth"}, countries, "", "")
			So(errors.Is(err, model.ErrBadRequest), ShouldBeTrue)
		})

		Convey("When the joined table is too small", func() {
			_, err := svc.Model(context.Background(), en, "gdp_growth", []string{"inflation"}, []string{"GT"}, "", "")
			So(errors.Is(err, model.ErrInsufficientSample), ShouldBeTrue)
		})
	})
}

func TestProfile(t *testing.T) {
	Convey("Given population data for Guatemala only", t, func() {
		svc := started(macroStub())
		defer svc.Stop()

		Convey("When building the economy profile", func() {
			res, err := svc.Profile(context.Background(), en, "GT", "")

			Convey("Then present widgets are filled and absent ones warned", func() {
				So(err, ShouldBeNil)
				So(res.Name, ShouldEqual, "Guatemala")
				So(res.Population, ShouldNotBeNil)
				So(res.Population.Total.Points, ShouldHaveLength, 2)
				So(res.Package, ShouldNotBeNil)
				So(res.Package.Indicators[0].Key, ShouldEqual, "gdp_growth")
				So(res.GDP, ShouldBeNil)
				So(res.Industry, ShouldBeNil)
				So(res.Warnings, ShouldHaveLength, 2)
			})
		})

		Convey("When the country has no data", func() {
			_, err := svc.Profile(context.Background(), en, "JP", "trade")
			So(errors.Is(err, model.ErrNoData), ShouldBeTrue)
		})
	})
}

func TestCatalogView(t *testing.T) {
	Convey("Given the English catalog", t, func() {
		v := started(&stub{}).CatalogView(model.LocaleEN)

		Convey("Then every picker is populated", func() {
			So(v.Indicators, ShouldNotBeEmpty)
			So(v.Composite, ShouldHaveLength, 8)
			So(v.SDG, ShouldHaveLength, 6)
			So(v.Packages, ShouldHaveLength, 5)
			So(v.Targets, ShouldHaveLength, 15)
			So(v.Models, ShouldResemble, []string{"random_forest", "gradient_boosting", "ridge"})
			So(v.Highlight, ShouldEqual, "GT")
			So(v.Defaults["group"], ShouldEqual, catalog.GroupCentralAmerica)
		})
	})
}
