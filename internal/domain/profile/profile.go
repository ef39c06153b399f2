// Package profile builds the single-country views: analysis packages,
// population trend, GDP expenditure composition and industry composition.
package profile

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
)

// Profiler assembles country profiles from a fetcher.
type Profiler struct {
	fetcher model.Fetcher
	catalog *catalog.Catalog
}

// New creates a profiler.
func New(f model.Fetcher, c *catalog.Catalog) *Profiler {
	return &Profiler{fetcher: f, catalog: c}
}

// IndicatorSummary is the latest value and full series of one package
// indicator.
type IndicatorSummary struct {
	Key    string                `json:"key"`
	Code   string                `json:"code"`
	Label  string                `json:"label"`
	Latest *model.Point          `json:"latest,omitempty"`
	Series model.IndicatorSeries `json:"series"`
}

// PackageView is one analysis package for one country.
type PackageView struct {
	Package    string             `json:"package"`
	Label      string             `json:"label"`
	Country    string             `json:"country"`
	Indicators []IndicatorSummary `json:"indicators"`
	// Missing lists indicator keys without data.
	Missing []string `json:"missing,omitempty"`
}

func (p *Profiler) series(ctx context.Context, country, code string, span model.Span) model.IndicatorSeries {
	recs := p.fetcher.Fetch(ctx, model.Query{Countries: []string{country}, Indicator: code, Span: span})
	s := model.SeriesFromRecords(code, recs)
	if s.CountryCode == "" {
		s.CountryCode = country
	}
	return s
}

// Package fetches every indicator of pkg for country. It fails with
// model.ErrNoData only when no indicator has data.
func (p *Profiler) Package(ctx context.Context, country string, pkg catalog.Package, cfg model.RequestConfig) (PackageView, error) {
	v := PackageView{
		Package: pkg.Key,
		Label:   p.catalog.Label(cfg.Locale, catalog.KindPackage, pkg.Key),
		Country: p.catalog.CountryName(cfg.Locale, country),
	}
	for _, key := range pkg.Indicators {
		ind, ok := p.catalog.Indicator(key)
		if !ok {
			v.Missing = append(v.Missing, key)
			continue
		}
		s := p.series(ctx, country, ind.Code, cfg.Span)
		if s.Empty() {
			v.Missing = append(v.Missing, key)
			continue
		}
		sum := IndicatorSummary{
			Key:    key,
			Code:   ind.Code,
			Label:  p.catalog.Label(cfg.Locale, catalog.KindIndicator, key),
			Series: s,
		}
		if last, ok := s.Latest(); ok {
			sum.Latest = &last
		}
		v.Indicators = append(v.Indicators, sum)
	}
	if len(v.Indicators) == 0 {
		return v, fmt.Errorf("package %s for %s: %w", pkg.Key, country, model.ErrNoData)
	}
	return v, nil
}

// PopulationTrend is total and working-age population of one country.
type PopulationTrend struct {
	Total      model.IndicatorSeries `json:"total"`
	WorkingAge model.IndicatorSeries `json:"working_age"`
}

// Population fetches the population trend. Either series may be empty; both
// empty is model.ErrNoData.
func (p *Profiler) Population(ctx context.Context, country string, span model.Span) (PopulationTrend, error) {
	t := PopulationTrend{
		Total:      p.series(ctx, country, catalog.CodePopulation, span),
		WorkingAge: p.series(ctx, country, catalog.CodeWorkingAge, span),
	}
	if t.Total.Empty() && t.WorkingAge.Empty() {
		return t, fmt.Errorf("population for %s: %w", country, model.ErrNoData)
	}
	return t, nil
}

// GDPYear is the expenditure split of one year in current US$.
type GDPYear struct {
	Year        int     `json:"year"`
	Government  float64 `json:"government"`
	Investment  float64 `json:"investment"`
	Consumption float64 `json:"consumption"`
	NetExports  float64 `json:"net_exports"`
}

// GDPComposition returns the years for which every expenditure component
// (and both trade flows) is available.
func (p *Profiler) GDPComposition(ctx context.Context, country string, span model.Span) ([]GDPYear, error) {
	gov := p.series(ctx, country, catalog.CodeGovernmentSpending, span).ByYear()
	inv := p.series(ctx, country, catalog.CodeInvestment, span).ByYear()
	con := p.series(ctx, country, catalog.CodeConsumption, span).ByYear()
	exp := p.series(ctx, country, catalog.CodeExportsUSD, span).ByYear()
	imp := p.series(ctx, country, catalog.CodeImportsUSD, span).ByYear()

	var out []GDPYear
	for _, y := range sortedYears(gov) {
		i, ok1 := inv[y]
		c, ok2 := con[y]
		e, ok3 := exp[y]
		m, ok4 := imp[y]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		out = append(out, GDPYear{Year: y, Government: gov[y], Investment: i, Consumption: c, NetExports: e - m})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("gdp composition for %s: %w", country, model.ErrNoData)
	}
	return out, nil
}

// IndustryYear is the sector split of value added in percent of GDP.
type IndustryYear struct {
	Year        int     `json:"year"`
	Agriculture float64 `json:"agriculture"`
	Industry    float64 `json:"industry"`
	Services    float64 `json:"services"`
}

// IndustryComposition is the sector split and whether services were derived.
type IndustryComposition struct {
	Years           []IndustryYear `json:"years"`
	ServicesDerived bool           `json:"services_derived"`
}

// Industry returns the sector split. When the services series is entirely
// missing it is derived as 100 - agriculture - industry.
func (p *Profiler) Industry(ctx context.Context, country string, span model.Span) (IndustryComposition, error) {
	agr := p.series(ctx, country, catalog.CodeAgriculture, span).ByYear()
	ind := p.series(ctx, country, catalog.CodeIndustry, span).ByYear()
	srv := p.series(ctx, country, catalog.CodeServices, span).ByYear()

	out := IndustryComposition{ServicesDerived: len(srv) == 0}
	for _, y := range sortedYears(agr) {
		i, ok := ind[y]
		if !ok {
			continue
		}
		s, ok := srv[y]
		if out.ServicesDerived {
			s, ok = 100-agr[y]-i, true
		}
		if !ok {
			continue
		}
		out.Years = append(out.Years, IndustryYear{Year: y, Agriculture: agr[y], Industry: i, Services: s})
	}
	if len(out.Years) == 0 {
		return out, fmt.Errorf("industry composition for %s: %w", country, model.ErrNoData)
	}
	return out, nil
}

func sortedYears(m map[int]float64) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
