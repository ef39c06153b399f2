// Package derived computes synthetic indicators from fetched series.
package derived

import (
	"context"

	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
)

// WorkingAgePPPGDPName is the indicator name attached to derived records.
const WorkingAgePPPGDPName = "GDP, PPP per working-age person (current international $)"

// Fetcher serves synthetic indicator codes and delegates every other code
// to the wrapped fetcher.
type Fetcher struct {
	next model.Fetcher
}

// New wraps next.
func New(next model.Fetcher) *Fetcher {
	return &Fetcher{next: next}
}

// Fetch implements model.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, q model.Query) []model.IndicatorRecord {
	if q.Indicator != catalog.CodeWorkingAgePPPGDP {
		return f.next.Fetch(ctx, q)
	}

	gdp := f.next.Fetch(ctx, model.Query{Countries: q.Countries, Indicator: catalog.CodeGDPPPP, Span: q.Span})
	if len(gdp) == 0 {
		return nil
	}
	pop := f.next.Fetch(ctx, model.Query{Countries: q.Countries, Indicator: catalog.CodeWorkingAge, Span: q.Span})
	if len(pop) == 0 {
		return nil
	}
	return Ratio(gdp, pop, catalog.CodeWorkingAgePPPGDP, WorkingAgePPPGDPName)
}

type cell struct {
	code string
	year int
}

// Ratio divides num by den per (country, year). Pairs missing either side
// or with a zero denominator are dropped. Output is sorted like fetched
// records.
func Ratio(num, den []model.IndicatorRecord, code, name string) []model.IndicatorRecord {
	denominators := make(map[cell]float64, len(den))
	for _, r := range den {
		denominators[cell{r.CountryCode, r.Year}] = r.Value
	}

	out := make([]model.IndicatorRecord, 0, len(num))
	for _, r := range num {
		d, ok := denominators[cell{r.CountryCode, r.Year}]
		if !ok || d == 0 {
			continue
		}
		out = append(out, model.IndicatorRecord{
			Country:       r.Country,
			CountryCode:   r.CountryCode,
			CountryID:     r.CountryID,
			IndicatorCode: code,
			IndicatorName: name,
			Year:          r.Year,
			Value:         r.Value / d,
		})
	}
	if len(out) == 0 {
		return nil
	}
	model.SortRecords(out)
	return out
}
