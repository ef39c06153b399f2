// Package assemble joins per-country indicator series into country×year
// feature tables.
package assemble

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/metrics"
)

// Assembler builds feature tables from a fetcher.
type Assembler struct {
	fetcher model.Fetcher
}

// New creates an assembler.
func New(f model.Fetcher) *Assembler {
	return &Assembler{fetcher: f}
}

// Assemble returns one row per (country, year) where every indicator has a
// value. Rows follow the input country order, then ascending year.
func (a *Assembler) Assemble(ctx context.Context, countries, indicators []string, span model.Span) []model.FeatureRow {
	return a.join(ctx, countries, indicators, "", span)
}

// AssembleSupervised is Assemble with target joined as an extra required
// column carried in FeatureRow.Target.
func (a *Assembler) AssembleSupervised(ctx context.Context, countries, features []string, target string, span model.Span) []model.FeatureRow {
	return a.join(ctx, countries, features, target, span)
}

func (a *Assembler) join(ctx context.Context, countries, indicators []string, target string, span model.Span) []model.FeatureRow {
	columns := lo.Uniq(indicators)
	if len(countries) == 0 || len(columns) == 0 {
		metrics.RecordFeatureRows(0)
		return nil
	}

	fetchList := columns
	if target != "" {
		fetchList = append(append([]string{}, columns...), target)
	}

	// values[indicator][country][year]
	values := make(map[string]map[string]map[int]float64, len(fetchList))
	for _, ind := range fetchList {
		if _, done := values[ind]; done {
			continue
		}
		recs := a.fetcher.Fetch(ctx, model.Query{Countries: countries, Indicator: ind, Span: span})
		values[ind] = byCountry(countries, ind, recs)
	}

	var rows []model.FeatureRow
	for _, c := range countries {
		for _, year := range commonYears(c, fetchList, values) {
			row := model.FeatureRow{CountryCode: c, Year: year, Values: make(map[string]float64, len(columns))}
			for _, ind := range columns {
				row.Values[ind] = values[ind][c][year]
			}
			if target != "" {
				v := values[target][c][year]
				row.Target = &v
			}
			rows = append(rows, row)
		}
	}
	metrics.RecordFeatureRows(len(rows))
	return rows
}

// byCountry indexes records under the requested code they match.
func byCountry(countries []string, indicator string, recs []model.IndicatorRecord) map[string]map[int]float64 {
	out := make(map[string]map[int]float64, len(countries))
	for _, c := range countries {
		matched := lo.Filter(recs, func(r model.IndicatorRecord, _ int) bool { return r.Matches(c) })
		if len(matched) == 0 {
			continue
		}
		out[c] = model.SeriesFromRecords(indicator, matched).ByYear()
	}
	return out
}

func commonYears(country string, indicators []string, values map[string]map[string]map[int]float64) []int {
	first, ok := values[indicators[0]][country]
	if !ok {
		return nil
	}
	var years []int
	for y := range first {
		inAll := true
		for _, ind := range indicators[1:] {
			if _, ok := values[ind][country][y]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}
