// Package model contains domain models passed between layers.
package model

import (
	"sort"
)

// IndicatorRecord is one non-null observation returned by the upstream
// provider for a (country, indicator, year).
type IndicatorRecord struct {
	Country       string  `json:"country" msgpack:"c"`
	CountryCode   string  `json:"country_code" msgpack:"cc"`
	CountryID     string  `json:"country_id" msgpack:"id"`
	IndicatorCode string  `json:"indicator_code" msgpack:"ic"`
	IndicatorName string  `json:"indicator" msgpack:"in"`
	Year          int     `json:"year" msgpack:"y"`
	Value         float64 `json:"value" msgpack:"v"`
}

// Matches reports whether the record belongs to the requested country
// code, which may be either the provider id or the ISO3 code.
func (r IndicatorRecord) Matches(code string) bool {
	return code != "" && (code == r.CountryCode || code == r.CountryID)
}

// SortRecords orders records by country name, then year.
func SortRecords(records []IndicatorRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Country != records[j].Country {
			return records[i].Country < records[j].Country
		}
		return records[i].Year < records[j].Year
	})
}

// Point is one year of a series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// IndicatorSeries holds the yearly values of one indicator for one country.
// Years are strictly increasing.
type IndicatorSeries struct {
	CountryCode   string  `json:"country_code"`
	Country       string  `json:"country"`
	IndicatorCode string  `json:"indicator_code"`
	Points        []Point `json:"points"`
}

// SeriesFromRecords builds a series from records that belong to one
// country. Points are ordered by year and the first record of a repeated
// year wins.
func SeriesFromRecords(indicator string, records []IndicatorRecord) IndicatorSeries {
	s := IndicatorSeries{IndicatorCode: indicator}
	if len(records) == 0 {
		return s
	}
	s.CountryCode = records[0].CountryCode
	s.Country = records[0].Country

	sorted := make([]IndicatorRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	s.Points = make([]Point, 0, len(sorted))
	for _, r := range sorted {
		if n := len(s.Points); n > 0 && s.Points[n-1].Year == r.Year {
			continue
		}
		s.Points = append(s.Points, Point{Year: r.Year, Value: r.Value})
	}
	return s
}

// GroupByCountry splits a batched result into one series per country code,
// keeping the order in which codes first appear.
func GroupByCountry(indicator string, records []IndicatorRecord) []IndicatorSeries {
	var order []string
	byCode := make(map[string][]IndicatorRecord)
	for _, r := range records {
		if _, ok := byCode[r.CountryCode]; !ok {
			order = append(order, r.CountryCode)
		}
		byCode[r.CountryCode] = append(byCode[r.CountryCode], r)
	}
	out := make([]IndicatorSeries, 0, len(order))
	for _, code := range order {
		out = append(out, SeriesFromRecords(indicator, byCode[code]))
	}
	return out
}

// Empty reports whether the series has no points.
func (s IndicatorSeries) Empty() bool { return len(s.Points) == 0 }

// Mean returns the arithmetic mean of the points and false when empty.
func (s IndicatorSeries) Mean() (float64, bool) {
	if len(s.Points) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range s.Points {
		sum += p.Value
	}
	return sum / float64(len(s.Points)), true
}

// Latest returns the most recent point.
func (s IndicatorSeries) Latest() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// ByYear indexes the points by year.
func (s IndicatorSeries) ByYear() map[int]float64 {
	m := make(map[int]float64, len(s.Points))
	for _, p := range s.Points {
		m[p.Year] = p.Value
	}
	return m
}
