package model

import "sort"

// Pivot is a year × country table. Cells[i][j] is the value of country j
// in Years[i], or nil when that country has no value for the year.
type Pivot struct {
	Countries []string     `json:"countries"`
	Names     []string     `json:"names"`
	Years     []int        `json:"years"`
	Cells     [][]*float64 `json:"cells"`
}

// NewPivot lays series out by year (ascending) and series order.
func NewPivot(series []IndicatorSeries) Pivot {
	p := Pivot{
		Countries: make([]string, len(series)),
		Names:     make([]string, len(series)),
	}
	yearSet := make(map[int]struct{})
	lookup := make([]map[int]float64, len(series))
	for j, s := range series {
		p.Countries[j] = s.CountryCode
		p.Names[j] = s.Country
		if p.Names[j] == "" {
			p.Names[j] = s.CountryCode
		}
		lookup[j] = s.ByYear()
		for y := range lookup[j] {
			yearSet[y] = struct{}{}
		}
	}
	for y := range yearSet {
		p.Years = append(p.Years, y)
	}
	sort.Ints(p.Years)

	p.Cells = make([][]*float64, len(p.Years))
	for i, y := range p.Years {
		row := make([]*float64, len(series))
		for j := range series {
			if v, ok := lookup[j][y]; ok {
				v := v
				row[j] = &v
			}
		}
		p.Cells[i] = row
	}
	return p
}
