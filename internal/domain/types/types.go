// Package types contains common types used across the application
package types

import "github.com/okian/wbdash/internal/domain/model"

// Entry represents a ranking row
type Entry struct {
	Rank        int      `json:"rank"`
	CountryCode string   `json:"country_code"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Raw         float64  `json:"raw"`
	Highlight   bool     `json:"highlight,omitempty"`
	Used        []string `json:"used"`
}

// Entries numbers ordered scores from 1. Equal display values share a rank.
func Entries(scores []model.CountryScore, highlight func(code string) bool) []Entry {
	out := make([]Entry, len(scores))
	for i, s := range scores {
		rank := i + 1
		if i > 0 && s.Display == scores[i-1].Display {
			rank = out[i-1].Rank
		}
		out[i] = Entry{
			Rank:        rank,
			CountryCode: s.CountryCode,
			Name:        s.DisplayName,
			Score:       s.Display,
			Raw:         s.Raw,
			Used:        s.Used,
		}
		if highlight != nil {
			out[i].Highlight = highlight(s.CountryCode)
		}
	}
	return out
}
