package model

import (
	"context"
	"sort"
	"strings"
)

// Query identifies one upstream request: a country set, an indicator and a
// year range.
type Query struct {
	Countries []string
	Indicator string
	Span      Span
}

// Key renders the cache key of q. Country order does not matter.
func (q Query) Key() string {
	codes := make([]string, len(q.Countries))
	copy(codes, q.Countries)
	sort.Strings(codes)
	return strings.Join(codes, ";") + "|" + q.Indicator + "|" + q.Span.String()
}

// Fetcher retrieves indicator records. An empty result means the provider
// had nothing usable; implementations never return errors for that case.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) []IndicatorRecord
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, q Query) []IndicatorRecord

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, q Query) []IndicatorRecord { return f(ctx, q) }
