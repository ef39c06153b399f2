// Package composite evaluates weighted composite indices per country and
// ranks a cohort.
package composite

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
	"github.com/okian/wbdash/pkg/metrics"
)

// Namer supplies a localized country name when no fetched record carries one.
type Namer interface {
	CountryName(locale model.Locale, code string) string
}

// DefaultWorkers bounds concurrent country evaluations in Rank.
const DefaultWorkers = 4

// Engine evaluates index definitions against a fetcher.
type Engine struct {
	fetcher model.Fetcher
	namer   Namer
	log     logger.Logger
	workers int
}

// New creates an engine.
func New(f model.Fetcher, opts ...Option) *Engine {
	e := &Engine{fetcher: f, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Named("composite")
	}
	return e
}

// Observation is the mean of one component for one country.
type Observation struct {
	Mean    float64
	Present bool
}

// Result is the combined value of one country.
type Result struct {
	Value   float64
	Used    []string
	Weights []float64
}

// Combine applies directions, drops absent components and re-normalizes the
// remaining weights to sum to 1. obs is aligned with def.Components.
// It reports false when every component is absent.
func Combine(def model.IndexDefinition, obs []Observation) (Result, bool) {
	var res Result
	var total float64
	values := make([]float64, 0, len(def.Components))
	raw := make([]float64, 0, len(def.Components))

	for i, c := range def.Components {
		if i >= len(obs) || !obs[i].Present {
			continue
		}
		v := obs[i].Mean
		if c.Direction == model.LowerIsBetter {
			v = -v
		}
		values = append(values, v)
		raw = append(raw, c.Weight)
		res.Used = append(res.Used, c.IndicatorCode)
		total += c.Weight
	}
	if len(values) == 0 {
		return Result{}, false
	}

	res.Weights = make([]float64, len(values))
	if total <= 0 {
		for i, v := range values {
			res.Weights[i] = 1 / float64(len(values))
			res.Value += v
		}
		res.Value /= float64(len(values))
		return res, true
	}
	for i, v := range values {
		w := raw[i] / total
		res.Weights[i] = w
		res.Value += w * v
	}
	return res, true
}

// evaluation carries the combined value and the provider's country name.
type evaluation struct {
	Result
	name string
}

func (e *Engine) evaluate(ctx context.Context, def model.IndexDefinition, country string, span model.Span) (evaluation, bool) {
	obs := make([]Observation, len(def.Components))
	var name string
	for i, c := range def.Components {
		recs := e.fetcher.Fetch(ctx, model.Query{Countries: []string{country}, Indicator: c.IndicatorCode, Span: span})
		if len(recs) == 0 {
			continue
		}
		if name == "" {
			name = recs[0].Country
		}
		var sum float64
		for _, r := range recs {
			sum += r.Value
		}
		obs[i] = Observation{Mean: sum / float64(len(recs)), Present: true}
	}
	res, ok := Combine(def, obs)
	if !ok {
		return evaluation{}, false
	}
	return evaluation{Result: res, name: name}, true
}

// Evaluate computes the composite value of def for one country over span.
// The bool is false when no component has data.
func (e *Engine) Evaluate(ctx context.Context, def model.IndexDefinition, country string, span model.Span) (float64, bool) {
	ev, ok := e.evaluate(ctx, def, country, span)
	return ev.Value, ok
}

// Ranking is a cohort ordered by display value, highest first.
type Ranking struct {
	Index     model.IndexDefinition `json:"index"`
	Transform model.Transform       `json:"transform"`
	Scores    []model.CountryScore  `json:"scores"`
	// Omitted lists countries without any component data, in input order.
	Omitted []string `json:"omitted,omitempty"`
}

// Rank evaluates def for every country, omits absent ones, applies the
// display transform across the cohort and sorts descending. Ties keep
// input order.
func (e *Engine) Rank(ctx context.Context, def model.IndexDefinition, countries []string, cfg model.RequestConfig, transform model.Transform) (Ranking, error) {
	start := time.Now()
	r, err := e.rank(ctx, def, countries, cfg, transform)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RecordAnalysis("composite", outcome, float64(time.Since(start).Milliseconds()))
	return r, err
}

func (e *Engine) rank(ctx context.Context, def model.IndexDefinition, countries []string, cfg model.RequestConfig, transform model.Transform) (Ranking, error) {
	if err := def.Validate(); err != nil {
		return Ranking{}, fmt.Errorf("rank %s: %w", def.Key, err)
	}

	evals, found := e.evaluateAll(ctx, def, countries, cfg.Span)
	if err := ctx.Err(); err != nil {
		return Ranking{}, fmt.Errorf("rank %s: %w", def.Key, err)
	}

	out := Ranking{Index: def, Transform: transform}
	for i, code := range countries {
		ev := evals[i]
		if !found[i] {
			out.Omitted = append(out.Omitted, code)
			continue
		}
		out.Scores = append(out.Scores, model.CountryScore{
			CountryCode: code,
			DisplayName: e.displayName(cfg.Locale, code, ev.name),
			Raw:         ev.Value,
			Used:        ev.Used,
			Weights:     ev.Weights,
		})
	}
	if len(out.Scores) == 0 {
		return Ranking{}, fmt.Errorf("rank %s: %w", def.Key, model.ErrNoData)
	}

	raw := make([]float64, len(out.Scores))
	for i, s := range out.Scores {
		raw[i] = s.Raw
	}
	display, err := Apply(transform, raw)
	if err != nil {
		return Ranking{}, fmt.Errorf("rank %s: %w", def.Key, err)
	}
	for i := range out.Scores {
		out.Scores[i].Display = display[i]
	}
	sort.SliceStable(out.Scores, func(i, j int) bool { return out.Scores[i].Display > out.Scores[j].Display })

	metrics.RecordCountriesScored(len(out.Scores))
	if len(out.Omitted) > 0 {
		e.log.Debug(ctx, "countries without data omitted from ranking",
			logger.String("index", def.Key),
			logger.Strings("omitted", out.Omitted),
		)
	}
	return out, nil
}

// evaluateAll fans countries out to a bounded pool. Results are aligned
// with countries.
func (e *Engine) evaluateAll(ctx context.Context, def model.IndexDefinition, countries []string, span model.Span) ([]evaluation, []bool) {
	evals := make([]evaluation, len(countries))
	found := make([]bool, len(countries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(max(e.workers, 1), max(len(countries), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				evals[i], found[i] = e.evaluate(ctx, def, countries[i], span)
			}
		}()
	}

feed:
	for i := range countries {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return evals, found
}

func (e *Engine) displayName(locale model.Locale, code, fetched string) string {
	if fetched != "" {
		return fetched
	}
	if e.namer != nil {
		if n := e.namer.CountryName(locale, code); n != "" {
			return n
		}
	}
	return code
}
