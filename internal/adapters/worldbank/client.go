// Package worldbank fetches indicator observations from the World Bank API v2.
package worldbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
	"github.com/okian/wbdash/pkg/metrics"
)

// Defaults.
const (
	DefaultBaseURL  = "https://api.worldbank.org/v2"
	DefaultTimeout  = 30 * time.Second
	DefaultPerPage  = 1000
	DefaultMaxPages = 5
)

// Client implements model.Fetcher against the World Bank API.
// It never returns errors: every failure is logged, counted and reported
// as an empty result.
type Client struct {
	baseURL  string
	http     *http.Client
	perPage  int
	maxPages int
	log      logger.Logger
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		http:     &http.Client{Timeout: DefaultTimeout},
		perPage:  DefaultPerPage,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("worldbank")
	}
	return c
}

// page is one decoded response page.
type page struct {
	pages   int
	records []model.IndicatorRecord
}

type metadata struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

type entry struct {
	Indicator struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"indicator"`
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
}

// failure classifies why a fetch produced nothing.
type failure struct {
	outcome string
	err     error
}

func (f *failure) Error() string { return f.outcome + ": " + f.err.Error() }
func (f *failure) Unwrap() error { return f.err }

var (
	errShortEnvelope = errors.New("response has fewer than two elements")
	errNoRecords     = errors.New("no non-null records")
)

// Fetch retrieves q.Indicator for every country of q in one batched request
// (plus follow-up pages). Records come back sorted by country name, then year.
func (c *Client) Fetch(ctx context.Context, q model.Query) []model.IndicatorRecord {
	start := time.Now()
	recs, err := c.fetchAll(ctx, q)
	elapsed := float64(time.Since(start).Milliseconds())

	if err != nil {
		outcome := metrics.OutcomeTransport
		var f *failure
		if errors.As(err, &f) {
			outcome = f.outcome
		}
		metrics.RecordUpstreamFetch(outcome, elapsed)
		metrics.RecordErrorByComponent("worldbank", outcome)
		c.log.Warn(ctx, "indicator fetch returned no data",
			logger.String("indicator", q.Indicator),
			logger.Strings("countries", q.Countries),
			logger.String("date", q.Span.String()),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		return nil
	}

	metrics.RecordUpstreamFetch(metrics.OutcomeOK, elapsed)
	metrics.RecordUpstreamRecords(len(recs))
	model.SortRecords(recs)
	c.log.Debug(ctx, "indicator fetched",
		logger.String("indicator", q.Indicator),
		logger.Int("records", len(recs)),
		logger.Float64("latency_ms", elapsed),
	)
	return recs
}

func (c *Client) fetchAll(ctx context.Context, q model.Query) ([]model.IndicatorRecord, error) {
	if len(q.Countries) == 0 || q.Indicator == "" {
		return nil, &failure{outcome: metrics.OutcomeEmpty, err: errors.New("empty query")}
	}

	first, err := c.fetchPage(ctx, q, 1)
	if err != nil {
		return nil, err
	}
	recs := first.records
	last := first.pages
	if last > c.maxPages {
		c.log.Warn(ctx, "result truncated to page limit",
			logger.String("indicator", q.Indicator),
			logger.Int("pages", last),
			logger.Int("max_pages", c.maxPages),
		)
		last = c.maxPages
	}
	for n := 2; n <= last; n++ {
		p, err := c.fetchPage(ctx, q, n)
		if err != nil {
			return nil, err
		}
		recs = append(recs, p.records...)
	}

	if len(recs) == 0 {
		return nil, &failure{outcome: metrics.OutcomeEmpty, err: errNoRecords}
	}
	return recs, nil
}

// URL builds the request URL for one page of q.
func (c *Client) URL(q model.Query, pageNo int) string {
	v := url.Values{}
	v.Set("date", q.Span.String())
	v.Set("format", "json")
	v.Set("per_page", strconv.Itoa(c.perPage))
	if pageNo > 1 {
		v.Set("page", strconv.Itoa(pageNo))
	}
	return fmt.Sprintf("%s/countries/%s/indicators/%s?%s",
		strings.TrimRight(c.baseURL, "/"),
		strings.Join(lo.Map(q.Countries, func(c string, _ int) string { return url.PathEscape(c) }), ";"),
		url.PathEscape(q.Indicator),
		// Keep the "S:E" date range readable.
		strings.ReplaceAll(v.Encode(), "%3A", ":"),
	)
}

func (c *Client) fetchPage(ctx context.Context, q model.Query, pageNo int) (page, error) {
	metrics.RecordUpstreamPage()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(q, pageNo), http.NoBody)
	if err != nil {
		return page{}, &failure{outcome: metrics.OutcomeTransport, err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return page{}, &failure{outcome: metrics.OutcomeTransport, err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return page{}, &failure{outcome: metrics.OutcomeStatus, err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	p, err := decodePage(resp.Body)
	if err != nil {
		return page{}, &failure{outcome: metrics.OutcomeDecode, err: err}
	}
	return p, nil
}

// decodePage parses `[metadata, [entry, ...]]`, dropping null values.
func decodePage(r io.Reader) (page, error) {
	var envelope []json.RawMessage
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return page{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope) < 2 {
		return page{}, errShortEnvelope
	}

	var meta metadata
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return page{}, fmt.Errorf("decode metadata: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(envelope[1], &entries); err != nil {
		return page{}, fmt.Errorf("decode records: %w", err)
	}

	out := page{pages: meta.Pages, records: make([]model.IndicatorRecord, 0, len(entries))}
	for _, e := range entries {
		if e.Value == nil {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(e.Date))
		if err != nil {
			return page{}, fmt.Errorf("parse date %q: %w", e.Date, err)
		}
		code := e.CountryISO3
		if code == "" {
			code = e.Country.ID
		}
		out.records = append(out.records, model.IndicatorRecord{
			Country:       e.Country.Value,
			CountryCode:   code,
			CountryID:     e.Country.ID,
			IndicatorCode: e.Indicator.ID,
			IndicatorName: e.Indicator.Value,
			Year:          year,
			Value:         *e.Value,
		})
	}
	return out, nil
}
