package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wbdash/pkg/logger"
)

func init() {
	_ = logger.Init()
	color.NoColor = true
}

// fakeService answers every probe path with a plausible body.
func fakeService(overrides map[string]http.HandlerFunc) *httptest.Server {
	js := func(v any) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_ = json.NewEncoder(w).Encode(v)
		}
	}
	raw := func(ct string, body []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", ct)
			_, _ = w.Write(body)
		}
	}
	png := raw("image/png", append(append([]byte{}, pngMagic...), 0, 0))
	ranking := js(map[string]any{
		"index":   "economic",
		"entries": []map[string]any{{"rank": 1, "country_code": "HN", "score": 6}},
	})
	routes := map[string]http.HandlerFunc{
		"/healthz": func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) },
		"/api/catalog": js(map[string]any{
			"locale":            "ja",
			"indicators":        []any{map[string]any{"key": "gdp"}},
			"composite_indices": []any{map[string]any{"key": "economic"}},
			"sdg_indices":       []any{},
		}),
		"/api/compare": js(map[string]any{
			"indicator": map[string]any{"code": "NY.GDP.MKTP.KD.ZG"},
			"series":    []any{map[string]any{}, map[string]any{}},
		}),
		"/charts/compare.png":    png,
		"/export/compare.xlsx":   raw("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK\x03\x04")),
		"/api/profile":           js(map[string]any{"country": "GT", "name": "Guatemala"}),
		"/api/composite":         ranking,
		"/charts/composite.png":  png,
		"/api/sdg":               ranking,
		"/api/pca":               js(map[string]any{"features": []string{"a", "b"}, "explained_variance_ratio": []float64{0.7, 0.3}}),
		"/api/model":             js(map[string]any{"model": "ridge", "train_size": 8, "test_size": 2, "metrics": map[string]any{"r2": 0.5}}),
		"/charts/importance.png": png,
	}
	for k, v := range overrides {
		routes[k] = v
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(requestIDHeader, r.Header.Get(requestIDHeader))
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func testConfig(url string) *Config {
	return &Config{
		BaseURL:   url,
		Lang:      "en",
		Start:     2010,
		End:       2020,
		Countries: []string{"GT", "HN"},
		Workers:   3,
		Timeout:   5 * time.Second,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a healthy service", t, func() {
		var seen []string
		srv := fakeService(map[string]http.HandlerFunc{
			"/api/profile": func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, r.URL.RawQuery)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"country":"GT","name":"Guatemala"}`))
			},
		})
		defer srv.Close()

		var out bytes.Buffer
		stats, err := Run(context.Background(), testConfig(srv.URL), &out)

		Convey("Then every probe passes and the table lists them", func() {
			So(err, ShouldBeNil)
			So(stats.Failed, ShouldEqual, 0)
			So(stats.Passed, ShouldEqual, len(Names()))
			So(stats.RunID, ShouldStartWith, "wbprobe-")
			So(out.String(), ShouldContainSubstring, "compare-export")
			So(out.String(), ShouldContainSubstring, "HN 6.00")
			So(out.String(), ShouldContainSubstring, "0 failed")
		})

		Convey("Then results keep catalogue order", func() {
			So(stats.Results[0].Name, ShouldEqual, "catalog")
			So(stats.Results[len(stats.Results)-1].Name, ShouldEqual, "importance-chart")
		})

		Convey("Then the profile probe sends a single country", func() {
			So(seen, ShouldHaveLength, 1)
			So(seen[0], ShouldContainSubstring, "country=GT")
			So(seen[0], ShouldNotContainSubstring, "countries=")
		})
	})

	Convey("Given a service whose ranking has no data", t, func() {
		srv := fakeService(map[string]http.HandlerFunc{
			"/api/sdg": func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"code":"no_data","message":"nothing"}`))
			},
		})
		defer srv.Close()

		var out bytes.Buffer
		stats, err := Run(context.Background(), testConfig(srv.URL), &out)

		Convey("Then the run fails and reports the error code", func() {
			So(errors.Is(err, ErrProbesFailed), ShouldBeTrue)
			So(stats.Failed, ShouldEqual, 1)
			So(out.String(), ShouldContainSubstring, "no_data")
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := fakeService(map[string]http.HandlerFunc{
			"/healthz": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		})
		defer srv.Close()

		_, err := Run(context.Background(), testConfig(srv.URL), &bytes.Buffer{})
		So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
	})

	Convey("Given a subset of probes", t, func() {
		srv := fakeService(nil)
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.Only = []string{"pca", "model", "nope"}
		stats, err := Run(context.Background(), cfg, &bytes.Buffer{})

		So(err, ShouldBeNil)
		So(stats.Results, ShouldHaveLength, 2)
	})
}

func TestChecks(t *testing.T) {
	Convey("Given binary checks", t, func() {
		check := checkMagic("image/png", pngMagic)

		Convey("A JSON body under a PNG path fails", func() {
			_, err := check(&response{status: 200, contentType: "application/json", body: []byte("{}")})
			So(errors.Is(err, ErrUnexpected), ShouldBeTrue)
		})

		Convey("A PNG body passes with its size", func() {
			detail, err := check(&response{status: 200, contentType: "image/png", body: pngMagic})
			So(err, ShouldBeNil)
			So(detail, ShouldEqual, "8 bytes")
		})
	})

	Convey("Given JSON checks", t, func() {
		Convey("An empty ranking fails", func() {
			_, err := checkRanking(&response{status: 200, contentType: "application/json", body: []byte(`{"entries":[]}`)})
			So(errors.Is(err, ErrUnexpected), ShouldBeTrue)
		})

		Convey("A plain-text error keeps its status", func() {
			_, err := checkPCA(&response{status: 500, contentType: "text/plain", body: []byte("boom")})
			So(err.Error(), ShouldContainSubstring, "status 500")
		})
	})

	Convey("Given the base query", t, func() {
		q := baseQuery(&Config{Lang: "ja", Countries: []string{"GT", "SV"}})
		So(q.Get("lang"), ShouldEqual, "ja")
		So(q.Get("countries"), ShouldEqual, "GT,SV")
		So(q.Has("start"), ShouldBeFalse)
		So(strings.Join(Names(), ","), ShouldStartWith, "catalog,compare")
	})
}
