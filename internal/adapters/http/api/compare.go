package api

import (
	"context"
	"io"
	"net/http"

	"github.com/okian/wbdash/internal/adapters/render"
	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

// CompareDependencies defines the interface for multi-country comparison.
type CompareDependencies interface {
	Configurer
	Compare(ctx context.Context, cfg model.RequestConfig, indicator string, countries []string, group string) (service.CompareResult, error)
}

// CompareHandler serves the comparison as JSON, a line chart and a workbook.
type CompareHandler struct {
	deps CompareDependencies
	log  logger.Logger
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies, log logger.Logger) *CompareHandler {
	return &CompareHandler{deps: deps, log: log}
}

func (h *CompareHandler) load(r *http.Request) (model.RequestConfig, service.CompareResult, error) {
	cfg, err := requestConfig(h.deps, r)
	if err != nil {
		return cfg, service.CompareResult{}, err
	}
	q := r.URL.Query()
	res, err := h.deps.Compare(r.Context(), cfg, q.Get("indicator"), listParam(q, "countries"), q.Get("group"))
	return cfg, res, err
}

// HandleJSON handles GET /api/compare.
func (h *CompareHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	_, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleChart handles GET /charts/compare.png.
func (h *CompareHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare_chart"
	cfg, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	lines := make([]render.Line, len(res.Series))
	for i, s := range res.Series {
		lines[i] = render.Line{
			Name:      s.Country,
			Points:    s.Points,
			Highlight: catalog.IsHighlight(s.CountryCode),
			Dashed:    catalog.IsAggregate(s.CountryCode),
		}
	}
	labels := render.Labels{Title: res.Indicator.Label, X: tr(cfg.Locale, "年", "Year"), Y: res.Indicator.Label}
	if err := writePNG(w, func(out io.Writer) error { return render.LineChart(out, labels, lines) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}

// HandleExport handles GET /export/compare.xlsx.
func (h *CompareHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare_export"
	cfg, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	err = writeXLSX(w, "compare.xlsx", func(out io.Writer) error {
		return render.PivotWorkbook(out, res.Indicator.Label, tr(cfg.Locale, "年", "Year"), res.Pivot)
	})
	if err != nil {
		fail(w, r, h.log, op, err)
	}
}
