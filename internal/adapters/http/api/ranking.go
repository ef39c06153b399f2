package api

import (
	"context"
	"io"
	"net/http"

	"github.com/okian/wbdash/internal/adapters/render"
	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

// RankFunc ranks a cohort with one index family.
type RankFunc func(ctx context.Context, cfg model.RequestConfig, index string, countries []string, group, transform string) (service.RankResult, error)

// RankingHandler serves one index family as JSON, a bar chart and a workbook.
type RankingHandler struct {
	deps Configurer
	rank RankFunc
	name string
	log  logger.Logger
}

// NewRankingHandler creates a ranking handler; name prefixes exported files.
func NewRankingHandler(deps Configurer, rank RankFunc, name string, log logger.Logger) *RankingHandler {
	return &RankingHandler{deps: deps, rank: rank, name: name, log: log}
}

func (h *RankingHandler) load(r *http.Request) (model.RequestConfig, service.RankResult, error) {
	cfg, err := requestConfig(h.deps, r)
	if err != nil {
		return cfg, service.RankResult{}, err
	}
	q := r.URL.Query()
	res, err := h.rank(r.Context(), cfg, q.Get("index"), listParam(q, "countries"), q.Get("group"), q.Get("transform"))
	return cfg, res, err
}

// HandleJSON handles GET /api/{composite,sdg}.
func (h *RankingHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	_, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, "api."+h.name, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func scoreCaption(locale model.Locale, t model.Transform) string {
	switch t {
	case model.TransformZScore:
		return tr(locale, "Zスコア", "Z-score")
	case model.TransformTScore:
		return tr(locale, "偏差値", "T-score")
	}
	return tr(locale, "スコア", "Score")
}

// HandleChart handles GET /charts/{composite,sdg}.png.
func (h *RankingHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	op := "api." + h.name + "_chart"
	cfg, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	bars := make([]render.Bar, len(res.Entries))
	for i, e := range res.Entries {
		bars[i] = render.Bar{Label: e.Name, Value: e.Score, Highlight: e.Highlight}
	}
	labels := render.Labels{Title: res.Label, Y: scoreCaption(cfg.Locale, res.Transform)}
	if err := writePNG(w, func(out io.Writer) error { return render.BarChart(out, labels, bars) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}

// HandleExport handles GET /export/{composite,sdg}.xlsx.
func (h *RankingHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	op := "api." + h.name + "_export"
	cfg, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	headers := render.RankingHeaders{
		Rank:  tr(cfg.Locale, "順位", "Rank"),
		Code:  tr(cfg.Locale, "国コード", "Code"),
		Name:  tr(cfg.Locale, "国名", "Country"),
		Score: scoreCaption(cfg.Locale, res.Transform),
		Raw:   tr(cfg.Locale, "合成値", "Raw"),
	}
	err = writeXLSX(w, h.name+".xlsx", func(out io.Writer) error {
		return render.RankingWorkbook(out, res.Label, headers, res.Entries)
	})
	if err != nil {
		fail(w, r, h.log, op, err)
	}
}
