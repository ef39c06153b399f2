package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/wbdash/internal/adapters/render"
	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

// AnalysisDependencies defines the interface for PCA and supervised models.
type AnalysisDependencies interface {
	Configurer
	PCA(ctx context.Context, cfg model.RequestConfig, indicators, countries []string, group string, k int) (service.PCAView, error)
	Model(ctx context.Context, cfg model.RequestConfig, target string, features, countries []string, group, modelType string) (service.ModelView, error)
}

// AnalysisHandler serves PCA and model results and their charts.
type AnalysisHandler struct {
	deps AnalysisDependencies
	log  logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies, log logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{deps: deps, log: log}
}

func (h *AnalysisHandler) pca(r *http.Request) (model.RequestConfig, service.PCAView, error) {
	cfg, err := requestConfig(h.deps, r)
	if err != nil {
		return cfg, service.PCAView{}, err
	}
	q := r.URL.Query()
	k, err := intParam(q, "components")
	if err != nil {
		return cfg, service.PCAView{}, err
	}
	res, err := h.deps.PCA(r.Context(), cfg, listParam(q, "indicators"), listParam(q, "countries"), q.Get("group"), k)
	return cfg, res, err
}

func (h *AnalysisHandler) train(r *http.Request) (model.RequestConfig, service.ModelView, error) {
	cfg, err := requestConfig(h.deps, r)
	if err != nil {
		return cfg, service.ModelView{}, err
	}
	q := r.URL.Query()
	res, err := h.deps.Model(r.Context(), cfg, q.Get("target"), listParam(q, "features"), listParam(q, "countries"), q.Get("group"), q.Get("model"))
	return cfg, res, err
}

// HandlePCA handles GET /api/pca.
func (h *AnalysisHandler) HandlePCA(w http.ResponseWriter, r *http.Request) {
	_, res, err := h.pca(r)
	if err != nil {
		fail(w, r, h.log, "api.pca", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePCAChart handles GET /charts/pca.png: country mean scores on the
// first two components.
func (h *AnalysisHandler) HandlePCAChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.pca_chart"
	cfg, res, err := h.pca(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	points := make([]render.Point, len(res.Countries))
	for i, c := range res.Countries {
		points[i] = render.Point{Label: res.Names[i], X: c.Scores[0], Y: c.Scores[1], Highlight: catalog.IsHighlight(c.CountryCode)}
	}
	axis := func(i int) string {
		return fmt.Sprintf("PC%d (%.1f%%)", i+1, 100*res.ExplainedVarianceRatio[i])
	}
	labels := render.Labels{Title: tr(cfg.Locale, "主成分分析", "Principal components"), X: axis(0), Y: axis(1)}
	if err := writePNG(w, func(out io.Writer) error { return render.Scatter(out, labels, points, false) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}

// HandleModel handles GET /api/model.
func (h *AnalysisHandler) HandleModel(w http.ResponseWriter, r *http.Request) {
	_, res, err := h.train(r)
	if err != nil {
		fail(w, r, h.log, "api.model", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleModelChart handles GET /charts/model.png: predicted against actual
// on the held-out rows.
func (h *AnalysisHandler) HandleModelChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.model_chart"
	cfg, res, err := h.train(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	points := make([]render.Point, len(res.Predictions))
	for i, p := range res.Predictions {
		points[i] = render.Point{
			Label:     fmt.Sprintf("%s %d", p.CountryCode, p.Year),
			X:         p.Actual,
			Y:         p.Predicted,
			Highlight: catalog.IsHighlight(p.CountryCode),
		}
	}
	labels := render.Labels{
		Title: fmt.Sprintf("%s (R² %.3f)", res.TargetRef.Label, res.Metrics.R2),
		X:     tr(cfg.Locale, "実測値", "Actual"),
		Y:     tr(cfg.Locale, "予測値", "Predicted"),
	}
	if err := writePNG(w, func(out io.Writer) error { return render.Scatter(out, labels, points, true) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}

// HandleImportanceChart handles GET /charts/importance.png.
func (h *AnalysisHandler) HandleImportanceChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.importance_chart"
	cfg, res, err := h.train(r)
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	mags := res.Importance.Magnitudes()
	bars := make([]render.Bar, len(res.FeatureRef))
	for i, f := range res.FeatureRef {
		bars[i] = render.Bar{Label: f.Label}
		if i < len(mags) {
			bars[i].Value = mags[i]
		}
	}
	caption := tr(cfg.Locale, "特徴量重要度", "Feature importance")
	if res.Importance.Kind() == "linear" {
		caption = tr(cfg.Locale, "標準化係数の大きさ", "Standardized coefficient magnitude")
	}
	labels := render.Labels{Title: res.TargetRef.Label, Y: caption}
	if err := writePNG(w, func(out io.Writer) error { return render.BarChart(out, labels, bars) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}
