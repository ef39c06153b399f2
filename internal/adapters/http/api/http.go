// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Configurer
	CatalogView(locale model.Locale) service.CatalogView
	Compare(ctx context.Context, cfg model.RequestConfig, indicator string, countries []string, group string) (service.CompareResult, error)
	Profile(ctx context.Context, cfg model.RequestConfig, country, pkg string) (service.ProfileResult, error)
	Composite(ctx context.Context, cfg model.RequestConfig, index string, countries []string, group, transform string) (service.RankResult, error)
	SDG(ctx context.Context, cfg model.RequestConfig, index string, countries []string, group, transform string) (service.RankResult, error)
	PCA(ctx context.Context, cfg model.RequestConfig, indicators, countries []string, group string, k int) (service.PCAView, error)
	Model(ctx context.Context, cfg model.RequestConfig, target string, features, countries []string, group, modelType string) (service.ModelView, error)
}

// Configurer validates the common lang/start/end parameters.
type Configurer interface {
	RequestConfig(lang string, start, end int) (model.RequestConfig, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	catalogHandler   *CatalogHandler
	compareHandler   *CompareHandler
	profileHandler   *ProfileHandler
	compositeHandler *RankingHandler
	sdgHandler       *RankingHandler
	analysisHandler  *AnalysisHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		catalogHandler:   NewCatalogHandler(deps),
		compareHandler:   NewCompareHandler(deps, log),
		profileHandler:   NewProfileHandler(deps, log),
		compositeHandler: NewRankingHandler(deps, deps.Composite, "composite", log),
		sdgHandler:       NewRankingHandler(deps, deps.SDG, "sdg", log),
		analysisHandler:  NewAnalysisHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	routes := []struct {
		pattern  string
		endpoint string
		handler  http.HandlerFunc
	}{
		{"GET /healthz", "healthz", s.healthHandler.HandleHealth},
		{"GET /stats", "stats", s.statsHandler.HandleStats},
		{"GET /api/catalog", "catalog", s.catalogHandler.HandleCatalog},

		{"GET /api/compare", "compare", s.compareHandler.HandleJSON},
		{"GET /charts/compare.png", "chart_compare", s.compareHandler.HandleChart},
		{"GET /export/compare.xlsx", "export_compare", s.compareHandler.HandleExport},

		{"GET /api/profile", "profile", s.profileHandler.HandleJSON},
		{"GET /charts/population.png", "chart_population", s.profileHandler.HandlePopulationChart},
		{"GET /charts/gdp-composition.png", "chart_gdp_composition", s.profileHandler.HandleGDPChart},
		{"GET /charts/industry.png", "chart_industry", s.profileHandler.HandleIndustryChart},

		{"GET /api/composite", "composite", s.compositeHandler.HandleJSON},
		{"GET /charts/composite.png", "chart_composite", s.compositeHandler.HandleChart},
		{"GET /export/composite.xlsx", "export_composite", s.compositeHandler.HandleExport},

		{"GET /api/sdg", "sdg", s.sdgHandler.HandleJSON},
		{"GET /charts/sdg.png", "chart_sdg", s.sdgHandler.HandleChart},
		{"GET /export/sdg.xlsx", "export_sdg", s.sdgHandler.HandleExport},

		{"GET /api/pca", "pca", s.analysisHandler.HandlePCA},
		{"GET /charts/pca.png", "chart_pca", s.analysisHandler.HandlePCAChart},
		{"GET /api/model", "model", s.analysisHandler.HandleModel},
		{"GET /charts/model.png", "chart_model", s.analysisHandler.HandleModelChart},
		{"GET /charts/importance.png", "chart_importance", s.analysisHandler.HandleImportanceChart},
	}
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, MetricsMiddleware(rt.handler, rt.endpoint))
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail classifies err and writes it. Server-side failures are logged.
func fail(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error(r.Context(), "request failed", logger.String("op", op), logger.Int("status", status), logger.Error(err))
	}
	writeError(w, status, code, err)
}

// writeBody renders into a buffer first so a render failure can still be
// reported as JSON.
func writeBody(w http.ResponseWriter, contentType string, headers map[string]string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func writePNG(w http.ResponseWriter, render func(io.Writer) error) error {
	return writeBody(w, "image/png", nil, render)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeXLSX(w http.ResponseWriter, filename string, render func(io.Writer) error) error {
	return writeBody(w, xlsxContentType, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	}, render)
}
