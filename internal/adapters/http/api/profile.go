package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/wbdash/internal/adapters/render"
	service "github.com/okian/wbdash/internal/app"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/pkg/logger"
)

// ProfileDependencies defines the interface for single-country views.
type ProfileDependencies interface {
	Configurer
	Profile(ctx context.Context, cfg model.RequestConfig, country, pkg string) (service.ProfileResult, error)
}

// ProfileHandler serves the country profile and its charts.
type ProfileHandler struct {
	deps ProfileDependencies
	log  logger.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{deps: deps, log: log}
}

func (h *ProfileHandler) load(r *http.Request) (model.RequestConfig, service.ProfileResult, error) {
	cfg, err := requestConfig(h.deps, r)
	if err != nil {
		return cfg, service.ProfileResult{}, err
	}
	q := r.URL.Query()
	res, err := h.deps.Profile(r.Context(), cfg, q.Get("country"), q.Get("package"))
	return cfg, res, err
}

// HandleJSON handles GET /api/profile.
func (h *ProfileHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	_, res, err := h.load(r)
	if err != nil {
		fail(w, r, h.log, "api.profile", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePopulationChart handles GET /charts/population.png.
func (h *ProfileHandler) HandlePopulationChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.population_chart"
	cfg, res, err := h.load(r)
	if err == nil && res.Population == nil {
		err = fmt.Errorf("population for %s: %w", res.Country, model.ErrNoData)
	}
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	lines := []render.Line{
		{Name: tr(cfg.Locale, "総人口", "Total population"), Points: res.Population.Total.Points, Highlight: true},
		{Name: tr(cfg.Locale, "生産年齢人口 (15-64歳)", "Working age (15-64)"), Points: res.Population.WorkingAge.Points},
	}
	labels := render.Labels{
		Title: res.Name + tr(cfg.Locale, " 人口推移", " population"),
		X:     tr(cfg.Locale, "年", "Year"),
		Y:     tr(cfg.Locale, "人", "Persons"),
	}
	if err := writePNG(w, func(out io.Writer) error { return render.LineChart(out, labels, lines) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}

const billion = 1e9

// HandleGDPChart handles GET /charts/gdp-composition.png.
func (h *ProfileHandler) HandleGDPChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.gdp_chart"
	cfg, res, err := h.load(r)
	if err == nil && len(res.GDP) == 0 {
		err = fmt.Errorf("gdp composition for %s: %w", res.Country, model.ErrNoData)
	}
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	years := make([]string, len(res.GDP))
	gov := make([]float64, len(res.GDP))
	inv := make([]float64, len(res.GDP))
	con := make([]float64, len(res.GDP))
	nx := make([]float64, len(res.GDP))
	for i, g := range res.GDP {
		years[i] = strconv.Itoa(g.Year)
		gov[i], inv[i], con[i], nx[i] = g.Government/billion, g.Investment/billion, g.Consumption/billion, g.NetExports/billion
	}
	stacks := []render.Stack{
		{Name: tr(cfg.Locale, "政府支出", "Government"), Values: gov},
		{Name: tr(cfg.Locale, "投資", "Investment"), Values: inv},
		{Name: tr(cfg.Locale, "民間消費", "Consumption"), Values: con},
		{Name: tr(cfg.Locale, "純輸出", "Net exports"), Values: nx},
	}
	labels := render.Labels{
		Title: res.Name + tr(cfg.Locale, " GDP構成", " GDP composition"),
		X:     tr(cfg.Locale, "年", "Year"),
		Y:     tr(cfg.Locale, "十億米ドル", "Billion US$"),
	}
	if err := writePNG(w, func(out io.Writer) error { return render.StackedBars(out, labels, years, stacks) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}

// HandleIndustryChart handles GET /charts/industry.png.
func (h *ProfileHandler) HandleIndustryChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.industry_chart"
	cfg, res, err := h.load(r)
	if err == nil && res.Industry == nil {
		err = fmt.Errorf("industry composition for %s: %w", res.Country, model.ErrNoData)
	}
	if err != nil {
		fail(w, r, h.log, op, err)
		return
	}
	n := len(res.Industry.Years)
	years := make([]string, n)
	agr, ind, srv := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, y := range res.Industry.Years {
		years[i] = strconv.Itoa(y.Year)
		agr[i], ind[i], srv[i] = y.Agriculture, y.Industry, y.Services
	}
	services := tr(cfg.Locale, "サービス業", "Services")
	if res.Industry.ServicesDerived {
		services += tr(cfg.Locale, " (推計)", " (derived)")
	}
	stacks := []render.Stack{
		{Name: tr(cfg.Locale, "農業", "Agriculture"), Values: agr},
		{Name: tr(cfg.Locale, "工業", "Industry"), Values: ind},
		{Name: services, Values: srv},
	}
	labels := render.Labels{
		Title: res.Name + tr(cfg.Locale, " 産業構成", " industry composition"),
		X:     tr(cfg.Locale, "年", "Year"),
		Y:     tr(cfg.Locale, "GDP比 (%)", "% of GDP"),
	}
	if err := writePNG(w, func(out io.Writer) error { return render.StackedBars(out, labels, years, stacks) }); err != nil {
		fail(w, r, h.log, op, err)
	}
}
