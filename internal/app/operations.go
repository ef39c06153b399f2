package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/okian/wbdash/internal/domain/analytics"
	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/internal/domain/profile"
	"github.com/okian/wbdash/internal/domain/types"
	"github.com/okian/wbdash/pkg/logger"
)

// DefaultPCAComponents is the number of components shown when the request
// names none.
const DefaultPCAComponents = 2

// IndicatorRef is a resolved indicator with its localized label.
type IndicatorRef struct {
	Key   string `json:"key"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

func (s *Service) ref(locale model.Locale, ind catalog.Indicator) IndicatorRef {
	label := s.catalog.Label(locale, catalog.KindIndicator, ind.Key)
	if label == ind.Key {
		label = s.catalog.IndicatorLabel(locale, ind.Code)
	}
	return IndicatorRef{Key: ind.Key, Code: ind.Code, Label: label}
}

func (s *Service) countries(codes []string, group string, warnings *[]string) []string {
	out, rejected, fallback := s.catalog.ResolveCountries(codes, group)
	for _, code := range rejected {
		*warnings = append(*warnings, fmt.Sprintf("ignored invalid country code %q", code))
	}
	if fallback && group != "" {
		*warnings = append(*warnings, fmt.Sprintf("unknown group %q, using %s", group, catalog.DefaultGroup))
	}
	return out
}

// CompareResult is one indicator across several countries.
type CompareResult struct {
	Indicator IndicatorRef            `json:"indicator"`
	Span      model.Span              `json:"span"`
	Series    []model.IndicatorSeries `json:"series"`
	Pivot     model.Pivot             `json:"pivot"`
	// Missing lists requested countries without data.
	Missing  []string `json:"missing,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Compare fetches one indicator for the countries (or the group members)
// in a single batched request and lays the result out as a pivot table.
func (s *Service) Compare(ctx context.Context, cfg model.RequestConfig, indicator string, codes []string, group string) (CompareResult, error) {
	if err := s.ready(); err != nil {
		return CompareResult{}, err
	}
	var warnings []string
	ind, fallback := s.catalog.ResolveIndicator(indicator)
	if fallback && indicator != "" {
		warnings = append(warnings, fmt.Sprintf("unknown indicator %q, using %s", indicator, ind.Key))
	}
	countries := s.countries(codes, group, &warnings)

	recs := s.fetcher.Fetch(ctx, model.Query{Countries: countries, Indicator: ind.Code, Span: cfg.Span})
	res := CompareResult{Indicator: s.ref(cfg.Locale, ind), Span: cfg.Span, Warnings: warnings}
	for _, code := range countries {
		own := lo.Filter(recs, func(r model.IndicatorRecord, _ int) bool { return r.Matches(code) })
		series := model.SeriesFromRecords(ind.Code, own)
		if series.Empty() {
			res.Missing = append(res.Missing, code)
			continue
		}
		series.CountryCode = code
		if name := s.catalog.CountryName(cfg.Locale, code); name != code {
			series.Country = name
		}
		res.Series = append(res.Series, series)
	}
	if len(res.Series) == 0 {
		return res, fmt.Errorf("compare %s: %w", ind.Code, model.ErrNoData)
	}
	if len(res.Missing) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no data for %d of %d countries", len(res.Missing), len(countries)))
	}
	res.Pivot = model.NewPivot(res.Series)
	return res, nil
}

// ProfileResult is the single-country view. Each widget may be absent on
// its own; absences are listed in Warnings.
type ProfileResult struct {
	Country    string                       `json:"country"`
	Name       string                       `json:"name"`
	Span       model.Span                   `json:"span"`
	Package    *profile.PackageView         `json:"package,omitempty"`
	Population *profile.PopulationTrend     `json:"population,omitempty"`
	GDP        []profile.GDPYear            `json:"gdp_composition,omitempty"`
	Industry   *profile.IndustryComposition `json:"industry,omitempty"`
	Warnings   []string                     `json:"warnings,omitempty"`
}

// Profile builds every single-country widget. It fails with model.ErrNoData
// only when all of them are absent.
func (s *Service) Profile(ctx context.Context, cfg model.RequestConfig, country, pkgKey string) (ProfileResult, error) {
	if err := s.ready(); err != nil {
		return ProfileResult{}, err
	}
	if country == "" {
		country = catalog.HighlightCountry
	}
	res := ProfileResult{Country: country, Name: s.catalog.CountryName(cfg.Locale, country), Span: cfg.Span}
	pkg, fallback := s.catalog.ResolvePackage(pkgKey)
	if fallback && pkgKey != "" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unknown package %q, using %s", pkgKey, pkg.Key))
	}

	absent := func(widget string, err error) bool {
		if err == nil {
			return false
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", widget, err))
		return true
	}

	if v, err := s.profiler.Package(ctx, country, pkg, cfg); !absent("package", err) {
		res.Package = &v
	}
	if t, err := s.profiler.Population(ctx, country, cfg.Span); !absent("population", err) {
		res.Population = &t
	}
	if g, err := s.profiler.GDPComposition(ctx, country, cfg.Span); !absent("gdp_composition", err) {
		res.GDP = g
	}
	if ic, err := s.profiler.Industry(ctx, country, cfg.Span); !absent("industry", err) {
		res.Industry = &ic
	}

	if res.Package == nil && res.Population == nil && res.GDP == nil && res.Industry == nil {
		return res, fmt.Errorf("profile %s: %w", country, model.ErrNoData)
	}
	return res, nil
}

// ComponentView is one index component with its localized label.
type ComponentView struct {
	Code      string          `json:"code"`
	Label     string          `json:"label"`
	Weight    float64         `json:"weight"`
	Direction model.Direction `json:"direction"`
}

// RankResult is a ranked cohort of one index.
type RankResult struct {
	Family     model.Family    `json:"family"`
	Index      string          `json:"index"`
	Label      string          `json:"label"`
	Goal       string          `json:"goal,omitempty"`
	Transform  model.Transform `json:"transform"`
	Span       model.Span      `json:"span"`
	Components []ComponentView `json:"components"`
	Entries    []types.Entry   `json:"entries"`
	Omitted    []string        `json:"omitted,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// Rank scores the group with the index of family named by key.
func (s *Service) Rank(ctx context.Context, cfg model.RequestConfig, family model.Family, key string, codes []string, group, transform string) (RankResult, error) {
	if err := s.ready(); err != nil {
		return RankResult{}, err
	}
	t, err := model.ParseTransform(transform)
	if err != nil {
		return RankResult{}, err
	}
	var warnings []string
	def, fallback := s.catalog.ResolveIndex(family, key)
	if fallback && key != "" {
		warnings = append(warnings, fmt.Sprintf("unknown index %q, using the default indicator", key))
	}
	countries := s.countries(codes, group, &warnings)

	r, err := s.engine.Rank(ctx, def, countries, cfg, t)
	if err != nil {
		return RankResult{}, err
	}
	res := RankResult{
		Family:    family,
		Index:     def.Key,
		Label:     s.catalog.Label(cfg.Locale, catalog.KindIndex, def.Key),
		Goal:      def.Goal,
		Transform: r.Transform,
		Span:      cfg.Span,
		Entries:   types.Entries(r.Scores, catalog.IsHighlight),
		Omitted:   r.Omitted,
		Warnings:  warnings,
	}
	for _, c := range def.Components {
		res.Components = append(res.Components, ComponentView{
			Code:      c.IndicatorCode,
			Label:     s.catalog.IndicatorLabel(cfg.Locale, c.IndicatorCode),
			Weight:    c.Weight,
			Direction: c.Direction,
		})
	}
	if len(r.Omitted) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d countries without data omitted", len(r.Omitted)))
	}
	return res, nil
}

// Composite ranks with a composite index.
func (s *Service) Composite(ctx context.Context, cfg model.RequestConfig, key string, codes []string, group, transform string) (RankResult, error) {
	return s.Rank(ctx, cfg, model.FamilyComposite, key, codes, group, transform)
}

// SDG ranks with an SDG index.
func (s *Service) SDG(ctx context.Context, cfg model.RequestConfig, key string, codes []string, group, transform string) (RankResult, error) {
	return s.Rank(ctx, cfg, model.FamilySDG, key, codes, group, transform)
}

// PCAView is a PCA result with localized feature labels.
type PCAView struct {
	analytics.PCAResult
	Indicators []IndicatorRef `json:"indicators"`
	Names      []string       `json:"names"`
	Span       model.Span     `json:"span"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// PCA projects the inner-joined feature table of the indicators on its
// first k components. Empty indicators select the catalog default.
func (s *Service) PCA(ctx context.Context, cfg model.RequestConfig, indicators, codes []string, group string, k int) (PCAView, error) {
	if err := s.ready(); err != nil {
		return PCAView{}, err
	}
	var warnings []string
	keys := nonEmpty(indicators)
	if len(keys) == 0 {
		keys = s.catalog.DefaultPCAIndicators()
	}
	inds, fallbacks := s.catalog.ResolveIndicators(keys)
	for _, fb := range fallbacks {
		warnings = append(warnings, fmt.Sprintf("unknown indicator %q, using %s", fb, catalog.DefaultIndicator))
	}
	if len(inds) < analytics.MinPCAComponents {
		return PCAView{}, fmt.Errorf("pca: %w: at least %d distinct indicators are required", model.ErrBadRequest, analytics.MinPCAComponents)
	}
	if k == 0 {
		k = DefaultPCAComponents
	}
	countries := s.countries(codes, group, &warnings)

	codesOf := lo.Map(inds, func(ind catalog.Indicator, _ int) string { return ind.Code })
	ds := model.Dataset{Features: codesOf, Rows: s.assembler.Assemble(ctx, countries, codesOf, cfg.Span)}
	if len(ds.Rows) == 0 {
		return PCAView{}, fmt.Errorf("pca: %w", model.ErrNoData)
	}
	res, err := analytics.PCA(ds, k)
	if err != nil {
		return PCAView{}, err
	}
	v := PCAView{PCAResult: res, Span: cfg.Span, Warnings: warnings}
	for _, ind := range inds {
		v.Indicators = append(v.Indicators, s.ref(cfg.Locale, ind))
	}
	for _, c := range res.Countries {
		v.Names = append(v.Names, s.catalog.CountryName(cfg.Locale, c.CountryCode))
	}
	return v, nil
}

// ModelView is a trained model with localized labels.
type ModelView struct {
	analytics.ModelResult
	TargetRef  IndicatorRef   `json:"target_indicator"`
	FeatureRef []IndicatorRef `json:"feature_indicators"`
	Span       model.Span     `json:"span"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// Model trains modelType to predict target from features over the
// inner-joined table. The target is removed from the features when named
// among them.
// Identical requests share one training run and its result.
func (s *Service) Model(ctx context.Context, cfg model.RequestConfig, target string, features, codes []string, group, modelType string) (ModelView, error) {
	if err := s.ready(); err != nil {
		return ModelView{}, err
	}
	key := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s", cfg.Locale, cfg.Span, target,
		strings.Join(features, ","), strings.Join(codes, ","), group, modelType)
	return s.models.Do(key, func() (ModelView, error) {
		return s.train(ctx, cfg, target, features, codes, group, modelType)
	})
}

func (s *Service) train(ctx context.Context, cfg model.RequestConfig, target string, features, codes []string, group, modelType string) (ModelView, error) {
	mt, err := analytics.ParseModelType(modelType)
	if err != nil {
		return ModelView{}, err
	}
	var warnings []string
	if target == "" {
		target = catalog.DefaultTarget
	}
	tgt, fallback := s.catalog.ResolveIndicator(target)
	if fallback {
		warnings = append(warnings, fmt.Sprintf("unknown target %q, using %s", target, tgt.Key))
	}
	keys := nonEmpty(features)
	if len(keys) == 0 {
		keys = s.catalog.DefaultFeatures()
	}
	inds, fallbacks := s.catalog.ResolveIndicators(keys)
	for _, fb := range fallbacks {
		warnings = append(warnings, fmt.Sprintf("unknown feature %q, using %s", fb, catalog.DefaultIndicator))
	}
	inds = lo.Reject(inds, func(ind catalog.Indicator, _ int) bool { return ind.Code == tgt.Code })
	if len(inds) == 0 {
		return ModelView{}, fmt.Errorf("model: %w: no features besides the target", model.ErrBadRequest)
	}
	countries := s.countries(codes, group, &warnings)

	codesOf := lo.Map(inds, func(ind catalog.Indicator, _ int) string { return ind.Code })
	ds := model.Dataset{
		Features: codesOf,
		Target:   tgt.Code,
		Rows:     s.assembler.AssembleSupervised(ctx, countries, codesOf, tgt.Code, cfg.Span),
	}
	if len(ds.Rows) == 0 {
		return ModelView{}, fmt.Errorf("model: %w", model.ErrNoData)
	}
	res, err := analytics.Train(ds, mt)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientSample) {
			s.logger.Debug(ctx, "model skipped", logger.String("target", tgt.Code), logger.Int("rows", len(ds.Rows)))
		}
		return ModelView{}, err
	}
	v := ModelView{ModelResult: res, TargetRef: s.ref(cfg.Locale, tgt), Span: cfg.Span, Warnings: warnings}
	for _, ind := range inds {
		v.FeatureRef = append(v.FeatureRef, s.ref(cfg.Locale, ind))
	}
	return v, nil
}

// Labeled is a catalog key with its localized label.
type Labeled struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// GroupView is a country group with localized labels.
type GroupView struct {
	Labeled
	Countries []Labeled `json:"countries"`
}

// IndexView is an index definition with localized labels.
type IndexView struct {
	Labeled
	Goal       string          `json:"goal,omitempty"`
	Components []ComponentView `json:"components"`
}

// CatalogView is everything a client needs to build its pickers.
type CatalogView struct {
	Locale     model.Locale      `json:"locale"`
	MinYear    int               `json:"min_year"`
	MaxYear    int               `json:"max_year"`
	Highlight  string            `json:"highlight"`
	Indicators []IndicatorRef    `json:"indicators"`
	Groups     []GroupView       `json:"groups"`
	Composite  []IndexView       `json:"composite_indices"`
	SDG        []IndexView       `json:"sdg_indices"`
	Packages   []Labeled         `json:"packages"`
	Targets    []Labeled         `json:"targets"`
	Models     []string          `json:"models"`
	Transforms []model.Transform `json:"transforms"`
	Defaults   map[string]any    `json:"defaults"`
}

// CatalogView localizes the catalog.
func (s *Service) CatalogView(locale model.Locale) CatalogView {
	c := s.catalog
	label := func(kind string) func(string, int) Labeled {
		return func(key string, _ int) Labeled { return Labeled{Key: key, Label: c.Label(locale, kind, key)} }
	}
	v := CatalogView{
		Locale:     locale,
		MinYear:    s.minYear,
		MaxYear:    s.maxYear,
		Highlight:  catalog.HighlightCountry,
		Indicators: lo.Map(c.Indicators(false), func(ind catalog.Indicator, _ int) IndicatorRef { return s.ref(locale, ind) }),
		Packages:   lo.Map(lo.Map(c.Packages(), func(p catalog.Package, _ int) string { return p.Key }), label(catalog.KindPackage)),
		Targets:    lo.Map(c.Targets(), label(catalog.KindIndicator)),
		Models:     lo.Map(analytics.ModelTypes, func(t analytics.ModelType, _ int) string { return string(t) }),
		Transforms: []model.Transform{model.TransformRaw, model.TransformZScore, model.TransformTScore},
		Defaults: map[string]any{
			"indicator":       catalog.DefaultIndicator,
			"group":           catalog.DefaultGroup,
			"package":         catalog.DefaultPackage,
			"composite_index": catalog.DefaultCompositeIndex,
			"sdg_index":       catalog.DefaultSDGIndex,
			"target":          catalog.DefaultTarget,
			"features":        c.DefaultFeatures(),
			"pca_indicators":  c.DefaultPCAIndicators(),
			"model":           string(analytics.ModelRandomForest),
		},
	}
	for _, g := range c.Groups() {
		v.Groups = append(v.Groups, GroupView{
			Labeled:   label(catalog.KindGroup)(g.Key, 0),
			Countries: lo.Map(g.Countries, label(catalog.KindCountry)),
		})
	}
	indexViews := func(defs []model.IndexDefinition) []IndexView {
		return lo.Map(defs, func(d model.IndexDefinition, _ int) IndexView {
			iv := IndexView{Labeled: label(catalog.KindIndex)(d.Key, 0), Goal: d.Goal}
			for _, comp := range d.Components {
				iv.Components = append(iv.Components, ComponentView{
					Code:      comp.IndicatorCode,
					Label:     c.IndicatorLabel(locale, comp.IndicatorCode),
					Weight:    comp.Weight,
					Direction: comp.Direction,
				})
			}
			return iv
		})
	}
	v.Composite = indexViews(c.Indices(model.FamilyComposite))
	v.SDG = indexViews(c.Indices(model.FamilySDG))
	return v
}

func nonEmpty(keys []string) []string {
	return lo.Compact(lo.Map(keys, func(k string, _ int) string { return strings.TrimSpace(k) }))
}
