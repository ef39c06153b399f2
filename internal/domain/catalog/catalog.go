// Package catalog holds the static indicator, country and index tables,
// keyed by stable internal keys, with a separate locale label table.
package catalog

import (
	"strings"

	"github.com/samber/lo"

	"github.com/okian/wbdash/internal/domain/model"
)

// Label kinds.
const (
	KindIndicator = "indicator"
	KindCountry   = "country"
	KindGroup     = "group"
	KindIndex     = "index"
	KindPackage   = "package"
)

// Indicator maps a stable key to a provider code.
type Indicator struct {
	Key      string `json:"key"`
	Code     string `json:"code"`
	Internal bool   `json:"-"`
}

// Group is an ordered country list.
type Group struct {
	Key       string   `json:"key"`
	Countries []string `json:"countries"`
}

// Package is a single-country analysis bundle.
type Package struct {
	Key        string   `json:"key"`
	Indicators []string `json:"indicators"`
}

// Catalog is an immutable, concurrency-safe lookup over the static tables.
type Catalog struct {
	indicatorsByKey  map[string]Indicator
	indicatorsByCode map[string]Indicator
	groupsByKey      map[string]Group
	indices          map[model.Family]map[string]model.IndexDefinition
	packagesByKey    map[string]Package
	labels           map[string][2]string
}

// New builds the catalog.
func New() *Catalog {
	c := &Catalog{
		indicatorsByKey:  make(map[string]Indicator, len(indicators)),
		indicatorsByCode: make(map[string]Indicator, len(indicators)),
		groupsByKey:      make(map[string]Group, len(groups)),
		indices: map[model.Family]map[string]model.IndexDefinition{
			model.FamilyComposite: {},
			model.FamilySDG:       {},
		},
		packagesByKey: make(map[string]Package, len(packages)),
		labels:        make(map[string][2]string),
	}
	for _, ind := range indicators {
		c.indicatorsByKey[ind.Key] = ind
		if _, dup := c.indicatorsByCode[ind.Code]; !dup {
			c.indicatorsByCode[ind.Code] = ind
		}
	}
	for _, g := range groups {
		c.groupsByKey[g.Key] = g
	}
	for _, d := range append(append([]model.IndexDefinition{}, compositeIndices...), sdgIndices...) {
		c.indices[d.Family][d.Key] = d
	}
	for _, p := range packages {
		c.packagesByKey[p.Key] = p
	}
	addLabels(c.labels, KindIndicator, indicatorLabels)
	addLabels(c.labels, KindCountry, countryNames)
	addLabels(c.labels, KindGroup, groupLabels)
	addLabels(c.labels, KindIndex, indexLabels)
	addLabels(c.labels, KindPackage, packageLabels)
	return c
}

func addLabels(dst map[string][2]string, kind string, src map[string][2]string) {
	for k, v := range src {
		dst[kind+":"+k] = v
	}
}

// Label returns the label of (kind, key) in locale. Missing Japanese labels
// fall back to English and missing entries to the key itself.
func (c *Catalog) Label(locale model.Locale, kind, key string) string {
	l, ok := c.labels[kind+":"+key]
	if !ok {
		return key
	}
	if locale == model.LocaleJA && l[0] != "" {
		return l[0]
	}
	if l[1] != "" {
		return l[1]
	}
	return key
}

// CountryName returns the localized country name or the code.
func (c *Catalog) CountryName(locale model.Locale, code string) string {
	return c.Label(locale, KindCountry, code)
}

// IndicatorLabel returns the localized label for a provider code.
func (c *Catalog) IndicatorLabel(locale model.Locale, code string) string {
	if ind, ok := c.indicatorsByCode[code]; ok {
		return c.Label(locale, KindIndicator, ind.Key)
	}
	return code
}

// Indicators lists picker indicators, or every indicator with internal set.
func (c *Catalog) Indicators(internal bool) []Indicator {
	return lo.Filter(indicators, func(ind Indicator, _ int) bool { return internal || !ind.Internal })
}

// Indicator looks an indicator up by key, then by provider code.
func (c *Catalog) Indicator(key string) (Indicator, bool) {
	if ind, ok := c.indicatorsByKey[key]; ok {
		return ind, true
	}
	ind, ok := c.indicatorsByCode[key]
	return ind, ok
}

// ResolveIndicator returns the indicator for key. Unknown keys that look
// like provider codes pass through; anything else falls back to the
// default indicator. The bool reports whether the fallback was used.
func (c *Catalog) ResolveIndicator(key string) (Indicator, bool) {
	if ind, ok := c.Indicator(key); ok {
		return ind, false
	}
	if looksLikeCode(key) {
		return Indicator{Key: key, Code: key}, false
	}
	return c.indicatorsByKey[DefaultIndicator], true
}

// ResolveIndicators resolves each key and reports the keys that fell back.
// Duplicates (after resolution) are dropped.
func (c *Catalog) ResolveIndicators(keys []string) ([]Indicator, []string) {
	var out []Indicator
	var fallbacks []string
	for _, k := range keys {
		ind, fb := c.ResolveIndicator(strings.TrimSpace(k))
		if fb {
			fallbacks = append(fallbacks, k)
		}
		out = append(out, ind)
	}
	return lo.UniqBy(out, func(ind Indicator) string { return ind.Code }), fallbacks
}

func looksLikeCode(s string) bool {
	if !strings.Contains(s, ".") || strings.ContainsAny(s, " /?&;") {
		return false
	}
	return strings.ToUpper(s) == s
}

// Groups lists all country groups.
func (c *Catalog) Groups() []Group {
	return groups
}

// ResolveGroup returns the group for key or the default group. The bool
// reports whether the fallback was used.
func (c *Catalog) ResolveGroup(key string) (Group, bool) {
	if g, ok := c.groupsByKey[key]; ok {
		return g, false
	}
	return c.groupsByKey[DefaultGroup], true
}

// ResolveCountries returns explicit, de-duplicated upper-cased codes when
// given, otherwise the members of the group key. Codes that are not two or
// three letters/digits are returned in rejected and never reach a fetch.
// When every explicit code is rejected the group is used.
func (c *Catalog) ResolveCountries(codes []string, groupKey string) (countries, rejected []string, fallback bool) {
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		switch {
		case code == "":
		case validCountryCode(code):
			countries = append(countries, code)
		default:
			rejected = append(rejected, code)
		}
	}
	if countries = lo.Uniq(countries); len(countries) > 0 {
		return countries, rejected, false
	}
	g, fb := c.ResolveGroup(groupKey)
	return g.Countries, rejected, fb
}

// validCountryCode accepts ISO2/ISO3 codes and World Bank aggregate ids.
func validCountryCode(code string) bool {
	if len(code) < 2 || len(code) > 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Indices lists the definitions of family in catalog order.
func (c *Catalog) Indices(family model.Family) []model.IndexDefinition {
	if family == model.FamilySDG {
		return sdgIndices
	}
	return compositeIndices
}

// ResolveIndex returns the definition for key in family or the family's
// single-indicator fallback. The bool reports whether the fallback was used.
func (c *Catalog) ResolveIndex(family model.Family, key string) (model.IndexDefinition, bool) {
	if d, ok := c.indices[family][key]; ok {
		return d, false
	}
	return fallbackIndex(family), true
}

// Packages lists the single-country packages.
func (c *Catalog) Packages() []Package {
	return packages
}

// ResolvePackage returns the package for key or the default package.
func (c *Catalog) ResolvePackage(key string) (Package, bool) {
	if p, ok := c.packagesByKey[key]; ok {
		return p, false
	}
	return c.packagesByKey[DefaultPackage], true
}

// Targets lists the supervised model target keys.
func (c *Catalog) Targets() []string { return targets }

// DefaultFeatures lists the default supervised feature keys.
func (c *Catalog) DefaultFeatures() []string { return defaultFeatures }

// DefaultPCAIndicators lists the default PCA indicator keys.
func (c *Catalog) DefaultPCAIndicators() []string { return defaultPCAIndicators }
