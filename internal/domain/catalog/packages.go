package catalog

// Package keys.
const (
	PackageEconomy        = "economy"
	PackageSocial         = "social"
	PackageSustainability = "sustainability"
	PackageTechnology     = "technology"
	PackageTrade          = "trade"
	DefaultPackage        = PackageEconomy

	// DefaultTarget is the supervised model target offered first.
	DefaultTarget = "net_migration"
)

var packages = []Package{
	{Key: PackageEconomy, Indicators: []string{
		"gdp_growth", "gdp_per_capita", "gdp_per_capita_real", "inflation", "unemployment", "government_spending",
	}},
	{Key: PackageSocial, Indicators: []string{
		"life_expectancy", "literacy", "poverty", "gini", "education_spending",
	}},
	{Key: PackageSustainability, Indicators: []string{
		"co2_per_capita", "renewable_energy", "electricity_access", "forest_area", "water_access",
	}},
	{Key: PackageTechnology, Indicators: []string{
		"internet_users", "rd_spending", "high_tech_exports", "mobile_subscriptions", "patents",
	}},
	{Key: PackageTrade, Indicators: []string{
		"exports", "imports", "fdi_gdp", "trade_balance", "tourism_receipts",
	}},
}

var packageLabels = map[string][2]string{
	PackageEconomy:        {"基本経済プロファイル", "Basic economic profile"},
	PackageSocial:         {"社会発展指標", "Social development"},
	PackageSustainability: {"持続可能性評価", "Sustainability assessment"},
	PackageTechnology:     {"技術・イノベーション", "Technology and innovation"},
	PackageTrade:          {"貿易・国際化", "Trade and internationalisation"},
}

// targets are the supervised model targets in picker order.
var targets = []string{
	"gdp_growth", "unemployment", "inflation", "gdp_per_capita", "gdp_per_capita_ppp", "capital_formation",
	"savings_gap", "account_ownership", "financial_depth", "fdi_gdp", "labor_participation",
	"female_labor_participation", "female_managers", "life_expectancy", "net_migration",
}

var defaultFeatures = []string{"gdp_per_capita_real", "unemployment", "financial_depth", "gini", "capital_formation"}

var defaultPCAIndicators = []string{"gdp_growth", "inflation", "education_spending", "life_expectancy"}
