package catalog

// World Bank codes referenced directly by the engine.
const (
	CodeGDPGrowth          = "NY.GDP.MKTP.KD.ZG"
	CodeLifeExpectancy     = "SP.DYN.LE00.IN"
	CodePopulation         = "SP.POP.TOTL"
	CodeWorkingAge         = "SP.POP.1564.TO"
	CodeGDPPPP             = "NY.GDP.MKTP.PP.CD"
	CodeWorkingAgePPPGDP   = "COMPOSITE_WORKING_AGE_PPP_GDP"
	CodeGovernmentSpending = "NE.CON.GOVT.CD"
	CodeInvestment         = "NE.GDI.FTOT.CD"
	CodeConsumption        = "NE.CON.PRVT.CD"
	CodeExportsUSD         = "NE.EXP.GNFS.CD"
	CodeImportsUSD         = "NE.IMP.GNFS.CD"
	CodeAgriculture        = "NV.AGR.TOTL.ZS"
	CodeIndustry           = "NV.IND.TOTL.ZS"
	CodeServices           = "NV.SRV.TETC.ZS"

	// DefaultIndicator is used when an indicator key cannot be resolved.
	DefaultIndicator = "gdp_growth"
)

// indicators lists the catalog in picker order. Entries marked internal
// feed profiles and indices but are not offered in pickers.
var indicators = []Indicator{
	{Key: "gdp_growth", Code: CodeGDPGrowth},
	{Key: "gdp_per_capita", Code: "NY.GDP.PCAP.CD"},
	{Key: "gdp_per_capita_real", Code: "NY.GDP.PCAP.KD"},
	{Key: "gdp_per_capita_ppp", Code: "NY.GDP.PCAP.PP.CD"},
	{Key: "working_age_ppp_gdp", Code: CodeWorkingAgePPPGDP},
	{Key: "gdp", Code: "NY.GDP.MKTP.CD"},
	{Key: "gdp_real", Code: "NY.GDP.MKTP.KD"},
	{Key: "inflation", Code: "FP.CPI.TOTL.ZG"},
	{Key: "exports", Code: "NE.EXP.GNFS.ZS"},
	{Key: "imports", Code: "NE.IMP.GNFS.ZS"},
	{Key: "government_spending", Code: "NE.CON.GOVT.ZS"},
	{Key: "fdi", Code: "BX.KLT.DINV.CD.WD"},
	{Key: "remittances", Code: "BX.TRF.PWKR.CD.DT"},
	{Key: "remittances_gdp", Code: "BX.TRF.PWKR.DT.GD.ZS"},
	{Key: "government_debt", Code: "GC.DOD.TOTL.GD.ZS"},
	{Key: "revenue", Code: "GC.REV.XGRT.GD.ZS"},
	{Key: "external_debt", Code: "DT.DOD.DECT.GN.ZS"},
	{Key: "capital_formation", Code: "NE.GDI.TOTL.ZS"},
	{Key: "savings_gap", Code: "NY.GNS.ICTR.ZS"},
	{Key: "account_ownership", Code: "FX.OWN.TOTL.ZS"},
	{Key: "financial_depth", Code: "FS.AST.PRVT.GD.ZS"},
	{Key: "fdi_gdp", Code: "BX.KLT.DINV.WD.GD.ZS"},
	{Key: "poverty", Code: "SI.POV.NAHC"},
	{Key: "gini", Code: "SI.POV.GINI"},
	{Key: "unemployment", Code: "SL.UEM.TOTL.ZS"},
	{Key: "labor_participation", Code: "SL.TLF.CACT.ZS"},
	{Key: "female_labor_participation", Code: "SL.TLF.CACT.FE.ZS"},
	{Key: "female_managers", Code: "SL.EMP.SMGT.FE.ZS"},
	{Key: "population", Code: CodePopulation},
	{Key: "population_growth", Code: "SP.POP.GROW"},
	{Key: "urban_population", Code: "SP.URB.TOTL.IN.ZS"},
	{Key: "net_migration", Code: "SM.POP.NETM"},
	{Key: "infant_mortality", Code: "SP.DYN.IMRT.IN"},
	{Key: "physicians", Code: "SH.MED.PHYS.ZS"},
	{Key: "hospital_beds", Code: "SH.MED.BEDS.ZS"},
	{Key: "hiv_prevalence", Code: "SH.DYN.AIDS.ZS"},
	{Key: "life_expectancy", Code: CodeLifeExpectancy},
	{Key: "health_spending", Code: "SH.XPD.CHEX.GD.ZS"},
	{Key: "education_spending", Code: "SE.XPD.TOTL.GD.ZS"},
	{Key: "primary_completion", Code: "SE.PRM.CMPT.ZS"},
	{Key: "literacy", Code: "SE.ADT.LITR.ZS"},
	{Key: "co2_per_capita", Code: "EN.ATM.CO2E.PC"},
	{Key: "renewable_energy", Code: "EG.FEC.RNEW.ZS"},
	{Key: "forest_area", Code: "AG.LND.FRST.ZS"},
	{Key: "water_access", Code: "SH.H2O.BASW.ZS"},
	{Key: "electricity_access", Code: "EG.ELC.ACCS.ZS"},
	{Key: "internet_users", Code: "IT.NET.USER.ZS"},
	{Key: "rd_spending", Code: "GB.XPD.RSDV.GD.ZS"},

	{Key: "high_tech_exports", Code: "TX.VAL.TECH.MF.ZS", Internal: true},
	{Key: "trade_balance", Code: "NE.RSB.GNFS.ZS", Internal: true},
	{Key: "fiscal_balance", Code: "GC.BAL.CASH.GD.ZS", Internal: true},
	{Key: "primary_enrollment", Code: "SE.PRM.NENR", Internal: true},
	{Key: "secondary_enrollment", Code: "SE.SEC.NENR", Internal: true},
	{Key: "women_in_parliament", Code: "SG.GEN.PARL.ZS", Internal: true},
	{Key: "gender_parity_secondary", Code: "SE.ENR.SECO.FM.ZS", Internal: true},
	{Key: "energy_use", Code: "EG.USE.PCAP.KG.OE", Internal: true},
	{Key: "homicides", Code: "VC.IHR.PSRC.P5", Internal: true},
	{Key: "statistical_capacity", Code: "IQ.SCI.PRDC", Internal: true},
	{Key: "mobile_subscriptions", Code: "IT.CEL.SETS.P2", Internal: true},
	{Key: "patents", Code: "IP.PAT.RESD", Internal: true},
	{Key: "tourism_receipts", Code: "ST.INT.RCPT.CD", Internal: true},
	{Key: "working_age_population", Code: CodeWorkingAge, Internal: true},
	{Key: "gdp_ppp", Code: CodeGDPPPP, Internal: true},
	{Key: "government_consumption_usd", Code: CodeGovernmentSpending, Internal: true},
	{Key: "fixed_investment_usd", Code: CodeInvestment, Internal: true},
	{Key: "household_consumption_usd", Code: CodeConsumption, Internal: true},
	{Key: "exports_usd", Code: CodeExportsUSD, Internal: true},
	{Key: "imports_usd", Code: CodeImportsUSD, Internal: true},
	{Key: "agriculture_share", Code: CodeAgriculture, Internal: true},
	{Key: "industry_share", Code: CodeIndustry, Internal: true},
	{Key: "services_share", Code: CodeServices, Internal: true},
}

var indicatorLabels = map[string][2]string{
	"gdp_growth":                 {"GDP成長率（%）", "GDP growth (annual %)"},
	"gdp_per_capita":             {"一人当たりGDP（名目）", "GDP per capita (current US$)"},
	"gdp_per_capita_real":        {"一人当たりGDP（実質2015USD）", "GDP per capita (constant 2015 US$)"},
	"gdp_per_capita_ppp":         {"一人当たりGDP（PPPベース）", "GDP per capita, PPP (current international $)"},
	"working_age_ppp_gdp":        {"生産人口一人当たりPPP GDP（合成）", "PPP GDP per working-age person (derived)"},
	"gdp":                        {"GDP（名目USD）", "GDP (current US$)"},
	"gdp_real":                   {"GDP（実質、2015USD）", "GDP (constant 2015 US$)"},
	"inflation":                  {"インフレ率（%）", "Inflation, consumer prices (annual %)"},
	"exports":                    {"輸出（GDP比%）", "Exports of goods and services (% of GDP)"},
	"imports":                    {"輸入（GDP比%）", "Imports of goods and services (% of GDP)"},
	"government_spending":        {"政府支出（GDP比%）", "Government final consumption (% of GDP)"},
	"fdi":                        {"外国直接投資（USD）", "Foreign direct investment, net inflows (US$)"},
	"remittances":                {"個人送金額（USD）", "Personal remittances received (US$)"},
	"remittances_gdp":            {"送金流入（GDP比%）", "Personal remittances received (% of GDP)"},
	"government_debt":            {"政府債務（GDP比%）", "Central government debt (% of GDP)"},
	"revenue":                    {"財政収入（GDP比%）", "Revenue, excluding grants (% of GDP)"},
	"external_debt":              {"対外債務残高（GNI比%）", "External debt stocks (% of GNI)"},
	"capital_formation":          {"総資本形成（GDP比%）", "Gross capital formation (% of GDP)"},
	"savings_gap":                {"貯蓄・投資ギャップ（%）", "Gross savings (% of capital formation)"},
	"account_ownership":          {"金融口座保有率（%）", "Account ownership (% of age 15+)"},
	"financial_depth":            {"金融深化度（%）", "Domestic credit to private sector (% of GDP)"},
	"fdi_gdp":                    {"外国直接投資（GDP比%）", "Foreign direct investment, net inflows (% of GDP)"},
	"poverty":                    {"貧困率（%）", "Poverty headcount ratio at national lines (%)"},
	"gini":                       {"所得格差（ジニ係数）", "Gini index"},
	"unemployment":               {"失業率（%）", "Unemployment (% of labor force)"},
	"labor_participation":        {"労働参加率（%）", "Labor force participation rate (%)"},
	"female_labor_participation": {"女性労働参加率（%）", "Female labor force participation rate (%)"},
	"female_managers":            {"女性管理者比率（%）", "Female share of senior and middle management (%)"},
	"population":                 {"人口", "Population, total"},
	"population_growth":          {"人口成長率（%）", "Population growth (annual %)"},
	"urban_population":           {"都市人口率（%）", "Urban population (% of total)"},
	"net_migration":              {"純移民数", "Net migration"},
	"infant_mortality":           {"乳児死亡率", "Infant mortality rate (per 1,000 live births)"},
	"physicians":                 {"医師数（人口千人当たり）", "Physicians (per 1,000 people)"},
	"hospital_beds":              {"病床数（人口千人当たり）", "Hospital beds (per 1,000 people)"},
	"hiv_prevalence":             {"HIV感染率", "Prevalence of HIV (% of population ages 15-49)"},
	"life_expectancy":            {"平均寿命", "Life expectancy at birth (years)"},
	"health_spending":            {"保健支出（GDP比%）", "Current health expenditure (% of GDP)"},
	"education_spending":         {"教育支出（GDP比%）", "Government expenditure on education (% of GDP)"},
	"primary_completion":         {"初等教育修了率（%）", "Primary completion rate (%)"},
	"literacy":                   {"識字率（%）", "Literacy rate, adult (%)"},
	"co2_per_capita":             {"CO2排出量（1人当たり）", "CO2 emissions (metric tons per capita)"},
	"renewable_energy":           {"再生可能エネルギー比率（%）", "Renewable energy consumption (% of total)"},
	"forest_area":                {"森林面積（%）", "Forest area (% of land area)"},
	"water_access":               {"水資源アクセス（%）", "Basic drinking water services (% of population)"},
	"electricity_access":         {"電力普及率（%）", "Access to electricity (% of population)"},
	"internet_users":             {"インターネット普及率（%）", "Individuals using the Internet (% of population)"},
	"rd_spending":                {"研究開発費（GDP比%）", "Research and development expenditure (% of GDP)"},
	"high_tech_exports":          {"高技術製品輸出（%）", "High-technology exports (% of manufactured exports)"},
	"trade_balance":              {"貿易収支（GDP比%）", "External balance on goods and services (% of GDP)"},
	"fiscal_balance":             {"財政収支（GDP比%）", "Cash surplus/deficit (% of GDP)"},
	"primary_enrollment":         {"初等教育純就学率（%）", "School enrollment, primary (% net)"},
	"secondary_enrollment":       {"中等教育純就学率（%）", "School enrollment, secondary (% net)"},
	"women_in_parliament":        {"女性議員比率（%）", "Seats held by women in national parliaments (%)"},
	"gender_parity_secondary":    {"中等教育ジェンダー平等指数", "School enrollment, secondary (gender parity index)"},
	"energy_use":                 {"エネルギー使用量（1人当たり）", "Energy use (kg of oil equivalent per capita)"},
	"homicides":                  {"殺人発生率（10万人当たり）", "Intentional homicides (per 100,000 people)"},
	"statistical_capacity":       {"統計能力", "Statistical performance indicators"},
	"mobile_subscriptions":       {"モバイル普及率", "Mobile cellular subscriptions (per 100 people)"},
	"patents":                    {"特許申請", "Patent applications, residents"},
	"tourism_receipts":           {"観光収入", "International tourism, receipts (current US$)"},
	"working_age_population":     {"生産年齢人口（15-64歳）", "Population ages 15-64, total"},
	"gdp_ppp":                    {"GDP（PPP）", "GDP, PPP (current international $)"},
	"government_consumption_usd": {"政府支出", "Government consumption"},
	"fixed_investment_usd":       {"投資", "Gross fixed capital formation"},
	"household_consumption_usd":  {"消費", "Household consumption"},
	"exports_usd":                {"輸出", "Exports"},
	"imports_usd":                {"輸入", "Imports"},
	"agriculture_share":          {"農業", "Agriculture"},
	"industry_share":             {"工業", "Industry"},
	"services_share":             {"サービス業", "Services"},
}
