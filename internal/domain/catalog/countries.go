package catalog

// Group keys.
const (
	GroupCentralAmerica        = "central_america"
	GroupMajor                 = "major"
	GroupLatinAmericaCaribbean = "latin_america_caribbean"
	GroupUpperMiddleIncome     = "upper_middle_income"
	GroupMiddleIncome          = "middle_income"
	GroupRegionalAggregates    = "regional_aggregates"
	DefaultGroup               = GroupCentralAmerica
)

// HighlightCountry is drawn in red on every chart.
const HighlightCountry = "GT"

const highlightCountryISO3 = "GTM"

const (
	aggregateMiddleIncome = "MIC"
	aggregateLatinAmerica = "LCN"
)

var groups = []Group{
	{Key: GroupCentralAmerica, Countries: []string{"GT", "HN", "SV", "CR", "NI", "PA", "BZ", "DO", "MX"}},
	{Key: GroupMajor, Countries: []string{"JP", "KR", "US", "CN", "IN", "GB", "DE", "FR", "IT"}},
	{Key: GroupLatinAmericaCaribbean, Countries: []string{
		"AR", "BO", "BR", "CL", "CO", "EC", "GY", "PY", "PE", "SR", "UY", "VE", "AG", "BS", "BB", "BZ", "CR",
		"CU", "DM", "DO", "SV", "GD", "GT", "HT", "HN", "JM", "MX", "NI", "PA", "KN", "LC", "VC", "TT",
	}},
	{Key: GroupUpperMiddleIncome, Countries: []string{"AR", "BR", "CL", "CO", "CR", "MX", "PA", "PE", "DO", "EC", "GT", "JM", "PY", "SV"}},
	{Key: GroupMiddleIncome, Countries: []string{
		"AL", "DZ", "AS", "AR", "AM", "AZ", "BY", "BZ", "BA", "BW", "BR", "BG", "CN", "CO", "CR", "HR", "CU",
		"DM", "DO", "EC", "EG", "SV", "GQ", "FJ", "GA", "GE", "GD", "GT", "GY", "HN", "HU", "IN", "ID", "IR",
		"IQ", "JM", "JO", "KZ", "XK", "LB", "LY", "MY", "MV", "MH", "MU", "MX", "FM", "MD", "ME", "NA", "NI",
		"MK", "PK", "PW", "PA", "PY", "PE", "PH", "PL", "RO", "RU", "WS", "RS", "ZA", "LK", "LC", "VC", "SR",
		"TH", "TO", "TR", "TM", "TV", "UA", "VE",
	}},
	{Key: GroupRegionalAggregates, Countries: []string{aggregateMiddleIncome, aggregateLatinAmerica}},
}

// countryNames maps a country code to its {ja, en} names. Codes without a
// Japanese name fall back to English.
var countryNames = map[string][2]string{
	"GT": {"グアテマラ", "Guatemala"},
	"HN": {"ホンジュラス", "Honduras"},
	"SV": {"エルサルバドル", "El Salvador"},
	"CR": {"コスタリカ", "Costa Rica"},
	"NI": {"ニカラグア", "Nicaragua"},
	"PA": {"パナマ", "Panama"},
	"BZ": {"ベリーズ", "Belize"},
	"DO": {"ドミニカ共和国", "Dominican Republic"},
	"MX": {"メキシコ", "Mexico"},
	"JP": {"日本", "Japan"},
	"KR": {"韓国", "Korea, Rep."},
	"US": {"米国", "United States"},
	"CN": {"中国", "China"},
	"IN": {"インド", "India"},
	"GB": {"英国", "United Kingdom"},
	"DE": {"ドイツ", "Germany"},
	"FR": {"フランス", "France"},
	"IT": {"イタリア", "Italy"},
	"AR": {"アルゼンチン", "Argentina"},
	"BO": {"ボリビア", "Bolivia"},
	"BR": {"ブラジル", "Brazil"},
	"CL": {"チリ", "Chile"},
	"CO": {"コロンビア", "Colombia"},
	"EC": {"エクアドル", "Ecuador"},
	"GY": {"ガイアナ", "Guyana"},
	"PY": {"パラグアイ", "Paraguay"},
	"PE": {"ペルー", "Peru"},
	"SR": {"スリナム", "Suriname"},
	"UY": {"ウルグアイ", "Uruguay"},
	"VE": {"ベネズエラ", "Venezuela, RB"},
	"AG": {"アンティグア・バーブーダ", "Antigua and Barbuda"},
	"BS": {"バハマ", "Bahamas, The"},
	"BB": {"バルバドス", "Barbados"},
	"CU": {"キューバ", "Cuba"},
	"DM": {"ドミニカ", "Dominica"},
	"GD": {"グレナダ", "Grenada"},
	"HT": {"ハイチ", "Haiti"},
	"JM": {"ジャマイカ", "Jamaica"},
	"KN": {"セントキッツ・ネイビス", "St. Kitts and Nevis"},
	"LC": {"セントルシア", "St. Lucia"},
	"VC": {"セントビンセント", "St. Vincent and the Grenadines"},
	"TT": {"トリニダード・トバゴ", "Trinidad and Tobago"},

	// Regional aggregates.
	"MIC": {"中所得国全体", "Middle income"},
	"LCN": {"中南米・カリブ全体", "Latin America & Caribbean"},

	"AL": {"", "Albania"},
	"DZ": {"", "Algeria"},
	"AS": {"", "American Samoa"},
	"AM": {"", "Armenia"},
	"AZ": {"", "Azerbaijan"},
	"BY": {"", "Belarus"},
	"BA": {"", "Bosnia and Herzegovina"},
	"BW": {"", "Botswana"},
	"BG": {"", "Bulgaria"},
	"HR": {"", "Croatia"},
	"EG": {"", "Egypt, Arab Rep."},
	"GQ": {"", "Equatorial Guinea"},
	"FJ": {"", "Fiji"},
	"GA": {"", "Gabon"},
	"GE": {"", "Georgia"},
	"HU": {"", "Hungary"},
	"ID": {"", "Indonesia"},
	"IR": {"", "Iran, Islamic Rep."},
	"IQ": {"", "Iraq"},
	"JO": {"", "Jordan"},
	"KZ": {"", "Kazakhstan"},
	"XK": {"", "Kosovo"},
	"LB": {"", "Lebanon"},
	"LY": {"", "Libya"},
	"MY": {"", "Malaysia"},
	"MV": {"", "Maldives"},
	"MH": {"", "Marshall Islands"},
	"MU": {"", "Mauritius"},
	"FM": {"", "Micronesia, Fed. Sts."},
	"MD": {"", "Moldova"},
	"ME": {"", "Montenegro"},
	"NA": {"", "Namibia"},
	"MK": {"", "North Macedonia"},
	"PK": {"", "Pakistan"},
	"PW": {"", "Palau"},
	"PH": {"", "Philippines"},
	"PL": {"", "Poland"},
	"RO": {"", "Romania"},
	"RU": {"", "Russian Federation"},
	"WS": {"", "Samoa"},
	"RS": {"", "Serbia"},
	"ZA": {"", "South Africa"},
	"LK": {"", "Sri Lanka"},
	"TH": {"", "Thailand"},
	"TO": {"", "Tonga"},
	"TR": {"", "Turkiye"},
	"TM": {"", "Turkmenistan"},
	"TV": {"", "Tuvalu"},
	"UA": {"", "Ukraine"},
}

var groupLabels = map[string][2]string{
	GroupCentralAmerica:        {"中米9か国", "Central America (9)"},
	GroupMajor:                 {"主要9か国", "Major economies (9)"},
	GroupLatinAmericaCaribbean: {"中南米・カリブ33か国", "Latin America & Caribbean (33)"},
	GroupUpperMiddleIncome:     {"高位及び低位中所得国", "Upper-middle income (14)"},
	GroupMiddleIncome:          {"世銀Middle Income諸国全体", "World Bank middle income"},
	GroupRegionalAggregates:    {"地域・所得分類平均", "Regional aggregates"},
}

// IsAggregate reports whether code is a regional or income aggregate.
func IsAggregate(code string) bool {
	return code == aggregateMiddleIncome || code == aggregateLatinAmerica
}

// IsHighlight reports whether code (id or ISO3) is the highlighted country.
func IsHighlight(code string) bool {
	return code == HighlightCountry || code == highlightCountryISO3
}
