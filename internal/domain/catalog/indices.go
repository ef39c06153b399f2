package catalog

import "github.com/okian/wbdash/internal/domain/model"

// Index keys offered as defaults.
const (
	DefaultCompositeIndex = "economic_development"
	DefaultSDGIndex       = "sdg1_poverty"
	fallbackIndexKey      = "fallback"
)

func c(code string, weight float64, dir model.Direction) model.Component {
	return model.Component{IndicatorCode: code, Weight: weight, Direction: dir}
}

const (
	up   = model.HigherIsBetter
	down = model.LowerIsBetter
)

var compositeIndices = []model.IndexDefinition{
	{Key: "economic_development", Family: model.FamilyComposite, Components: []model.Component{
		c("NY.GDP.MKTP.KD.ZG", 40, up), c("NY.GDP.PCAP.CD", 40, up), c("NE.CON.GOVT.ZS", 20, up),
	}},
	{Key: "sustainability", Family: model.FamilyComposite, Components: []model.Component{
		c("EN.ATM.CO2E.PC", 40, down), c("EG.FEC.RNEW.ZS", 35, up), c("AG.LND.FRST.ZS", 25, up),
	}},
	{Key: "social_inclusion", Family: model.FamilyComposite, Components: []model.Component{
		c("SI.POV.GINI", 35, down), c("SE.ADT.LITR.ZS", 35, up), c("SP.DYN.LE00.IN", 30, up),
	}},
	{Key: "technology_innovation", Family: model.FamilyComposite, Components: []model.Component{
		c("IT.NET.USER.ZS", 30, up), c("GB.XPD.RSDV.GD.ZS", 40, up), c("TX.VAL.TECH.MF.ZS", 30, up),
	}},
	{Key: "economic_stability", Family: model.FamilyComposite, Components: []model.Component{
		c("FP.CPI.TOTL.ZG", 40, down), c("SL.UEM.TOTL.ZS", 35, down), c("NE.RSB.GNFS.ZS", 25, up),
	}},
	{Key: "trade_competitiveness", Family: model.FamilyComposite, Components: []model.Component{
		c("NE.EXP.GNFS.ZS", 30, up), c("TX.VAL.TECH.MF.ZS", 40, up), c("BX.KLT.DINV.WD.GD.ZS", 30, up),
	}},
	{Key: "investment_finance", Family: model.FamilyComposite, Components: []model.Component{
		c("BX.KLT.DINV.CD.WD", 40, up), c("FS.AST.PRVT.GD.ZS", 35, up), c("FX.OWN.TOTL.ZS", 25, up),
	}},
	{Key: "structural_adjustment", Family: model.FamilyComposite, Components: []model.Component{
		c("NY.GDP.MKTP.KD.ZG", 30, up), c("FP.CPI.TOTL.ZG", 20, down), c("DT.DOD.DECT.GN.ZS", 20, down), c("GC.BAL.CASH.GD.ZS", 30, up),
	}},
}

var sdgIndices = []model.IndexDefinition{
	{Key: "sdg1_poverty", Family: model.FamilySDG, Goal: "SDG1", Components: []model.Component{
		c("SL.UEM.TOTL.ZS", 40, down), c("FP.CPI.TOTL.ZG", 20, down), c("NY.GDP.MKTP.KD.ZG", 20, up), c("SI.POV.NAHC", 20, down),
	}},
	{Key: "sdg3_health", Family: model.FamilySDG, Goal: "SDG3", Components: []model.Component{
		c("SP.DYN.LE00.IN", 35, up), c("SH.H2O.BASW.ZS", 35, up), c("SP.DYN.IMRT.IN", 30, down),
	}},
	{Key: "sdg4_education", Family: model.FamilySDG, Goal: "SDG4", Components: []model.Component{
		c("SE.ADT.LITR.ZS", 40, up), c("SE.PRM.NENR", 35, up), c("SE.SEC.NENR", 30, up),
	}},
	{Key: "sdg5_gender", Family: model.FamilySDG, Goal: "SDG5", Components: []model.Component{
		c("SG.GEN.PARL.ZS", 30, up), c("SL.TLF.CACT.FE.ZS", 35, up), c("SE.ENR.SECO.FM.ZS", 35, up),
	}},
	{Key: "sdg13_climate", Family: model.FamilySDG, Goal: "SDG13", Components: []model.Component{
		c("EN.ATM.CO2E.PC", 40, down), c("AG.LND.FRST.ZS", 40, up), c("EG.USE.PCAP.KG.OE", 20, down),
	}},
	{Key: "sdg16_stability", Family: model.FamilySDG, Goal: "SDG16", Components: []model.Component{
		c("VC.IHR.PSRC.P5", 25, down), c("IQ.SCI.PRDC", 25, up), c("SE.XPD.TOTL.GD.ZS", 25, up), c("SH.XPD.CHEX.GD.ZS", 25, up),
	}},
}

// fallbackIndex is the single-indicator definition used for an unknown key.
func fallbackIndex(family model.Family) model.IndexDefinition {
	code := CodeGDPGrowth
	if family == model.FamilySDG {
		code = CodeLifeExpectancy
	}
	return model.IndexDefinition{
		Key:        fallbackIndexKey,
		Family:     family,
		Components: []model.Component{c(code, 100, up)},
	}
}

var indexLabels = map[string][2]string{
	"economic_development":  {"経済発展指数", "Economic development index"},
	"sustainability":        {"持続可能性指数", "Sustainability index"},
	"social_inclusion":      {"社会包摂指数", "Social inclusion index"},
	"technology_innovation": {"技術革新指数", "Technology and innovation index"},
	"economic_stability":    {"経済安定性指数", "Economic stability index"},
	"trade_competitiveness": {"貿易競争力指数", "Trade competitiveness index"},
	"investment_finance":    {"投融資活性化指数", "Investment and finance activation index"},
	"structural_adjustment": {"構造調整型マクロ安定指数", "Structural adjustment macro stability index"},
	"sdg1_poverty":          {"経済的貧困度緩和指数（SDGs1 貧困削減）", "Economic poverty relief index (SDG1 No poverty)"},
	"sdg3_health":           {"保健指数（SDGs3 保健・福祉）", "Health index (SDG3 Good health)"},
	"sdg4_education":        {"教育充実度指数（SDGs4 質の高い教育）", "Education index (SDG4 Quality education)"},
	"sdg5_gender":           {"ジェンダー代表性指数（SDGs5 ジェンダー平等）", "Gender representation index (SDG5 Gender equality)"},
	"sdg13_climate":         {"気候レジリエンス指数（SDGs13 気候変動）", "Climate resilience index (SDG13 Climate action)"},
	"sdg16_stability":       {"社会安定性指数（SDGs16 平和・公正）", "Social stability index (SDG16 Peace and justice)"},
	fallbackIndexKey:        {"既定指標", "Default indicator"},
}
