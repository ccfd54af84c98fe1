package risk

import "github.com/riskradar-team/go-riskradar/internal/models"

// Assessment carries the business impact score together with every
// intermediate value, so callers can render a "why" explanation that
// reproduces the arithmetic exactly.
type Assessment struct {
	Score            float64 `json:"score"`
	RiskProbability  float64 `json:"risk_probability"`
	FinancialScore   float64 `json:"financial_score"`
	OperationalScore float64 `json:"operational_score"`
	StrategicScore   float64 `json:"strategic_score"`
	SiteValueIndex   float64 `json:"site_value_index"`
}

// Scorer computes a site's business impact. Two implementations exist; the
// choice is a config switch so callers never know which one runs.
type Scorer interface {
	Assess(site models.Site) Assessment
}

// NewScorer selects the scorer variant. "legacy" is the criticality-weight
// multiplier kept for comparison runs; anything else gets the breakdown
// scorer the dashboard renders.
func NewScorer(variant string) Scorer {
	if variant == "legacy" {
		return LegacyWeightedScorer{}
	}
	return BreakdownScorer{}
}

// Baselines against which the financial and operational sub-scores saturate.
const (
	inventoryBaselineEUR  = 100_000_000
	throughputBaselineDay = 200_000
)

var strategicScores = map[models.Criticality]float64{
	models.CriticalityCritical: 10,
	models.CriticalityHigh:     7,
	models.CriticalityMedium:   4,
	models.CriticalityLow:      2,
}

// strategicScoreDefault applies when criticality carries a value outside the
// known set.
const strategicScoreDefault = 5

// BreakdownScorer combines hazard probability with a 0-10 site value index
// built from three clamped sub-scores.
type BreakdownScorer struct{}

func (BreakdownScorer) Assess(site models.Site) Assessment {
	financial := min(10, site.InventoryValueEUR/inventoryBaselineEUR*10)
	operational := min(10, site.DailyThroughput/throughputBaselineDay*10)
	strategic, ok := strategicScores[site.Criticality]
	if !ok {
		strategic = strategicScoreDefault
	}

	svi := 0.4*financial + 0.3*operational + 0.3*strategic
	prob := site.Risks.Combined.Score / 100

	return Assessment{
		Score:            prob * svi,
		RiskProbability:  prob,
		FinancialScore:   financial,
		OperationalScore: operational,
		StrategicScore:   strategic,
		SiteValueIndex:   svi,
	}
}

var legacyCriticalityWeights = map[models.Criticality]float64{
	models.CriticalityCritical: 1.5,
	models.CriticalityHigh:     1.2,
	models.CriticalityMedium:   1.0,
	models.CriticalityLow:      0.8,
}

// LegacyWeightedScorer is the superseded variant: combined score times a
// criticality weight, unclamped, so values can exceed 100. It fills only the
// score and probability fields; there is no breakdown to explain.
type LegacyWeightedScorer struct{}

func (LegacyWeightedScorer) Assess(site models.Site) Assessment {
	weight, ok := legacyCriticalityWeights[site.Criticality]
	if !ok {
		weight = 1.0
	}
	return Assessment{
		Score:           site.Risks.Combined.Score * weight,
		RiskProbability: site.Risks.Combined.Score / 100,
	}
}
