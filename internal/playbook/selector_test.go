package playbook

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/risk"
)

func siteWithRisks(fire, quake, combined float64) models.Site {
	return models.Site{
		Name: "Sortierzentrum Mitte",
		Risks: models.RiskScores{
			Fire:     models.RiskScore{Score: fire},
			Quake:    models.RiskScore{Score: quake},
			Combined: models.RiskScore{Score: combined},
		},
	}
}

func catalog() map[string]models.Playbook {
	measures := []models.Measure{
		{Priority: 1, Action: "Notify site lead", Owner: "ops", SLAHours: 1, SeverityMin: "medium"},
		{Priority: 2, Action: "Stage water bowsers", Owner: "facilities", SLAHours: 4, SeverityMin: "high"},
		{Priority: 3, Action: "Move pharma stock", Owner: "inventory", SLAHours: 8, SeverityMin: "critical"},
		{Priority: 4, Action: "Brief drivers", Owner: "fleet", SLAHours: 2, SeverityMin: "medium"},
		{Priority: 5, Action: "Check hydrants", Owner: "facilities", SLAHours: 12, SeverityMin: "medium"},
		{Priority: 6, Action: "Dry-run evacuation", Owner: "hr", SLAHours: 24, SeverityMin: "medium"},
	}
	checklist := []string{"call tree current", "generators fueled", "routes posted"}
	out := map[string]models.Playbook{}
	for _, ht := range []string{"fire", "quake", "combined"} {
		out[ht] = models.Playbook{
			Name:      ht,
			Color:     "#333333",
			Icon:      "flame",
			Measures:  measures,
			Checklist: checklist,
		}
	}
	return out
}

func TestSelect_DominantFire(t *testing.T) {
	// fire=30, quake=10 → fire dominates; 30 is medium.
	sel := Select(siteWithRisks(30, 10, 30), catalog())

	require.NotNil(t, sel)
	assert.Equal(t, "fire", sel.HazardType)
	assert.Equal(t, risk.LevelMedium, sel.Severity)
	assert.Equal(t, 30.0, sel.PrimaryRisk)
}

func TestSelect_DominantQuake(t *testing.T) {
	sel := Select(siteWithRisks(20, 60, 55), catalog())

	require.NotNil(t, sel)
	assert.Equal(t, "quake", sel.HazardType)
	assert.Equal(t, risk.LevelHigh, sel.Severity)
	assert.Equal(t, 60.0, sel.PrimaryRisk)
}

func TestSelect_TieFallsThroughToCombined(t *testing.T) {
	// Equal hazards above 25: neither strictly dominates, combined wins.
	sel := Select(siteWithRisks(40, 40, 45), catalog())

	require.NotNil(t, sel)
	assert.Equal(t, "combined", sel.HazardType)
	assert.Equal(t, 45.0, sel.PrimaryRisk)
}

func TestSelect_WeakHazardsFallThroughToCombined(t *testing.T) {
	// Both below the 25 gate: combined drives severity.
	sel := Select(siteWithRisks(20, 10, 50), catalog())

	require.NotNil(t, sel)
	assert.Equal(t, "combined", sel.HazardType)
	assert.Equal(t, risk.LevelHigh, sel.Severity)
}

func TestSelect_LowSeverityReturnsNil(t *testing.T) {
	// fire=10, quake=10, combined=20 → severity low → no playbook.
	assert.Nil(t, Select(siteWithRisks(10, 10, 20), catalog()))
}

func TestSelect_MissingCatalogEntryReturnsNil(t *testing.T) {
	partial := catalog()
	delete(partial, "fire")

	assert.Nil(t, Select(siteWithRisks(30, 10, 30), partial))
}

func TestSelect_FiltersMeasuresBySeverityMin(t *testing.T) {
	// Medium severity: only severity_min ≤ medium measures survive.
	sel := Select(siteWithRisks(30, 10, 30), catalog())

	require.NotNil(t, sel)
	for _, m := range sel.Measures {
		assert.LessOrEqual(t, risk.ParseLevel(m.SeverityMin).Rank(), risk.LevelMedium.Rank())
	}
}

func TestSelect_CapsMeasuresAtFourInCatalogOrder(t *testing.T) {
	// Four medium measures exist (priorities 1, 4, 5, 6); the cap keeps the
	// catalog order and the checklist stays complete.
	sel := Select(siteWithRisks(30, 10, 30), catalog())

	require.NotNil(t, sel)
	require.Len(t, sel.Measures, 4)
	assert.Equal(t, []int{1, 4, 5, 6}, []int{
		sel.Measures[0].Priority,
		sel.Measures[1].Priority,
		sel.Measures[2].Priority,
		sel.Measures[3].Priority,
	})
	assert.Len(t, sel.Checklist, 3)
}

func TestSelect_CriticalSeesAllSeverities(t *testing.T) {
	sel := Select(siteWithRisks(90, 10, 85), catalog())

	require.NotNil(t, sel)
	assert.Equal(t, "fire", sel.HazardType)
	assert.Equal(t, risk.LevelCritical, sel.Severity)
	require.Len(t, sel.Measures, 4)
	// First four of the full catalog, including high and critical gates.
	assert.Equal(t, "Move pharma stock", sel.Measures[2].Action)
}

func TestSelect_BoundaryAt25(t *testing.T) {
	// fire=25 does not clear the strict >25 gate.
	for _, combined := range []float64{20, 30} {
		sel := Select(siteWithRisks(25, 10, combined), catalog())
		if combined < 25 {
			assert.Nil(t, sel, "combined %v", combined)
		} else {
			require.NotNil(t, sel, fmt.Sprintf("combined %v", combined))
			assert.Equal(t, "combined", sel.HazardType)
		}
	}
}
