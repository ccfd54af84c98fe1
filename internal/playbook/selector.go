// Package playbook picks response measures for a site's dominant hazard.
package playbook

import (
	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/risk"
)

// maxMeasures caps how many filtered measures a selection carries; catalog
// order is preserved, never re-sorted.
const maxMeasures = 4

// Selection is a renderable playbook: the catalog entry plus the measures
// applicable at the site's current severity. Checklist is always complete;
// truncation is a display concern.
type Selection struct {
	HazardType  string           `json:"hazard_type"` // fire | quake | combined
	Severity    risk.Level       `json:"severity"`
	PrimaryRisk float64          `json:"primary_risk"`
	Playbook    models.Playbook  `json:"playbook"`
	Measures    []models.Measure `json:"measures"`
	Checklist   []string         `json:"checklist"`
}

// Select picks the dominant hazard, derives severity, and filters the
// catalog down to actionable measures. Returns nil when severity is low
// (playbooks only surface for medium and above) or when the catalog has no
// entry for the hazard type.
//
// Dominance requires a strict win above 25: ties, and the case where both
// hazards exceed 25 without one dominating, fall through to combined. That
// ordering is intentional.
func Select(site models.Site, catalog map[string]models.Playbook) *Selection {
	fire := site.Risks.Fire.Score
	quake := site.Risks.Quake.Score

	hazardType := "combined"
	primary := site.Risks.Combined.Score
	switch {
	case fire > quake && fire > 25:
		hazardType = "fire"
		primary = fire
	case quake > fire && quake > 25:
		hazardType = "quake"
		primary = quake
	}

	severity := risk.Classify(primary)
	if severity == risk.LevelLow {
		return nil
	}

	pb, ok := catalog[hazardType]
	if !ok {
		return nil
	}

	measures := make([]models.Measure, 0, maxMeasures)
	for _, m := range pb.Measures {
		if risk.ParseLevel(m.SeverityMin).Rank() > severity.Rank() {
			continue
		}
		measures = append(measures, m)
		if len(measures) == maxMeasures {
			break
		}
	}

	return &Selection{
		HazardType:  hazardType,
		Severity:    severity,
		PrimaryRisk: primary,
		Playbook:    pb,
		Measures:    measures,
		Checklist:   pb.Checklist,
	}
}
