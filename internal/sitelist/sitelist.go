// Package sitelist applies the dashboard's inclusion filter and orderings
// over the enriched site collection. Every operation returns a new slice;
// the snapshot stays untouched.
package sitelist

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/risk"
)

// SortKey names an ordering over sites.
type SortKey string

const (
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortRiskAsc    SortKey = "risk-asc"
	SortRiskDesc   SortKey = "risk-desc"
	SortImpactAsc  SortKey = "impact-asc"
	SortImpactDesc SortKey = "impact-desc"
)

// DefaultSort applies when an unrecognized key is supplied.
const DefaultSort = SortRiskDesc

// Filter keeps sites whose type is in the enabled set. A set covering every
// known type passes everything through; an empty intersection yields an
// empty list, not an error.
func Filter(sites []models.Site, enabled map[models.SiteType]bool) []models.Site {
	all := true
	for _, t := range models.KnownSiteTypes {
		if !enabled[t] {
			all = false
			break
		}
	}

	out := make([]models.Site, 0, len(sites))
	for _, s := range sites {
		if all || enabled[s.Type] {
			out = append(out, s)
		}
	}
	return out
}

// Sort orders a copy of sites by the given key. Site names are compared with
// locale collation (the network is German, names carry umlauts); risk and
// impact ties break by collated name so every key is a total order.
func Sort(sites []models.Site, key SortKey, scorer risk.Scorer) []models.Site {
	out := make([]models.Site, len(sites))
	copy(out, sites)

	c := collate.New(language.German)
	byName := func(a, b models.Site) int {
		return c.CompareString(a.Name, b.Name)
	}

	var less func(a, b models.Site) bool
	switch key {
	case SortNameAsc:
		less = func(a, b models.Site) bool { return byName(a, b) < 0 }
	case SortNameDesc:
		less = func(a, b models.Site) bool { return byName(a, b) > 0 }
	case SortRiskAsc:
		less = func(a, b models.Site) bool {
			if a.Risks.Combined.Score != b.Risks.Combined.Score {
				return a.Risks.Combined.Score < b.Risks.Combined.Score
			}
			return byName(a, b) < 0
		}
	case SortImpactAsc, SortImpactDesc:
		impact := make(map[string]float64, len(out))
		for _, s := range out {
			impact[s.Name] = scorer.Assess(s).Score
		}
		asc := key == SortImpactAsc
		less = func(a, b models.Site) bool {
			if impact[a.Name] != impact[b.Name] {
				if asc {
					return impact[a.Name] < impact[b.Name]
				}
				return impact[a.Name] > impact[b.Name]
			}
			return byName(a, b) < 0
		}
	default: // risk-desc, also the fallback for unknown keys
		less = func(a, b models.Site) bool {
			if a.Risks.Combined.Score != b.Risks.Combined.Score {
				return a.Risks.Combined.Score > b.Risks.Combined.Score
			}
			return byName(a, b) < 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ParseSortKey validates a query-string sort key, falling back to the
// default ordering.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc, SortRiskAsc, SortRiskDesc, SortImpactAsc, SortImpactDesc:
		return SortKey(s)
	default:
		return DefaultSort
	}
}
