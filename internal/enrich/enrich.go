// Package enrich merges forecast sites with business metadata. It is the one
// place defaults are applied; downstream code never sees absent attributes.
package enrich

import "github.com/riskradar-team/go-riskradar/internal/models"

// Enrich builds the unified site view: forecast fields (identity, geo,
// hazard) are taken from the input site, business attributes come from the
// metadata record for the same name, with defaults for anything absent.
// Pure and idempotent: re-enriching an already enriched site with the same
// metadata yields an identical result.
func Enrich(site models.Site, metadata map[string]models.BusinessAttributes) models.Site {
	attrs := metadata[site.Name] // zero value when missing, defaults cover it

	out := models.Site{
		Name:  site.Name,
		Lat:   site.Lat,
		Lon:   site.Lon,
		Risks: site.Risks,

		Type:              attrs.Type,
		Criticality:       attrs.Criticality,
		Employees:         attrs.Employees,
		DailyThroughput:   attrs.DailyThroughput,
		InventoryValueEUR: attrs.InventoryValueEUR,
		Vehicles:          attrs.Vehicles,
		GoodsCategories:   attrs.GoodsCategories,
		BackupSites:       attrs.BackupSites,
		SLATier:           attrs.SLATier,
		Region:            attrs.Region,
		Country:           attrs.Country,
	}

	if out.Type == "" {
		out.Type = models.SiteTypeDepot
	}
	if out.Criticality == "" {
		out.Criticality = models.CriticalityMedium
	}
	if out.Vehicles == nil {
		out.Vehicles = map[string]int{}
	}
	if out.GoodsCategories == nil {
		out.GoodsCategories = []string{}
	}
	if out.BackupSites == nil {
		out.BackupSites = []string{}
	}
	if out.SLATier == "" {
		out.SLATier = "standard"
	}
	if out.Region == "" {
		out.Region = "Unknown"
	}

	return out
}

// EnrichAll enriches every forecast site, preserving order.
func EnrichAll(sites []models.Site, metadata map[string]models.BusinessAttributes) []models.Site {
	out := make([]models.Site, 0, len(sites))
	for _, s := range sites {
		out = append(out, Enrich(s, metadata))
	}
	return out
}
