package models

type SiteType string

const (
	SiteTypeHub            SiteType = "hub"
	SiteTypeDepot          SiteType = "depot"
	SiteTypeSortierzentrum SiteType = "sortierzentrum"
)

// KnownSiteTypes lists every type the network uses, in display order.
var KnownSiteTypes = []SiteType{SiteTypeHub, SiteTypeDepot, SiteTypeSortierzentrum}

type Criticality string

const (
	CriticalityCritical Criticality = "critical"
	CriticalityHigh     Criticality = "high"
	CriticalityMedium   Criticality = "medium"
	CriticalityLow      Criticality = "low"
)

// RiskScore is a probability-like hazard value in [0,100], computed upstream.
type RiskScore struct {
	Score float64 `json:"score"`
}

// RiskScores carries the per-hazard scores for a site. Combined is
// authoritative input and not required to be a function of fire and quake.
type RiskScores struct {
	Fire     RiskScore `json:"fire"`
	Quake    RiskScore `json:"quake"`
	Combined RiskScore `json:"combined"`
}

// BusinessAttributes is the per-site record from site_metadata.json.
// Zero values mean "absent"; the enricher applies the documented defaults.
type BusinessAttributes struct {
	Type              SiteType       `json:"type,omitempty"`
	Criticality       Criticality    `json:"criticality,omitempty"`
	Employees         int            `json:"employees,omitempty"`
	DailyThroughput   float64        `json:"daily_throughput,omitempty"`
	InventoryValueEUR float64        `json:"inventory_value_eur,omitempty"`
	Vehicles          map[string]int `json:"vehicles,omitempty"`
	GoodsCategories   []string       `json:"goods_categories,omitempty"`
	BackupSites       []string       `json:"backup_sites,omitempty"`
	SLATier           string         `json:"sla_tier,omitempty"`
	Region            string         `json:"region,omitempty"`
	Country           string         `json:"country,omitempty"`
}

// Site is one logistics location: forecast fields (identity, geo, hazard)
// merged with business attributes. Built once per snapshot, immutable after.
type Site struct {
	Name  string     `json:"name"`
	Lat   float64    `json:"lat"`
	Lon   float64    `json:"lon"`
	Risks RiskScores `json:"risks"`

	Type              SiteType       `json:"type"`
	Criticality       Criticality    `json:"criticality"`
	Employees         int            `json:"employees"`
	DailyThroughput   float64        `json:"daily_throughput"`
	InventoryValueEUR float64        `json:"inventory_value_eur"`
	Vehicles          map[string]int `json:"vehicles"`
	GoodsCategories   []string       `json:"goods_categories"`
	BackupSites       []string       `json:"backup_sites"`
	SLATier           string         `json:"sla_tier"`
	Region            string         `json:"region"`
	Country           string         `json:"country"`
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (s *Site) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  s.Lat,
		Longitude: s.Lon,
	}
}
