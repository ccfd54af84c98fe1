package api

import (
	"github.com/riskradar-team/go-riskradar/internal/history"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func sitesToGeoJSON(views []siteView) FeatureCollection {
	features := make([]Feature, 0, len(views))

	for _, v := range views {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{v.Lon, v.Lat},
			},
			Properties: map[string]any{
				"name":           v.Name,
				"site_type":      v.Type,
				"criticality":    v.Criticality,
				"fire_score":     v.Risks.Fire.Score,
				"quake_score":    v.Risks.Quake.Score,
				"combined_score": v.Risks.Combined.Score,
				"risk_level":     v.RiskLevel,
				"risk_color":     v.RiskColor,
				"impact_score":   v.Impact.Score,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func firesToGeoJSON(markers []history.FireMarker) FeatureCollection {
	features := make([]Feature, 0, len(markers))

	for _, m := range markers {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Lon, m.Lat},
			},
			Properties: map[string]any{
				"date":       m.Date,
				"brightness": m.Brightness,
				"count":      m.Count,
				"confidence": m.Confidence,
				"radius":     m.Radius,
				"color":      m.Color,
				"severity":   m.Severity,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func quakesToGeoJSON(markers []history.QuakeMarker) FeatureCollection {
	features := make([]Feature, 0, len(markers))

	for _, m := range markers {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Lon, m.Lat},
			},
			Properties: map[string]any{
				"date":      m.Date,
				"magnitude": m.Magnitude,
				"depth":     m.Depth,
				"place":     m.Place,
				"radius":    m.Radius,
				"color":     m.Color,
				"severity":  m.Severity,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
