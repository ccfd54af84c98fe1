package models

// Document envelopes, one typed struct per input JSON file. Validation and
// defaulting happen at the boundary (dataset loader and enricher), never in
// rendering code.

// ForecastDocument is forecast_data.json. Sites carry only the forecast
// subset of Site fields; the enricher fills in business attributes.
type ForecastDocument struct {
	GeneratedAt string `json:"generated_at"`
	Sites       []Site `json:"sites"`
}

// SummaryDocument is forecast_metadata.json: summary statistics consumed
// for display only, passed through untouched.
type SummaryDocument map[string]any

// MetadataDocument is site_metadata.json.
type MetadataDocument struct {
	Sites              map[string]BusinessAttributes `json:"sites"`
	CriticalityWeights map[string]float64            `json:"criticality_weights,omitempty"`
}

// PlaybooksDocument is playbooks.json, keyed by hazard type.
type PlaybooksDocument struct {
	Playbooks map[string]Playbook `json:"playbooks"`
}

// DataRange declares the window the event feed covers.
type DataRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days,omitempty"`
}

type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// EventStatistics is the summary block the exporter writes alongside the
// event lists.
type EventStatistics struct {
	TotalFires               int        `json:"total_fires"`
	TotalEarthquakes         int        `json:"total_earthquakes"`
	FireBrightnessRange      ValueRange `json:"fire_brightness_range"`
	EarthquakeMagnitudeRange ValueRange `json:"earthquake_magnitude_range"`
}

// EventsDocument is events_data.json.
type EventsDocument struct {
	GeneratedAt string           `json:"generated_at,omitempty"`
	DataRange   *DataRange       `json:"data_range,omitempty"`
	Statistics  *EventStatistics `json:"statistics,omitempty"`
	Fires       []FireEvent      `json:"fires"`
	Earthquakes []QuakeEvent     `json:"earthquakes"`
}
