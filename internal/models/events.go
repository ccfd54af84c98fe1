package models

import "time"

// FireEvent is one grid-aggregated FIRMS cell from events_data.json.
// Date is the last detection day in the cell; DateFirst the earliest.
type FireEvent struct {
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Date          string   `json:"date"`
	DateFirst     string   `json:"date_first,omitempty"`
	Brightness    float64  `json:"brightness"`     // max brightness in the cell, Kelvin
	BrightnessAvg float64  `json:"brightness_avg"` // mean brightness in the cell
	FRP           *float64 `json:"frp,omitempty"`  // max fire radiative power, MW
	Count         int      `json:"count"`          // detections aggregated into the cell
	Confidence    string   `json:"confidence"`     // low | nominal | high
}

// QuakeEvent is one USGS earthquake from events_data.json.
type QuakeEvent struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Date      string  `json:"date"` // ISO timestamp or date-only
	Magnitude float64 `json:"magnitude"`
	Depth     float64 `json:"depth"` // km
	Place     string  `json:"place"`
	Type      string  `json:"type,omitempty"`
}

// FireDetection is one raw FIRMS detection row, cached by the exporter
// before grid aggregation.
type FireDetection struct {
	ID         string // synthesized from coordinates and acquisition time
	Lat        float64
	Lon        float64
	Brightness float64
	FRP        float64 // 0 when the source omits it
	HasFRP     bool
	Confidence string // raw source value, numeric or letter
	AcquiredAt time.Time
	CreatedAt  time.Time
}

// QuakeRecord is one raw USGS earthquake, cached by the exporter.
type QuakeRecord struct {
	ID         string // source event id, prefixed "usgs_"
	Lat        float64
	Lon        float64
	Magnitude  float64
	Depth      float64
	Place      string
	OccurredAt time.Time
	CreatedAt  time.Time
}
