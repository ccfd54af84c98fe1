package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/riskradar-team/go-riskradar/internal/models"
)

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}
type usgsProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // unix millis
	Type  string  `json:"type"`
}
type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// fetchUSGS queries the USGS event API for the window and maps each feature
// to a raw quake record.
func (e *Exporter) fetchUSGS(ctx context.Context, start, end time.Time) ([]*models.QuakeRecord, error) {
	q := url.Values{}
	q.Set("format", "geojson")
	q.Set("starttime", start.Format("2006-01-02"))
	q.Set("endtime", end.Format("2006-01-02"))
	q.Set("minmagnitude", fmt.Sprintf("%g", e.cfg.Export.MinMagnitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.Export.USGSURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	quakes := make([]*models.QuakeRecord, 0, len(data.Features))
	for _, f := range data.Features {
		if len(f.Geometry.Coordinates) < 3 {
			continue
		}
		quakes = append(quakes, &models.QuakeRecord{
			ID:         "usgs_" + f.ID,
			Lon:        f.Geometry.Coordinates[0],
			Lat:        f.Geometry.Coordinates[1],
			Depth:      f.Geometry.Coordinates[2],
			Magnitude:  f.Properties.Mag,
			Place:      f.Properties.Place,
			OccurredAt: time.UnixMilli(f.Properties.Time).UTC(),
			CreatedAt:  time.Now(),
		})
	}

	return quakes, nil
}
