package ingestion

import (
	"math"
	"sort"

	"github.com/riskradar-team/go-riskradar/internal/models"
)

// Detections are aggregated to 0.1 degree grid cells to keep the feed small
// while preserving the statistics the history view needs.
const gridDegrees = 0.1

type gridKey struct {
	lat, lon float64
}

type gridCell struct {
	maxBrightness float64
	sumBrightness float64
	count         int
	maxFRP        float64
	hasFRP        bool
	first, last   string // acquisition days, YYYY-MM-DD
	maxRank       int
}

// aggregateFires groups raw detections into grid cells and emits one fire
// event per cell.
func aggregateFires(detections []models.FireDetection) []models.FireEvent {
	cells := make(map[gridKey]*gridCell)

	for _, d := range detections {
		key := gridKey{lat: snapToGrid(d.Lat), lon: snapToGrid(d.Lon)}
		day := d.AcquiredAt.Format("2006-01-02")

		cell, ok := cells[key]
		if !ok {
			cell = &gridCell{first: day, last: day}
			cells[key] = cell
		}

		cell.count++
		cell.sumBrightness += d.Brightness
		cell.maxBrightness = math.Max(cell.maxBrightness, d.Brightness)
		if d.HasFRP {
			cell.maxFRP = math.Max(cell.maxFRP, d.FRP)
			cell.hasFRP = true
		}
		if day < cell.first {
			cell.first = day
		}
		if day > cell.last {
			cell.last = day
		}
		if rank := confidenceRank(d.Confidence); rank > cell.maxRank {
			cell.maxRank = rank
		}
	}

	fires := make([]models.FireEvent, 0, len(cells))
	for key, cell := range cells {
		f := models.FireEvent{
			Lat:           round1(key.lat),
			Lon:           round1(key.lon),
			Date:          cell.last,
			DateFirst:     cell.first,
			Brightness:    round1(cell.maxBrightness),
			BrightnessAvg: round1(cell.sumBrightness / float64(cell.count)),
			Count:         cell.count,
			Confidence:    confidenceLabels[cell.maxRank],
		}
		if cell.hasFRP {
			frp := round1(cell.maxFRP)
			f.FRP = &frp
		}
		fires = append(fires, f)
	}

	// Map iteration order is random; keep the feed diffable between runs.
	sort.Slice(fires, func(i, j int) bool {
		if fires[i].Lat != fires[j].Lat {
			return fires[i].Lat < fires[j].Lat
		}
		return fires[i].Lon < fires[j].Lon
	})

	return fires
}

func snapToGrid(deg float64) float64 {
	return math.Round(deg/gridDegrees) * gridDegrees
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
