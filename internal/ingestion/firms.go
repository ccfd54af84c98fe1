package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskradar-team/go-riskradar/internal/models"
)

// FIRMS numeric confidence thresholds for the low/nominal/high ranks.
const (
	confidenceNominalMin = 30
	confidenceHighMin    = 80
)

var confidenceLabels = [3]string{"low", "nominal", "high"}

// confidenceRank normalizes the FIRMS confidence column, which mixes
// letters, words and percentages across satellite products.
func confidenceRank(value string) int {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "high", "h":
		return 2
	case "nominal", "n":
		return 1
	case "low", "l", "":
		return 0
	}
	score, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	switch {
	case score >= confidenceHighMin:
		return 2
	case score >= confidenceNominalMin:
		return 1
	default:
		return 0
	}
}

// fetchFIRMS downloads the area CSV and parses each row into a raw
// detection. Rows with unparseable coordinates or dates are skipped.
func (e *Exporter) fetchFIRMS(ctx context.Context) ([]*models.FireDetection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.cfg.Export.FIRMSURL, nil)
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

	return parseFIRMSCSV(resp.Body)
}

func parseFIRMSCSV(r io.Reader) ([]*models.FireDetection, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"latitude", "longitude", "brightness", "acq_date"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV missing column %q", required)
		}
	}

	var detections []*models.FireDetection
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(field(record, col, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(record, col, "longitude"), 64)
		brightness, brErr := strconv.ParseFloat(field(record, col, "brightness"), 64)
		if latErr != nil || lonErr != nil || brErr != nil {
			continue
		}

		acqDate := field(record, col, "acq_date")
		acqTime := field(record, col, "acq_time")
		acquired, ok := parseAcquisition(acqDate, acqTime)
		if !ok {
			continue
		}

		d := &models.FireDetection{
			ID:         fmt.Sprintf("firms_%.4f_%.4f_%s_%s", lat, lon, acqDate, acqTime),
			Lat:        lat,
			Lon:        lon,
			Brightness: brightness,
			Confidence: field(record, col, "confidence"),
			AcquiredAt: acquired,
			CreatedAt:  time.Now(),
		}
		if frp, err := strconv.ParseFloat(field(record, col, "frp"), 64); err == nil {
			d.FRP = frp
			d.HasFRP = true
		}
		detections = append(detections, d)
	}

	return detections, nil
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseAcquisition combines acq_date (YYYY-MM-DD) with acq_time (HHMM, may
// be short of leading zeros).
func parseAcquisition(date, hhmm string) (time.Time, bool) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	if hhmm == "" {
		return day, true
	}
	for len(hhmm) < 4 {
		hhmm = "0" + hhmm
	}
	hour, err1 := strconv.Atoi(hhmm[:2])
	minute, err2 := strconv.Atoi(hhmm[2:])
	if err1 != nil || err2 != nil || hour > 23 || minute > 59 {
		return day, true
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), true
}
