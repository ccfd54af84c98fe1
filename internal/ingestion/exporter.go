// Package ingestion regenerates the historical event feed: it fetches USGS
// earthquakes and FIRMS fire detections for the trailing window, dedupes
// them through the sqlite cache, and assembles events_data.json.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskradar-team/go-riskradar/internal/config"
	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/observability"
	"github.com/riskradar-team/go-riskradar/internal/repository"
	"github.com/riskradar-team/go-riskradar/internal/worker"
)

type Exporter struct {
	cfg     *config.Config
	repo    repository.EventRepository
	metrics *observability.Metrics
	clock   clockwork.Clock
	client  *http.Client
}

func NewExporter(cfg *config.Config, repo repository.EventRepository, metrics *observability.Metrics, clock clockwork.Clock) *Exporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Exporter{
		cfg:     cfg,
		repo:    repo,
		metrics: metrics,
		clock:   clock,
		client:  &http.Client{Timeout: cfg.Export.HTTPTimeout},
	}
}

// Run executes one full export: fetch, cache, aggregate, assemble. The
// returned document is ready to be written as events_data.json.
func (e *Exporter) Run(ctx context.Context) (*models.EventsDocument, error) {
	started := e.clock.Now()
	end := started.UTC()
	start := end.AddDate(0, 0, -e.cfg.Export.Days)

	quakes, err := e.fetchUSGS(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching USGS events: %w", err)
	}
	slog.Info("fetched earthquakes", "count", len(quakes))

	var detections []*models.FireDetection
	if e.cfg.Export.FIRMSURL != "" {
		detections, err = e.fetchFIRMS(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching FIRMS detections: %w", err)
		}
		slog.Info("fetched fire detections", "count", len(detections))
	} else {
		slog.Warn("FIRMS_URL not configured, exporting without fire detections")
	}

	if err := e.cache(ctx, detections, quakes); err != nil {
		return nil, err
	}

	doc, err := e.assemble(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.ExportedEvents.WithLabelValues("fire").Add(float64(len(doc.Fires)))
		e.metrics.ExportedEvents.WithLabelValues("quake").Add(float64(len(doc.Earthquakes)))
		e.metrics.ExportDuration.Observe(e.clock.Since(started).Seconds())
	}

	return doc, nil
}

// cache pushes every fetched record through the worker pool into the
// repository, skipping rows already seen in a previous run.
func (e *Exporter) cache(ctx context.Context, detections []*models.FireDetection, quakes []*models.QuakeRecord) error {
	processor := func(ctx context.Context, job any) error {
		switch v := job.(type) {
		case *models.FireDetection:
			exists, err := e.repo.DetectionExists(ctx, v.ID)
			if err != nil {
				slog.Error("error checking detection", "id", v.ID, "error", err)
				return err
			}
			if exists {
				return nil
			}
			if err := e.repo.AddDetection(ctx, v); err != nil {
				slog.Error("error adding detection", "id", v.ID, "error", err)
				return err
			}
		case *models.QuakeRecord:
			exists, err := e.repo.QuakeExists(ctx, v.ID)
			if err != nil {
				slog.Error("error checking quake", "id", v.ID, "error", err)
				return err
			}
			if exists {
				return nil
			}
			if err := e.repo.AddQuake(ctx, v); err != nil {
				slog.Error("error adding quake", "id", v.ID, "error", err)
				return err
			}
		}
		return nil
	}

	pool := worker.NewPool(e.cfg.Worker.Count, e.cfg.Worker.BufferSize, processor)
	pool.Start(ctx)
	for _, d := range detections {
		pool.Submit(d)
	}
	for _, q := range quakes {
		pool.Submit(q)
	}
	pool.Stop()

	return ctx.Err()
}

// assemble reads the window back from the cache and builds the feed
// envelope.
func (e *Exporter) assemble(ctx context.Context, start, end time.Time) (*models.EventsDocument, error) {
	detections, err := e.repo.ListDetections(ctx, repository.Filter{Since: &start})
	if err != nil {
		return nil, fmt.Errorf("listing cached detections: %w", err)
	}

	minMag := e.cfg.Export.MinMagnitude
	records, err := e.repo.ListQuakes(ctx, repository.Filter{Since: &start, MinMagnitude: &minMag})
	if err != nil {
		return nil, fmt.Errorf("listing cached quakes: %w", err)
	}

	fires := aggregateFires(detections)

	earthquakes := make([]models.QuakeEvent, 0, len(records))
	for _, q := range records {
		earthquakes = append(earthquakes, models.QuakeEvent{
			Lat:       round4(q.Lat),
			Lon:       round4(q.Lon),
			Date:      q.OccurredAt.UTC().Format(time.RFC3339),
			Magnitude: round1(q.Magnitude),
			Depth:     round1(q.Depth),
			Place:     q.Place,
			Type:      "earthquake",
		})
	}

	doc := &models.EventsDocument{
		GeneratedAt: end.Format(time.RFC3339),
		DataRange: &models.DataRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
			Days:  e.cfg.Export.Days,
		},
		Statistics:  buildStatistics(fires, earthquakes),
		Fires:       fires,
		Earthquakes: earthquakes,
	}

	return doc, nil
}

func buildStatistics(fires []models.FireEvent, earthquakes []models.QuakeEvent) *models.EventStatistics {
	stats := &models.EventStatistics{
		TotalFires:       len(fires),
		TotalEarthquakes: len(earthquakes),
	}
	for i, f := range fires {
		if i == 0 {
			stats.FireBrightnessRange = models.ValueRange{Min: f.Brightness, Max: f.Brightness}
			continue
		}
		stats.FireBrightnessRange.Min = min(stats.FireBrightnessRange.Min, f.Brightness)
		stats.FireBrightnessRange.Max = max(stats.FireBrightnessRange.Max, f.Brightness)
	}
	for i, q := range earthquakes {
		if i == 0 {
			stats.EarthquakeMagnitudeRange = models.ValueRange{Min: q.Magnitude, Max: q.Magnitude}
			continue
		}
		stats.EarthquakeMagnitudeRange.Min = min(stats.EarthquakeMagnitudeRange.Min, q.Magnitude)
		stats.EarthquakeMagnitudeRange.Max = max(stats.EarthquakeMagnitudeRange.Max, q.Magnitude)
	}
	return stats
}
