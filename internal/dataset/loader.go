// Package dataset loads the five static JSON documents into an immutable
// snapshot. Forecast data and the forecast summary are mandatory; the rest
// degrade to typed empty defaults so nothing downstream ever sees a nil
// document.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/riskradar-team/go-riskradar/internal/config"
	"github.com/riskradar-team/go-riskradar/internal/enrich"
	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/observability"
)

// Snapshot is the complete application state for one load: raw documents
// plus the enriched site collection. Replaced wholesale on reload, never
// partially mutated.
type Snapshot struct {
	LoadedAt time.Time

	Forecast  models.ForecastDocument
	Summary   models.SummaryDocument
	Metadata  models.MetadataDocument
	Playbooks map[string]models.Playbook
	Events    models.EventsDocument

	// Sites is Forecast.Sites enriched with Metadata, in forecast order.
	Sites []models.Site
}

type Loader struct {
	paths   config.DataConfig
	metrics *observability.Metrics
}

func NewLoader(paths config.DataConfig, metrics *observability.Metrics) *Loader {
	return &Loader{paths: paths, metrics: metrics}
}

// Load reads all documents concurrently and assembles a snapshot. A missing
// or malformed mandatory document fails the whole load; optional documents
// fall back to typed empties with a warning.
func (l *Loader) Load() (*Snapshot, error) {
	snap := &Snapshot{}

	var (
		wg                      sync.WaitGroup
		forecastErr, summaryErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		forecastErr = l.loadMandatory("forecast_data", l.paths.ForecastPath, &snap.Forecast)
	}()
	go func() {
		defer wg.Done()
		summaryErr = l.loadMandatory("forecast_metadata", l.paths.SummaryPath, &snap.Summary)
	}()
	go func() {
		defer wg.Done()
		l.loadOptional("site_metadata", l.paths.MetadataPath, &snap.Metadata)
	}()
	go func() {
		defer wg.Done()
		var doc models.PlaybooksDocument
		l.loadOptional("playbooks", l.paths.PlaybooksPath, &doc)
		snap.Playbooks = doc.Playbooks
	}()
	go func() {
		defer wg.Done()
		l.loadOptional("events_data", l.paths.EventsPath, &snap.Events)
	}()
	wg.Wait()

	if forecastErr != nil {
		return nil, forecastErr
	}
	if summaryErr != nil {
		return nil, summaryErr
	}
	if snap.Forecast.Sites == nil {
		l.countLoad("forecast_data", "error")
		return nil, errors.New("forecast_data: missing sites array")
	}

	// Typed empties for everything the optional loads left nil.
	if snap.Summary == nil {
		snap.Summary = models.SummaryDocument{}
	}
	if snap.Metadata.Sites == nil {
		snap.Metadata.Sites = map[string]models.BusinessAttributes{}
	}
	if snap.Playbooks == nil {
		snap.Playbooks = map[string]models.Playbook{}
	}
	if snap.Events.Fires == nil {
		snap.Events.Fires = []models.FireEvent{}
	}
	if snap.Events.Earthquakes == nil {
		snap.Events.Earthquakes = []models.QuakeEvent{}
	}

	snap.Sites = enrich.EnrichAll(snap.Forecast.Sites, snap.Metadata.Sites)
	snap.LoadedAt = time.Now()

	if l.metrics != nil {
		l.metrics.SnapshotSites.Set(float64(len(snap.Sites)))
		l.metrics.SnapshotLoadedAt.Set(float64(snap.LoadedAt.Unix()))
	}

	slog.Info("snapshot loaded",
		"sites", len(snap.Sites),
		"playbooks", len(snap.Playbooks),
		"fires", len(snap.Events.Fires),
		"earthquakes", len(snap.Events.Earthquakes),
	)

	return snap, nil
}

func (l *Loader) loadMandatory(name, path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		l.countLoad(name, "error")
		return fmt.Errorf("%s: reading %s: %w", name, path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		l.countLoad(name, "error")
		return fmt.Errorf("%s: decoding %s: %w", name, path, err)
	}
	l.countLoad(name, "ok")
	return nil
}

func (l *Loader) loadOptional(name, path string, dst any) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.countLoad(name, "fallback")
		slog.Warn("optional document unavailable, using empty default", "document", name, "error", err)
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		l.countLoad(name, "fallback")
		slog.Warn("optional document malformed, using empty default", "document", name, "error", err)
		return
	}
	l.countLoad(name, "ok")
}

func (l *Loader) countLoad(name, outcome string) {
	if l.metrics != nil {
		l.metrics.DatasetLoads.WithLabelValues(name, outcome).Inc()
	}
}
