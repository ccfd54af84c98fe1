package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskradar-team/go-riskradar/internal/config"
	"github.com/riskradar-team/go-riskradar/internal/models"
)

const forecastJSON = `{
	"generated_at": "2026-01-25T06:00:00Z",
	"sites": [
		{"name": "Hub Süd", "lat": 48.1, "lon": 11.6,
		 "risks": {"fire": {"score": 62}, "quake": {"score": 12}, "combined": {"score": 58}}},
		{"name": "Depot Nord", "lat": 53.5, "lon": 10.0,
		 "risks": {"fire": {"score": 8}, "quake": {"score": 4}, "combined": {"score": 9}}}
	]
}`

const summaryJSON = `{"model_version": "v3", "sites_total": 2}`

const metadataJSON = `{
	"sites": {
		"Hub Süd": {"type": "hub", "criticality": "critical", "inventory_value_eur": 90000000}
	}
}`

func writeDocs(t *testing.T, docs map[string]string) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return config.DataConfig{
		Dir:           dir,
		ForecastPath:  filepath.Join(dir, "forecast_data.json"),
		SummaryPath:   filepath.Join(dir, "forecast_metadata.json"),
		MetadataPath:  filepath.Join(dir, "site_metadata.json"),
		PlaybooksPath: filepath.Join(dir, "playbooks.json"),
		EventsPath:    filepath.Join(dir, "events_data.json"),
	}
}

func TestLoader_FullLoad(t *testing.T) {
	paths := writeDocs(t, map[string]string{
		"forecast_data.json":     forecastJSON,
		"forecast_metadata.json": summaryJSON,
		"site_metadata.json":     metadataJSON,
		"playbooks.json":         `{"playbooks": {"fire": {"name": "Fire response", "measures": [], "checklist": []}}}`,
		"events_data.json":       `{"fires": [], "earthquakes": []}`,
	})

	snap, err := NewLoader(paths, nil).Load()
	require.NoError(t, err)

	require.Len(t, snap.Sites, 2)
	assert.Equal(t, models.SiteTypeHub, snap.Sites[0].Type)
	assert.Equal(t, models.CriticalityCritical, snap.Sites[0].Criticality)
	// Depot Nord has no metadata record: defaults apply.
	assert.Equal(t, models.SiteTypeDepot, snap.Sites[1].Type)
	assert.Equal(t, "standard", snap.Sites[1].SLATier)

	assert.Contains(t, snap.Playbooks, "fire")
	assert.Equal(t, "v3", snap.Summary["model_version"])
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoader_MissingMandatoryFails(t *testing.T) {
	paths := writeDocs(t, map[string]string{
		"forecast_metadata.json": summaryJSON,
	})

	_, err := NewLoader(paths, nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forecast_data")
}

func TestLoader_MalformedForecastFails(t *testing.T) {
	paths := writeDocs(t, map[string]string{
		"forecast_data.json":     `{"generated_at": "2026-01-25"}`, // no sites array
		"forecast_metadata.json": summaryJSON,
	})

	_, err := NewLoader(paths, nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing sites array")
}

func TestLoader_OptionalFallbacksAreTyped(t *testing.T) {
	// Only the mandatory documents exist; everything optional must come back
	// as a typed empty, never nil.
	paths := writeDocs(t, map[string]string{
		"forecast_data.json":     forecastJSON,
		"forecast_metadata.json": summaryJSON,
	})

	snap, err := NewLoader(paths, nil).Load()
	require.NoError(t, err)

	assert.NotNil(t, snap.Metadata.Sites)
	assert.NotNil(t, snap.Playbooks)
	assert.NotNil(t, snap.Events.Fires)
	assert.NotNil(t, snap.Events.Earthquakes)
	assert.Empty(t, snap.Playbooks)
}

func TestLoader_MalformedOptionalFallsBack(t *testing.T) {
	paths := writeDocs(t, map[string]string{
		"forecast_data.json":     forecastJSON,
		"forecast_metadata.json": summaryJSON,
		"playbooks.json":         `{"playbooks": [`,
	})

	snap, err := NewLoader(paths, nil).Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Playbooks)
}

func TestStore_SwapIsWholesale(t *testing.T) {
	first := &Snapshot{Sites: []models.Site{{Name: "A"}}}
	second := &Snapshot{Sites: []models.Site{{Name: "B"}, {Name: "C"}}}

	store := NewStore(first)
	assert.Len(t, store.Get().Sites, 1)

	store.Set(second)
	assert.Len(t, store.Get().Sites, 2)
	// The first snapshot is untouched by the swap.
	assert.Equal(t, "A", first.Sites[0].Name)
}
