package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/goleak"

	"github.com/riskradar-team/go-riskradar/internal/config"
	"github.com/riskradar-team/go-riskradar/internal/models"
	"github.com/riskradar-team/go-riskradar/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockEventRepo implements repository.EventRepository for testing
type mockEventRepo struct {
	mu         sync.Mutex
	detections map[string]*models.FireDetection
	quakes     map[string]*models.QuakeRecord
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		detections: make(map[string]*models.FireDetection),
		quakes:     make(map[string]*models.QuakeRecord),
	}
}

func (m *mockEventRepo) AddDetection(ctx context.Context, d *models.FireDetection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detections[d.ID] = d
	return nil
}

func (m *mockEventRepo) DetectionExists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.detections[id]
	return ok, nil
}

func (m *mockEventRepo) ListDetections(ctx context.Context, opts repository.Filter) ([]models.FireDetection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FireDetection
	for _, d := range m.detections {
		if opts.Since != nil && d.AcquiredAt.Before(*opts.Since) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockEventRepo) AddQuake(ctx context.Context, q *models.QuakeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quakes[q.ID] = q
	return nil
}

func (m *mockEventRepo) QuakeExists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.quakes[id]
	return ok, nil
}

func (m *mockEventRepo) ListQuakes(ctx context.Context, opts repository.Filter) ([]models.QuakeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.QuakeRecord
	for _, q := range m.quakes {
		if opts.Since != nil && q.OccurredAt.Before(*opts.Since) {
			continue
		}
		if opts.MinMagnitude != nil && q.Magnitude < *opts.MinMagnitude {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

const usgsBody = `{
	"features": [
		{
			"id": "abc123",
			"properties": {"mag": 6.5, "place": "10 km NE of Athens", "time": 1768919400000, "type": "earthquake"},
			"geometry": {"coordinates": [23.7, 37.9, 25.0]}
		},
		{
			"id": "def456",
			"properties": {"mag": 3.2, "place": "Crete region", "time": 1768660200000, "type": "earthquake"},
			"geometry": {"coordinates": [25.1, 35.3, 10.0]}
		}
	]
}`

const firmsBody = `latitude,longitude,brightness,scan,track,acq_date,acq_time,confidence,version,frp,daynight
38.31,23.69,412.5,0.5,0.5,2026-01-20,1312,h,6.1NRT,88.1,D
38.33,23.71,451.0,0.5,0.5,2026-01-21,1150,90,6.1NRT,120.4,D
38.91,23.70,362.0,0.5,0.5,2026-01-19,0215,12,6.1NRT,,N
bogus,23.70,362.0,0.5,0.5,2026-01-19,0215,n,6.1NRT,,N`

func exporterConfig(usgsURL, firmsURL string) *config.Config {
	return &config.Config{
		Export: config.ExportConfig{
			Days:         90,
			MinMagnitude: 2.5,
			USGSURL:      usgsURL,
			FIRMSURL:     firmsURL,
			HTTPTimeout:  5 * time.Second,
		},
		Worker: config.WorkerConfig{Count: 2, BufferSize: 16},
	}
}

func TestExporter_Run(t *testing.T) {
	usgs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "geojson" {
			t.Errorf("expected format=geojson, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(usgsBody))
	}))
	defer usgs.Close()

	firms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(firmsBody))
	}))
	defer firms.Close()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC))
	repo := newMockEventRepo()
	exporter := NewExporter(exporterConfig(usgs.URL, firms.URL), repo, nil, clock)

	doc, err := exporter.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if doc.GeneratedAt == "" || doc.DataRange == nil {
		t.Fatal("expected envelope metadata")
	}
	if doc.DataRange.End != "2026-01-25" || doc.DataRange.Days != 90 {
		t.Errorf("unexpected data range: %+v", doc.DataRange)
	}

	// The bogus CSV row is dropped; three detections in two grid cells.
	if len(doc.Fires) != 2 {
		t.Fatalf("expected 2 fire cells, got %d", len(doc.Fires))
	}
	if doc.Fires[0].Count+doc.Fires[1].Count != 3 {
		t.Errorf("expected 3 detections across cells, got %+v", doc.Fires)
	}

	if len(doc.Earthquakes) != 2 {
		t.Fatalf("expected 2 earthquakes, got %d", len(doc.Earthquakes))
	}
	if doc.Statistics == nil || doc.Statistics.TotalEarthquakes != 2 {
		t.Errorf("unexpected statistics: %+v", doc.Statistics)
	}
	if doc.Statistics.EarthquakeMagnitudeRange.Max != 6.5 {
		t.Errorf("expected max magnitude 6.5, got %v", doc.Statistics.EarthquakeMagnitudeRange.Max)
	}
}

func TestExporter_RunDeduplicatesAcrossRuns(t *testing.T) {
	usgs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(usgsBody))
	}))
	defer usgs.Close()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC))
	repo := newMockEventRepo()
	exporter := NewExporter(exporterConfig(usgs.URL, ""), repo, nil, clock)

	for i := 0; i < 2; i++ {
		if _, err := exporter.Run(context.Background()); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}

	if len(repo.quakes) != 2 {
		t.Errorf("expected 2 cached quakes after two runs, got %d", len(repo.quakes))
	}
}

func TestExporter_USGSErrorFailsRun(t *testing.T) {
	usgs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer usgs.Close()

	exporter := NewExporter(exporterConfig(usgs.URL, ""), newMockEventRepo(), nil, nil)

	if _, err := exporter.Run(context.Background()); err == nil {
		t.Fatal("expected error from failing USGS fetch")
	}
}

func TestParseFIRMSCSV(t *testing.T) {
	detections, err := parseFIRMSCSV(strings.NewReader(firmsBody))
	if err != nil {
		t.Fatalf("parseFIRMSCSV failed: %v", err)
	}
	if len(detections) != 3 {
		t.Fatalf("expected 3 detections (bogus row dropped), got %d", len(detections))
	}

	d := detections[0]
	if d.Lat != 38.31 || d.Brightness != 412.5 {
		t.Errorf("unexpected first detection: %+v", d)
	}
	if !d.HasFRP || d.FRP != 88.1 {
		t.Errorf("expected frp 88.1, got %v (has=%v)", d.FRP, d.HasFRP)
	}
	if d.AcquiredAt.Hour() != 13 || d.AcquiredAt.Minute() != 12 {
		t.Errorf("expected acquisition 13:12, got %v", d.AcquiredAt)
	}
	if detections[2].HasFRP {
		t.Error("expected empty frp column to stay unset")
	}
}

func TestParseFIRMSCSV_MissingColumn(t *testing.T) {
	if _, err := parseFIRMSCSV(strings.NewReader("a,b,c\n1,2,3")); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
