package repository

import (
	"context"
	"time"

	"github.com/riskradar-team/go-riskradar/internal/models"
)

// Filter narrows list queries over the cached raw events.
type Filter struct {
	Since        *time.Time
	MinMagnitude *float64
	Limit        int
}

// EventRepository caches raw detections between exporter runs so repeated
// fetches of overlapping windows stay deduplicated.
type EventRepository interface {
	AddDetection(ctx context.Context, d *models.FireDetection) error
	DetectionExists(ctx context.Context, id string) (bool, error)
	ListDetections(ctx context.Context, opts Filter) ([]models.FireDetection, error)

	AddQuake(ctx context.Context, q *models.QuakeRecord) error
	QuakeExists(ctx context.Context, id string) (bool, error)
	ListQuakes(ctx context.Context, opts Filter) ([]models.QuakeRecord, error)
}
