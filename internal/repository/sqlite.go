package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/riskradar-team/go-riskradar/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS fire_detections (
			id TEXT PRIMARY KEY,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			brightness REAL NOT NULL,
			frp REAL,
			confidence TEXT,
			acquired_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS quake_events (
			id TEXT PRIMARY KEY,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			magnitude REAL NOT NULL,
			depth REAL NOT NULL,
			place TEXT,
			occurred_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fire_detections_acquired_at ON fire_detections(acquired_at);
		CREATE INDEX IF NOT EXISTS idx_quake_events_occurred_at ON quake_events(occurred_at);
		CREATE INDEX IF NOT EXISTS idx_quake_events_magnitude ON quake_events(magnitude);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) AddDetection(ctx context.Context, d *models.FireDetection) error {
	var frp any
	if d.HasFRP {
		frp = d.FRP
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fire_detections (id, latitude, longitude, brightness, frp, confidence, acquired_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		d.ID, d.Lat, d.Lon, d.Brightness, frp, d.Confidence, d.AcquiredAt, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting detection %s: %w", d.ID, err)
	}
	return nil
}

func (s *SQLiteDB) DetectionExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM fire_detections WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking detection %s: %w", id, err)
	}
	return true, nil
}

func (s *SQLiteDB) ListDetections(ctx context.Context, opts Filter) ([]models.FireDetection, error) {
	query := `SELECT id, latitude, longitude, brightness, frp, confidence, acquired_at, created_at
		FROM fire_detections`
	var args []any
	if opts.Since != nil {
		query += ` WHERE acquired_at >= ?`
		args = append(args, *opts.Since)
	}
	query += ` ORDER BY acquired_at`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing detections: %w", err)
	}
	defer rows.Close()

	var detections []models.FireDetection
	for rows.Next() {
		var d models.FireDetection
		var frp sql.NullFloat64
		if err := rows.Scan(&d.ID, &d.Lat, &d.Lon, &d.Brightness, &frp, &d.Confidence, &d.AcquiredAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning detection: %w", err)
		}
		if frp.Valid {
			d.FRP = frp.Float64
			d.HasFRP = true
		}
		detections = append(detections, d)
	}
	return detections, rows.Err()
}

func (s *SQLiteDB) AddQuake(ctx context.Context, q *models.QuakeRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quake_events (id, latitude, longitude, magnitude, depth, place, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		q.ID, q.Lat, q.Lon, q.Magnitude, q.Depth, q.Place, q.OccurredAt, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting quake %s: %w", q.ID, err)
	}
	return nil
}

func (s *SQLiteDB) QuakeExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM quake_events WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking quake %s: %w", id, err)
	}
	return true, nil
}

func (s *SQLiteDB) ListQuakes(ctx context.Context, opts Filter) ([]models.QuakeRecord, error) {
	query := `SELECT id, latitude, longitude, magnitude, depth, place, occurred_at, created_at
		FROM quake_events WHERE 1=1`
	var args []any
	if opts.Since != nil {
		query += ` AND occurred_at >= ?`
		args = append(args, *opts.Since)
	}
	if opts.MinMagnitude != nil {
		query += ` AND magnitude >= ?`
		args = append(args, *opts.MinMagnitude)
	}
	query += ` ORDER BY occurred_at`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing quakes: %w", err)
	}
	defer rows.Close()

	var quakes []models.QuakeRecord
	for rows.Next() {
		var q models.QuakeRecord
		if err := rows.Scan(&q.ID, &q.Lat, &q.Lon, &q.Magnitude, &q.Depth, &q.Place, &q.OccurredAt, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning quake: %w", err)
		}
		quakes = append(quakes, q)
	}
	return quakes, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
