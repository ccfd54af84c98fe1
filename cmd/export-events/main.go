package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/riskradar-team/go-riskradar/internal/config"
	"github.com/riskradar-team/go-riskradar/internal/ingestion"
	"github.com/riskradar-team/go-riskradar/internal/logging"
	"github.com/riskradar-team/go-riskradar/internal/observability"
	"github.com/riskradar-team/go-riskradar/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Event export starting",
		"days", cfg.Export.Days,
		"min_magnitude", cfg.Export.MinMagnitude,
		"output", cfg.Export.OutputPath,
	)

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		logging.Fatalf("Failed to create data dir: %v", err)
	}

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize detection cache: %v", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := observability.NewMetrics()
	exporter := ingestion.NewExporter(cfg, db, metrics, nil)

	doc, err := exporter.Run(ctx)
	if err != nil {
		logging.Fatalf("Export failed: %v", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logging.Fatalf("Failed to encode feed: %v", err)
	}
	if err := os.WriteFile(cfg.Export.OutputPath, data, 0o644); err != nil {
		logging.Fatalf("Failed to write %s: %v", cfg.Export.OutputPath, err)
	}

	slog.Info("export complete",
		"fires", len(doc.Fires),
		"earthquakes", len(doc.Earthquakes),
		"path", cfg.Export.OutputPath,
	)
}
