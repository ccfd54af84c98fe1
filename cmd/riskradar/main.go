package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/riskradar-team/go-riskradar/internal/api"
	"github.com/riskradar-team/go-riskradar/internal/config"
	"github.com/riskradar-team/go-riskradar/internal/dataset"
	"github.com/riskradar-team/go-riskradar/internal/logging"
	"github.com/riskradar-team/go-riskradar/internal/observability"
	"github.com/riskradar-team/go-riskradar/internal/risk"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	metrics := observability.NewMetrics()
	loader := dataset.NewLoader(cfg.Data, metrics)

	// Mandatory documents gate startup: no partial UI on a failed load.
	snap, err := loader.Load()
	if err != nil {
		logging.Fatalf("Failed to load datasets: %v", err)
	}
	store := dataset.NewStore(snap)

	scorer := risk.NewScorer(cfg.Impact.Variant)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5, 10)) // 5 req/s global limit, burst 10

	handler := api.NewHandler(store, loader, scorer, metrics)
	router.Use(handler.MetricsMiddleware())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
