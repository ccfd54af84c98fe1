package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Impact  ImpactConfig
	Export  ExportConfig
	Worker  WorkerConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// DataConfig points at the five static JSON documents the dashboard
// consumes. Paths default to <Dir>/<file> unless overridden individually.
type DataConfig struct {
	Dir           string
	ForecastPath  string
	SummaryPath   string
	MetadataPath  string
	PlaybooksPath string
	EventsPath    string
}

type ImpactConfig struct {
	Variant string // "breakdown" or "legacy"
}

// ExportConfig drives cmd/export-events.
type ExportConfig struct {
	Days         int
	MinMagnitude float64
	USGSURL      string
	FIRMSURL     string
	OutputPath   string
	HTTPTimeout  time.Duration
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

func Load() (*Config, error) {
	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Data: DataConfig{
			Dir:           dataDir,
			ForecastPath:  getEnv("FORECAST_PATH", filepath.Join(dataDir, "forecast_data.json")),
			SummaryPath:   getEnv("SUMMARY_PATH", filepath.Join(dataDir, "forecast_metadata.json")),
			MetadataPath:  getEnv("SITE_METADATA_PATH", filepath.Join(dataDir, "site_metadata.json")),
			PlaybooksPath: getEnv("PLAYBOOKS_PATH", filepath.Join(dataDir, "playbooks.json")),
			EventsPath:    getEnv("EVENTS_PATH", filepath.Join(dataDir, "events_data.json")),
		},
		Impact: ImpactConfig{
			Variant: getEnv("IMPACT_SCORER", "breakdown"),
		},
		Export: ExportConfig{
			Days:         getEnvInt("EXPORT_HISTORY_DAYS", 90),
			MinMagnitude: getEnvFloat("EXPORT_MIN_MAGNITUDE", 2.5),
			USGSURL:      getEnv("USGS_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
			FIRMSURL:     getEnv("FIRMS_URL", ""),
			OutputPath:   getEnv("EXPORT_OUTPUT_PATH", filepath.Join(dataDir, "events_data.json")),
			HTTPTimeout:  getEnvDuration("EXPORT_HTTP_TIMEOUT", 30*time.Second),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 64),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", filepath.Join(dataDir, "events-cache.db")),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Impact.Variant != "breakdown" && c.Impact.Variant != "legacy" {
		return fmt.Errorf("invalid impact scorer variant: %s", c.Impact.Variant)
	}

	if c.Export.Days < 1 {
		return fmt.Errorf("export history days must be at least 1")
	}
	if c.Export.HTTPTimeout < time.Second {
		return fmt.Errorf("export HTTP timeout must be at least 1 second")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
