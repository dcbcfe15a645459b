package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr string

	// Auth: empty disables the bearer check.
	AuthToken string

	LogLevel string

	// Worker pool
	Workers   int
	QueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Extraction defaults
	Profile  string
	Sections bool

	// Job state
	JobTTL           time.Duration
	JobSweepInterval time.Duration

	// Optional downstream sink for completed documents
	SinkURL   string
	SinkToken string

	// Batch runner
	InputDir         string
	OutputDir        string
	BatchConcurrency int

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Addr: envOr("ADDR", ":8090"),

		AuthToken: os.Getenv("AUTH_TOKEN"),

		LogLevel: envOr("LOG_LEVEL", "info"),

		Workers:   envInt("WORKERS", 4),
		QueueSize: envInt("QUEUE_SIZE", 64),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 33554432), // 32MB

		Profile:  envOr("PROFILE", "default"),
		Sections: envBool("SECTIONS", false),

		JobTTL:           envDuration("JOB_TTL", 1*time.Hour),
		JobSweepInterval: envDuration("JOB_SWEEP_INTERVAL", 5*time.Minute),

		SinkURL:   os.Getenv("SINK_URL"),
		SinkToken: os.Getenv("SINK_TOKEN"),

		InputDir:         envOr("INPUT_DIR", "./input"),
		OutputDir:        envOr("OUTPUT_DIR", "./output"),
		BatchConcurrency: envInt("BATCH_CONCURRENCY", 4),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 33554432
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.JobSweepInterval <= 0 {
		cfg.JobSweepInterval = 5 * time.Minute
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Profile {
	case "default", "strict":
	default:
		return fmt.Errorf("PROFILE must be default or strict, got %q", c.Profile)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured LogLevel string to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
