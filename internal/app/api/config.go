package api

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

const defaultSnapshotCacheTTL = 5 * time.Second

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	// SnapshotCacheTTL bounds how long sale listings are served from cache. Zero disables caching.
	SnapshotCacheTTL time.Duration
	LogLevel         slog.Level
}

// LoadConfig loads an optional .env file, reads environment variables, applies defaults, and
// validates basic constraints.
func LoadConfig() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SnapshotCacheTTL:  defaultSnapshotCacheTTL,
		LogLevel:          slog.LevelInfo,
	}
	if raw := strings.TrimSpace(os.Getenv("SALES_SNAPSHOT_CACHE_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 {
			return Config{}, fmt.Errorf("SALES_SNAPSHOT_CACHE_TTL_SECONDS must be a non-negative integer")
		}
		cfg.SnapshotCacheTTL = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		level, err := ParseLogLevel(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

// ParseLogLevel accepts debug, info, warn or error in any case.
func ParseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is invalid: %w", raw, err)
	}
	return level, nil
}

// loadDotEnv reads .env from the working directory, then from its parent. A missing file is fine.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := godotenv.Load("../.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
