package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	backofficepostgres "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/sales-backoffice/internal/platform/postgres"
)

const defaultRetention = 90 * 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot prune sweeps")
	}

	cutoff := time.Now().UTC().Add(-retentionFromEnv())
	removed, err := backofficepostgres.NewSweepRepository(db).Prune(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to prune sweeps: %v", err)
	}
	logger.Info("sweep prune completed", slog.Int64("removed", removed), slog.Time("cutoff", cutoff))
}

func retentionFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("TRIAGE_SWEEP_RETENTION_DAYS"))
	if raw == "" {
		return defaultRetention
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultRetention
	}
	return time.Duration(days) * 24 * time.Hour
}
