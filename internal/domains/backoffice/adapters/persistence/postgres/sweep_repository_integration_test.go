//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	backofficepostgres "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/persistence/postgres"
	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
	"github.com/Apurer/sales-backoffice/internal/platform/migrations"
)

func TestSweepRepository_RecordAndRecent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	repo := backofficepostgres.NewSweepRepository(db)
	base := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Record(ctx, &ports.SweepResult{
		ID: "sw-1", AsOf: base, CreatedAt: base,
		Metrics: triage.Metrics{TotalCases: 4, HighPriorityCount: 2, TotalValue: 5300, AvgValue: 1325, UrgencyRate: 50},
		Opened:  []string{"s-1", "s-2"},
	}))
	require.NoError(t, repo.Record(ctx, &ports.SweepResult{ID: "sw-2", AsOf: base, CreatedAt: base.Add(time.Minute)}))

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "sw-2", recent[0].ID)
	assert.Empty(t, recent[0].Opened)
	assert.Equal(t, []string{"s-1", "s-2"}, recent[1].Opened)
	assert.Equal(t, 1325.0, recent[1].Metrics.AvgValue)
	assert.True(t, base.Equal(recent[1].AsOf))

	removed, err := repo.Prune(ctx, base.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	recent, err = repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "sw-2", recent[0].ID)
}
