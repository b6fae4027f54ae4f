package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
)

func TestSweepRepository_RecentNewestFirstAndBounded(t *testing.T) {
	repo := NewSweepRepository(3)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Record(ctx, &ports.SweepResult{ID: fmt.Sprintf("sw-%d", i), Opened: []string{"s"}}))
	}

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "sw-5", recent[0].ID)
	assert.Equal(t, "sw-3", recent[2].ID)

	recent[0].Opened[0] = "mutated"
	again, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "s", again[0].Opened[0])

	assert.Error(t, repo.Record(ctx, &ports.SweepResult{}))
}

func TestSweepRepository_PruneDropsOlderSweeps(t *testing.T) {
	repo := NewSweepRepository(0)
	ctx := context.Background()
	base := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Record(ctx, &ports.SweepResult{ID: fmt.Sprintf("sw-%d", i), CreatedAt: base.AddDate(0, 0, i)}))
	}

	removed, err := repo.Prune(ctx, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "sw-3", recent[0].ID)
	assert.Equal(t, "sw-2", recent[1].ID)
}
