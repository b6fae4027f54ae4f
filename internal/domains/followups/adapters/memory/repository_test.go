package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
)

func TestRepository_RejectsSecondActiveTaskPerSale(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	first, _ := domain.NewTask("t1", "sale", "", now)
	_, err := repo.Save(ctx, first)
	require.NoError(t, err)

	second, _ := domain.NewTask("t2", "sale", "", now)
	_, err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)

	first.Resolve(now.Add(time.Minute))
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	found, err := repo.FindBySale(ctx, "sale")
	require.NoError(t, err)
	assert.Equal(t, "t2", found.ID)
}

func TestRepository_FindBySaleMissing(t *testing.T) {
	_, err := NewRepository().FindBySale(context.Background(), "none")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
