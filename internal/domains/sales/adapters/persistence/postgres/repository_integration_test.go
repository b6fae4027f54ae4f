//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

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

	salespostgres "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/persistence/postgres"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
	"github.com/Apurer/sales-backoffice/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func newSale(t *testing.T, id string, product domain.ProductType, created time.Time) *domain.Sale {
	t.Helper()
	sale, err := domain.NewSale(domain.SaleDraft{
		ID:           id,
		ProductType:  product,
		UnitPrice:    250,
		Quantity:     2,
		CustomerName: "Ana Souza",
		CreatedAt:    created,
	}, created)
	require.NoError(t, err)
	return sale
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := salespostgres.NewRepository(db)
	ctx := context.Background()
	created := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	saved, err := repo.Save(ctx, newSale(t, "sale-1", domain.ProductPortability, created))
	require.NoError(t, err)
	assert.False(t, saved.Metadata.UpdatedAt.IsZero())

	loaded, err := repo.GetByID(ctx, "sale-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProductPortability, loaded.Entity.ProductType)
	assert.Equal(t, domain.CommercialInitial, loaded.Entity.CommercialStatus)
	assert.Equal(t, 500.0, loaded.Entity.TotalValue())
	assert.True(t, created.Equal(loaded.Entity.CreatedAt))
}

func TestPostgresRepository_UpdateKeepsCreatedAt(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := salespostgres.NewRepository(db)
	ctx := context.Background()
	sale := newSale(t, "sale-1", domain.ProductNewLine, time.Now().UTC().Add(-48*time.Hour))
	first, err := repo.Save(ctx, sale)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	cancelled := domain.CommercialCancelled
	require.NoError(t, sale.UpdateStatuses(domain.StatusChange{Commercial: &cancelled}))
	updated, err := repo.Save(ctx, sale)
	require.NoError(t, err)

	assert.Equal(t, domain.CommercialCancelled, updated.Entity.CommercialStatus)
	assert.Equal(t, first.Metadata.CreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())
	assert.True(t, updated.Metadata.UpdatedAt.After(first.Metadata.UpdatedAt))
}

func TestPostgresRepository_ListAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := salespostgres.NewRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"s-1", "s-2", "s-3"} {
		product := domain.ProductNewLine
		if i%2 == 0 {
			product = domain.ProductPortability
		}
		_, err := repo.Save(ctx, newSale(t, id, product, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s-1", all[0].Entity.ID)

	ported, err := repo.List(ctx, ports.ListFilter{ProductTypes: []domain.ProductType{domain.ProductPortability}})
	require.NoError(t, err)
	assert.Len(t, ported, 2)

	require.NoError(t, repo.Delete(ctx, "s-2"))
	_, err = repo.GetByID(ctx, "s-2")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "s-2"), ports.ErrNotFound)
}
