package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	salesmemory "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/memory"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

// countingRepo counts List calls so cache hits can be asserted.
type countingRepo struct {
	*salesmemory.Repository
	lists int
}

func (r *countingRepo) List(ctx context.Context, filter ports.ListFilter) ([]*ports.SaleProjection, error) {
	r.lists++
	return r.Repository.List(ctx, filter)
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
}

func TestCreateSale_GeneratesIDAndPersists(t *testing.T) {
	svc := NewService(salesmemory.NewRepository(), WithClock(fixedClock), WithIDGenerator(func() string { return "generated-1" }))

	saved, err := svc.CreateSale(context.Background(), domain.SaleDraft{ProductType: domain.ProductPortability, UnitPrice: 49.9, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, "generated-1", saved.Entity.ID)
	require.Equal(t, fixedClock(), saved.Entity.CreatedAt)

	loaded, err := svc.GetSale(context.Background(), "generated-1")
	require.NoError(t, err)
	require.Equal(t, saved.Entity, loaded.Entity)
}

func TestCreateSale_InvalidInput(t *testing.T) {
	svc := NewService(salesmemory.NewRepository())
	_, err := svc.CreateSale(context.Background(), domain.SaleDraft{ProductType: domain.ProductNewLine})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateSale_DuplicateID(t *testing.T) {
	svc := NewService(salesmemory.NewRepository())
	draft := domain.SaleDraft{ID: "dup", ProductType: domain.ProductNewLine, Quantity: 1}
	_, err := svc.CreateSale(context.Background(), draft)
	require.NoError(t, err)
	_, err = svc.CreateSale(context.Background(), draft)
	require.ErrorIs(t, err, ports.ErrAlreadyExists)
}

func TestUpdateStatuses(t *testing.T) {
	svc := NewService(salesmemory.NewRepository())
	ctx := context.Background()
	_, err := svc.CreateSale(ctx, domain.SaleDraft{ID: "s1", ProductType: domain.ProductPortability, Quantity: 1})
	require.NoError(t, err)

	pin := domain.LinePendingPortability
	updated, err := svc.UpdateStatuses(ctx, "s1", domain.StatusChange{Line: &pin})
	require.NoError(t, err)
	require.Equal(t, domain.LinePendingPortability, updated.Entity.LineStatus)

	bad := domain.LogisticStatus("LOST_IN_SPACE")
	_, err = svc.UpdateStatuses(ctx, "s1", domain.StatusChange{Logistic: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatuses(ctx, "missing", domain.StatusChange{Line: &pin})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListSales_SnapshotCacheFlushedOnWrite(t *testing.T) {
	repo := &countingRepo{Repository: salesmemory.NewRepository()}
	svc := NewService(repo, WithSnapshotCache(time.Minute))
	ctx := context.Background()

	_, err := svc.CreateSale(ctx, domain.SaleDraft{ID: "a", ProductType: domain.ProductNewLine, Quantity: 1})
	require.NoError(t, err)

	first, err := svc.ListSales(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Entity.CustomerName = "mutated by caller"

	second, err := svc.ListSales(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.lists)
	require.Empty(t, second[0].Entity.CustomerName)

	cancelled := domain.CommercialCancelled
	_, err = svc.UpdateStatuses(ctx, "a", domain.StatusChange{Commercial: &cancelled})
	require.NoError(t, err)

	third, err := svc.ListSales(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, repo.lists)
	require.Equal(t, domain.CommercialCancelled, third[0].Entity.CommercialStatus)
}

func TestListSales_FiltersAndDelete(t *testing.T) {
	svc := NewService(salesmemory.NewRepository())
	ctx := context.Background()
	_, err := svc.CreateSale(ctx, domain.SaleDraft{ID: "p", ProductType: domain.ProductPortability, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CreateSale(ctx, domain.SaleDraft{ID: "n", ProductType: domain.ProductNewLine, Quantity: 1})
	require.NoError(t, err)

	list, err := svc.ListSales(ctx, ports.ListFilter{ProductTypes: []domain.ProductType{domain.ProductPortability}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "p", list[0].Entity.ID)

	require.NoError(t, svc.DeleteSale(ctx, "p"))
	require.ErrorIs(t, svc.DeleteSale(ctx, "p"), ports.ErrNotFound)
}
