package ports

import (
	"context"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

// Service exposes the sales use cases to adapters.
type Service interface {
	CreateSale(ctx context.Context, draft domain.SaleDraft) (*SaleProjection, error)
	GetSale(ctx context.Context, id string) (*SaleProjection, error)
	ListSales(ctx context.Context, filter ListFilter) ([]*SaleProjection, error)
	UpdateStatuses(ctx context.Context, id string, change domain.StatusChange) (*SaleProjection, error)
	DeleteSale(ctx context.Context, id string) error
}
