package ports

import (
	"context"
	"errors"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/shared/projection"
)

var (
	ErrNotFound      = errors.New("sale not found")
	ErrAlreadyExists = errors.New("sale already exists")
)

// SaleProjection is a sale plus its persistence metadata.
type SaleProjection = projection.Projection[*domain.Sale]

// ListFilter narrows a listing. Empty slices match everything.
type ListFilter struct {
	ProductTypes       []domain.ProductType
	CommercialStatuses []domain.CommercialStatus
}

// Repository persists sales.
type Repository interface {
	Save(ctx context.Context, sale *domain.Sale) (*SaleProjection, error)
	GetByID(ctx context.Context, id string) (*SaleProjection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*SaleProjection, error)
}
