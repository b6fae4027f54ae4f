package ports

import (
	"context"
	"errors"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
)

var (
	ErrNotFound = errors.New("follow-up not found")
	// ErrAlreadyExists is returned when a sale already has an unresolved task.
	ErrAlreadyExists = errors.New("follow-up already open for sale")
)

// ListFilter narrows a listing. Zero values match everything.
type ListFilter struct {
	Assignee string
	Status   domain.Status
	// Active restricts the result to unresolved tasks.
	Active bool
}

// Repository persists follow-up tasks.
type Repository interface {
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// FindBySale returns the unresolved task of the sale, or its most recently updated one.
	FindBySale(ctx context.Context, saleID string) (*domain.Task, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Task, error)
}
