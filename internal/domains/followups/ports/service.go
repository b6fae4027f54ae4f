package ports

import (
	"context"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
)

// Service exposes the follow-up use cases.
type Service interface {
	// Open returns the unresolved task of the sale, creating one when none exists. opened is true
	// only when a new task was created.
	Open(ctx context.Context, saleID, reason string) (task *domain.Task, opened bool, err error)
	Assign(ctx context.Context, saleID, assignee string) (*domain.Task, error)
	AddNote(ctx context.Context, saleID, author, body string) (*domain.Task, error)
	Resolve(ctx context.Context, saleID string) (*domain.Task, error)
	GetBySale(ctx context.Context, saleID string) (*domain.Task, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Task, error)
}
