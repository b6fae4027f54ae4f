package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
	"github.com/Apurer/sales-backoffice/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory sale persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	sales map[string]*entry
	now   func() time.Time
}

type entry struct {
	sale    domain.Sale
	created time.Time
	updated time.Time
}

func NewRepository() *Repository {
	return &Repository{sales: map[string]*entry{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save stores the sale as-is. Write-side validation belongs to the application service, so
// tests can seed malformed rows.
func (r *Repository) Save(_ context.Context, sale *domain.Sale) (*ports.SaleProjection, error) {
	if sale == nil {
		return nil, errors.New("sale is nil")
	}
	if sale.ID == "" {
		return nil, errors.New("sale id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	current, ok := r.sales[sale.ID]
	if !ok {
		current = &entry{created: now}
		r.sales[sale.ID] = current
	}
	current.sale = *sale
	current.updated = now
	return current.project(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*ports.SaleProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	current, ok := r.sales[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return current.project(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

// List returns matching sales ordered by creation time then ID.
func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*ports.SaleProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*ports.SaleProjection, 0, len(r.sales))
	for _, current := range r.sales {
		if !matches(filter, &current.sale) {
			continue
		}
		list = append(list, current.project())
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Entity, list[j].Entity
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return list, nil
}

func (e *entry) project() *ports.SaleProjection {
	clone := e.sale
	return projection.New(&clone, e.created, e.updated)
}

func matches(filter ports.ListFilter, sale *domain.Sale) bool {
	if len(filter.ProductTypes) > 0 {
		found := false
		for _, p := range filter.ProductTypes {
			if p == sale.ProductType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.CommercialStatuses) > 0 {
		for _, st := range filter.CommercialStatuses {
			if st == sale.CommercialStatus {
				return true
			}
		}
		return false
	}
	return true
}
