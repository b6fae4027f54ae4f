package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps follow-up tasks in memory. Stored and returned tasks are deep copies.
type Repository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

func NewRepository() *Repository {
	return &Repository{tasks: map[string]*domain.Task{}}
}

// Save upserts by task ID and rejects a second unresolved task for the same sale.
func (r *Repository) Save(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, errors.New("follow-up id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !task.Closed() {
		for id, other := range r.tasks {
			if id != task.ID && other.SaleID == task.SaleID && !other.Closed() {
				return nil, ports.ErrAlreadyExists
			}
		}
	}
	r.tasks[task.ID] = task.Clone()
	return task.Clone(), nil
}

func (r *Repository) FindBySale(_ context.Context, saleID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *domain.Task
	for _, t := range r.tasks {
		if t.SaleID != saleID {
			continue
		}
		if found == nil || preferred(t, found) {
			found = t
		}
	}
	if found == nil {
		return nil, ports.ErrNotFound
	}
	return found.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Active && t.Closed() {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Assignee != "" && !strings.EqualFold(t.Assignee, filter.Assignee) {
			continue
		}
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// preferred reports whether a should win over b: unresolved first, then latest update.
func preferred(a, b *domain.Task) bool {
	if a.Closed() != b.Closed() {
		return !a.Closed()
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
