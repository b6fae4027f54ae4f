package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
)

var _ ports.SweepRepository = (*SweepRepository)(nil)

// SweepRepository keeps the sweep audit trail in memory, bounded to capacity entries.
type SweepRepository struct {
	mu       sync.RWMutex
	records  []ports.SweepResult
	capacity int
}

// NewSweepRepository keeps at most capacity sweeps; non-positive means 100.
func NewSweepRepository(capacity int) *SweepRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &SweepRepository{capacity: capacity}
}

func (r *SweepRepository) Record(_ context.Context, result *ports.SweepResult) error {
	if result == nil || result.ID == "" {
		return errors.New("sweep id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, clone(result))
	if over := len(r.records) - r.capacity; over > 0 {
		r.records = append([]ports.SweepResult(nil), r.records[over:]...)
	}
	return nil
}

func (r *SweepRepository) Recent(_ context.Context, limit int) ([]*ports.SweepResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ports.SweepResult, 0, min(limit, len(r.records)))
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		c := clone(&r.records[i])
		out = append(out, &c)
	}
	return out, nil
}

func (r *SweepRepository) Prune(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, rec := range r.records {
		if !rec.CreatedAt.Before(cutoff) {
			kept = append(kept, rec)
		}
	}
	removed := int64(len(r.records) - len(kept))
	r.records = kept
	return removed, nil
}

func clone(in *ports.SweepResult) ports.SweepResult {
	out := *in
	out.Opened = append([]string{}, in.Opened...)
	return out
}
