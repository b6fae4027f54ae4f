package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

// Service orchestrates the sales use cases.
type Service struct {
	repo      ports.Repository
	now       func() time.Time
	newID     func() string
	snapshots *cache.Cache
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the time source used to stamp new sales.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how IDs are minted for sales created without one.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithSnapshotCache keeps list results for ttl. A non-positive ttl disables caching.
// Every write through this service flushes the cache.
func WithSnapshotCache(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl <= 0 {
			s.snapshots = nil
			return
		}
		s.snapshots = cache.New(ttl, 2*ttl)
	}
}

// NewService wires the sales service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateSale validates the draft and persists a new sale.
func (s *Service) CreateSale(ctx context.Context, draft domain.SaleDraft) (*ports.SaleProjection, error) {
	if strings.TrimSpace(draft.ID) == "" {
		draft.ID = s.newID()
	}
	sale, err := domain.NewSale(draft, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, sale.ID); err == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrAlreadyExists, sale.ID)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, sale)
	if err != nil {
		return nil, mapError(err)
	}
	s.invalidate()
	return saved, nil
}

// GetSale loads one sale.
func (s *Service) GetSale(ctx context.Context, id string) (*ports.SaleProjection, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// ListSales returns the sales matching the filter, served from the snapshot cache when enabled.
func (s *Service) ListSales(ctx context.Context, filter ports.ListFilter) ([]*ports.SaleProjection, error) {
	key := filterKey(filter)
	if s.snapshots != nil {
		if cached, ok := s.snapshots.Get(key); ok {
			return cloneList(cached.([]*ports.SaleProjection)), nil
		}
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.snapshots != nil {
		s.snapshots.SetDefault(key, cloneList(list))
	}
	return list, nil
}

// UpdateStatuses changes any subset of the three status dimensions.
func (s *Service) UpdateStatuses(ctx context.Context, id string, change domain.StatusChange) (*ports.SaleProjection, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if err := current.Entity.UpdateStatuses(change); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	s.invalidate()
	return saved, nil
}

// DeleteSale removes a sale.
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	if s.snapshots != nil {
		s.snapshots.Flush()
	}
}

func filterKey(filter ports.ListFilter) string {
	products := make([]string, 0, len(filter.ProductTypes))
	for _, p := range filter.ProductTypes {
		products = append(products, string(p))
	}
	statuses := make([]string, 0, len(filter.CommercialStatuses))
	for _, st := range filter.CommercialStatuses {
		statuses = append(statuses, string(st))
	}
	sort.Strings(products)
	sort.Strings(statuses)
	return "sales|" + strings.Join(products, ",") + "|" + strings.Join(statuses, ",")
}

func cloneList(list []*ports.SaleProjection) []*ports.SaleProjection {
	out := make([]*ports.SaleProjection, 0, len(list))
	for _, p := range list {
		if p == nil || p.Entity == nil {
			continue
		}
		sale := *p.Entity
		out = append(out, &ports.SaleProjection{Entity: &sale, Metadata: p.Metadata})
	}
	return out
}

var _ ports.Service = (*Service)(nil)
