package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
)

// Service implements the follow-up use cases.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Open(ctx context.Context, saleID, reason string) (*domain.Task, bool, error) {
	saleID = strings.TrimSpace(saleID)
	if active, err := s.active(ctx, saleID); err == nil {
		return active, false, nil
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, false, err
	}
	task, err := domain.NewTask(s.newID(), saleID, reason, s.now().UTC())
	if err != nil {
		return nil, false, mapError(err)
	}
	saved, err := s.repo.Save(ctx, task)
	if errors.Is(err, ports.ErrAlreadyExists) {
		// Lost a race with a concurrent opener; hand back the winner.
		active, err := s.active(ctx, saleID)
		return active, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return saved, true, nil
}

func (s *Service) Assign(ctx context.Context, saleID, assignee string) (*domain.Task, error) {
	return s.mutate(ctx, saleID, func(t *domain.Task, now time.Time) error {
		return t.Assign(assignee, now)
	})
}

func (s *Service) AddNote(ctx context.Context, saleID, author, body string) (*domain.Task, error) {
	return s.mutate(ctx, saleID, func(t *domain.Task, now time.Time) error {
		return t.AddNote(author, body, now)
	})
}

func (s *Service) Resolve(ctx context.Context, saleID string) (*domain.Task, error) {
	return s.mutate(ctx, saleID, func(t *domain.Task, now time.Time) error {
		t.Resolve(now)
		return nil
	})
}

func (s *Service) GetBySale(ctx context.Context, saleID string) (*domain.Task, error) {
	saleID = strings.TrimSpace(saleID)
	if saleID == "" {
		return nil, mapError(domain.ErrEmptySaleID)
	}
	return s.repo.FindBySale(ctx, saleID)
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	filter.Assignee = strings.TrimSpace(filter.Assignee)
	return s.repo.List(ctx, filter)
}

// mutate applies fn to the unresolved task of the sale and persists it.
func (s *Service) mutate(ctx context.Context, saleID string, fn func(*domain.Task, time.Time) error) (*domain.Task, error) {
	task, err := s.active(ctx, strings.TrimSpace(saleID))
	if err != nil {
		return nil, err
	}
	if err := fn(task, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, task)
}

func (s *Service) active(ctx context.Context, saleID string) (*domain.Task, error) {
	if saleID == "" {
		return nil, mapError(domain.ErrEmptySaleID)
	}
	task, err := s.repo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if task.Closed() {
		return nil, ports.ErrNotFound
	}
	return task, nil
}

var _ ports.Service = (*Service)(nil)
