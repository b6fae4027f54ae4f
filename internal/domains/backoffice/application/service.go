package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	followupsdomain "github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	followupsports "github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
	salesports "github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
	"github.com/Apurer/sales-backoffice/internal/shared/projection"
)

const (
	defaultRecentSweeps = 20
	maxRecentSweeps     = 100
)

// Service classifies the sales snapshot and drives follow-up work from it.
type Service struct {
	sales     salesports.Service
	followUps followupsports.Service
	sweeps    ports.SweepRepository
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

// WithClock overrides the clock read when a call carries no as-of instant.
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

// NewService wires the back-office service. sweeps may be nil when no audit trail is kept.
func NewService(sales salesports.Service, followUps followupsports.Service, sweeps ports.SweepRepository, opts ...Option) *Service {
	s := &Service{sales: sales, followUps: followUps, sweeps: sweeps, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ClassifySale classifies one sale as of asOf.
func (s *Service) ClassifySale(ctx context.Context, id string, asOf time.Time) (*ports.ClassifiedSale, error) {
	current, err := s.sales.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	assignee, err := s.assigneeOf(ctx, current.Entity.ID)
	if err != nil {
		return nil, err
	}
	classifier := triage.New(s.asOf(asOf))
	return &ports.ClassifiedSale{
		Sale:     current.Entity,
		Result:   classifier.Classify(current.Entity),
		Assignee: assignee,
	}, nil
}

// Queue classifies the snapshot, filters it, and orders it for work.
func (s *Service) Queue(ctx context.Context, query ports.QueueQuery) (*ports.Queue, error) {
	classifier := triage.New(s.asOf(query.AsOf))
	items, err := s.classify(ctx, classifier, query.Filter)
	if err != nil {
		return nil, err
	}
	results := make([]triage.Result, 0, len(items))
	byID := make(map[string]ports.ClassifiedSale, len(items))
	for _, item := range items {
		results = append(results, item.Result)
		byID[item.Result.SaleID] = item
	}
	triage.SortResults(results)
	ordered := make([]ports.ClassifiedSale, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, byID[r.SaleID])
	}
	metrics, buckets := triage.Summarize(results)
	return &ports.Queue{AsOf: classifier.AsOf(), Items: ordered, Metrics: metrics, BucketCounts: buckets}, nil
}

// Summary reports metrics and bucket counts over the filtered snapshot.
func (s *Service) Summary(ctx context.Context, query ports.QueueQuery) (*ports.Summary, error) {
	classifier := triage.New(s.asOf(query.AsOf))
	items, err := s.classify(ctx, classifier, query.Filter)
	if err != nil {
		return nil, err
	}
	results := make([]triage.Result, 0, len(items))
	for _, item := range items {
		results = append(results, item.Result)
	}
	metrics, buckets := triage.Summarize(results)
	return &ports.Summary{AsOf: classifier.AsOf(), Metrics: metrics, BucketCounts: buckets}, nil
}

// Sweep classifies the whole snapshot once and opens a follow-up for every HIGH sale that has
// no unresolved task yet. Opened lists the tasks opened by this run. When opening a task fails
// the run is still recorded with what it opened so far, then the error is returned.
func (s *Service) Sweep(ctx context.Context, asOf time.Time) (*ports.SweepResult, error) {
	projections, err := s.sales.ListSales(ctx, salesports.ListFilter{})
	if err != nil {
		return nil, err
	}
	report := triage.New(s.asOf(asOf)).Evaluate(projection.Entities(projections))
	triage.SortResults(report.Results)

	opened := []string{}
	var openErr error
	for _, r := range report.Results {
		if r.Priority != triage.PriorityHigh || r.Unclassifiable {
			continue
		}
		_, created, err := s.followUps.Open(ctx, r.SaleID, r.Reason)
		if err != nil {
			openErr = fmt.Errorf("open follow-up for sale %s: %w", r.SaleID, err)
			break
		}
		if created {
			opened = append(opened, r.SaleID)
		}
	}
	result := &ports.SweepResult{
		ID:        s.newID(),
		AsOf:      report.AsOf,
		Metrics:   report.Metrics,
		Opened:    opened,
		CreatedAt: s.now().UTC(),
	}
	if s.sweeps != nil {
		if err := s.sweeps.Record(ctx, result); err != nil {
			return nil, errors.Join(openErr, err)
		}
	}
	if openErr != nil {
		return nil, openErr
	}
	return result, nil
}

// RecentSweeps lists past sweeps, newest first. limit defaults to 20 and is capped at 100.
func (s *Service) RecentSweeps(ctx context.Context, limit int) ([]*ports.SweepResult, error) {
	if s.sweeps == nil {
		return []*ports.SweepResult{}, nil
	}
	switch {
	case limit <= 0:
		limit = defaultRecentSweeps
	case limit > maxRecentSweeps:
		limit = maxRecentSweeps
	}
	return s.sweeps.Recent(ctx, limit)
}

func (s *Service) classify(ctx context.Context, classifier triage.Classifier, filter triage.Filter) ([]ports.ClassifiedSale, error) {
	projections, err := s.sales.ListSales(ctx, salesports.ListFilter{ProductTypes: filter.ProductTypes})
	if err != nil {
		return nil, err
	}
	assignees, err := s.activeAssignees(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.ClassifiedSale, 0, len(projections))
	for _, p := range projections {
		sale := p.Entity
		if sale == nil {
			continue
		}
		assignee, ok := assignees[sale.ID]
		if !ok {
			assignee = followupsdomain.Unassigned
		}
		result := classifier.Classify(sale)
		if !filter.Matches(sale, result, assignee) {
			continue
		}
		out = append(out, ports.ClassifiedSale{Sale: sale, Result: result, Assignee: assignee})
	}
	return out, nil
}

func (s *Service) activeAssignees(ctx context.Context) (map[string]string, error) {
	tasks, err := s.followUps.List(ctx, followupsports.ListFilter{Active: true})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(tasks))
	for _, t := range tasks {
		out[t.SaleID] = t.Assignee
	}
	return out, nil
}

func (s *Service) assigneeOf(ctx context.Context, saleID string) (string, error) {
	task, err := s.followUps.GetBySale(ctx, saleID)
	if err != nil {
		if errors.Is(err, followupsports.ErrNotFound) {
			return followupsdomain.Unassigned, nil
		}
		return "", err
	}
	if task.Closed() {
		return followupsdomain.Unassigned, nil
	}
	return task.Assignee, nil
}

// asOf pins a zero instant to the clock, read once per call.
func (s *Service) asOf(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return s.now().UTC()
	}
	return asOf.UTC()
}

var _ ports.Service = (*Service)(nil)
