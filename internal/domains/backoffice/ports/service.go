package ports

import (
	"context"
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

// ClassifiedSale joins a sale with its classification and follow-up assignee.
type ClassifiedSale struct {
	Sale     *domain.Sale
	Result   triage.Result
	Assignee string
}

// QueueQuery selects a view of the classified snapshot. A zero AsOf means now.
type QueueQuery struct {
	Filter triage.Filter
	AsOf   time.Time
}

// Queue is the filtered, ordered triage work list with metrics over the same subset.
type Queue struct {
	AsOf         time.Time
	Items        []ClassifiedSale
	Metrics      triage.Metrics
	BucketCounts map[triage.Bucket]int
}

// Summary is a Queue without its items.
type Summary struct {
	AsOf         time.Time
	Metrics      triage.Metrics
	BucketCounts map[triage.Bucket]int
}

// SweepResult records one sweep over the whole snapshot.
type SweepResult struct {
	ID        string
	AsOf      time.Time
	Metrics   triage.Metrics
	Opened    []string
	CreatedAt time.Time
}

// Service exposes the back-office triage use cases.
type Service interface {
	ClassifySale(ctx context.Context, id string, asOf time.Time) (*ClassifiedSale, error)
	Queue(ctx context.Context, query QueueQuery) (*Queue, error)
	Summary(ctx context.Context, query QueueQuery) (*Summary, error)
	Sweep(ctx context.Context, asOf time.Time) (*SweepResult, error)
	RecentSweeps(ctx context.Context, limit int) ([]*SweepResult, error)
}
