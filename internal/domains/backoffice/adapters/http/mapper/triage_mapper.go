package mapper

import (
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	salesmapper "github.com/Apurer/sales-backoffice/internal/domains/sales/adapters/http/mapper"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

// Classification is the HTTP representation of a triage result.
type Classification struct {
	SaleID         string  `json:"saleId"`
	Priority       string  `json:"priority"`
	Reason         string  `json:"reason"`
	Bucket         string  `json:"bucket"`
	Unclassifiable bool    `json:"unclassifiable"`
	AgeDays        int     `json:"ageDays"`
	TotalValue     float64 `json:"totalValue"`
}

type ClassifiedSale struct {
	Sale     salesmapper.Sale `json:"sale"`
	Triage   Classification   `json:"triage"`
	Assignee string           `json:"assignee"`
}

type Metrics struct {
	TotalCases          int     `json:"totalCases"`
	HighPriorityCount   int     `json:"highPriorityCount"`
	MediumPriorityCount int     `json:"mediumPriorityCount"`
	NormalPriorityCount int     `json:"normalPriorityCount"`
	PendingCount        int     `json:"pendingCount"`
	CancelledCount      int     `json:"cancelledCount"`
	UnclassifiableCount int     `json:"unclassifiableCount"`
	TotalValue          float64 `json:"totalValue"`
	AvgValue            float64 `json:"avgValue"`
	UrgencyRate         float64 `json:"urgencyRate"`
}

type Queue struct {
	AsOf         time.Time        `json:"asOf"`
	Items        []ClassifiedSale `json:"items"`
	Metrics      Metrics          `json:"metrics"`
	BucketCounts map[string]int   `json:"bucketCounts"`
}

type Summary struct {
	AsOf         time.Time      `json:"asOf"`
	Metrics      Metrics        `json:"metrics"`
	BucketCounts map[string]int `json:"bucketCounts"`
}

type Sweep struct {
	ID        string    `json:"id"`
	AsOf      time.Time `json:"asOf"`
	Metrics   Metrics   `json:"metrics"`
	Opened    []string  `json:"opened"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report is a classified batch with its aggregates.
type Report struct {
	AsOf         time.Time        `json:"asOf"`
	Results      []Classification `json:"results"`
	Metrics      Metrics          `json:"metrics"`
	BucketCounts map[string]int   `json:"bucketCounts"`
}

// SweepRequest is the optional body of a sweep trigger.
type SweepRequest struct {
	AsOf *time.Time `json:"asOf,omitempty"`
}

func FromResult(r triage.Result) Classification {
	return Classification{
		SaleID:         r.SaleID,
		Priority:       string(r.Priority),
		Reason:         r.Reason,
		Bucket:         string(r.Bucket),
		Unclassifiable: r.Unclassifiable,
		AgeDays:        r.AgeDays,
		TotalValue:     r.TotalValue,
	}
}

func FromClassifiedSale(c ports.ClassifiedSale) ClassifiedSale {
	return ClassifiedSale{
		Sale:     salesmapper.FromDomainSale(c.Sale),
		Triage:   FromResult(c.Result),
		Assignee: c.Assignee,
	}
}

func FromMetrics(m triage.Metrics) Metrics {
	return Metrics(m)
}

func FromBuckets(counts map[triage.Bucket]int) map[string]int {
	out := make(map[string]int, len(counts))
	for b, n := range counts {
		out[string(b)] = n
	}
	return out
}

func FromQueue(q *ports.Queue) Queue {
	items := make([]ClassifiedSale, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, FromClassifiedSale(item))
	}
	return Queue{AsOf: q.AsOf, Items: items, Metrics: FromMetrics(q.Metrics), BucketCounts: FromBuckets(q.BucketCounts)}
}

func FromReport(r triage.Report) Report {
	results := make([]Classification, 0, len(r.Results))
	for _, res := range r.Results {
		results = append(results, FromResult(res))
	}
	return Report{AsOf: r.AsOf, Results: results, Metrics: FromMetrics(r.Metrics), BucketCounts: FromBuckets(r.BucketCounts)}
}

func FromSummary(s *ports.Summary) Summary {
	return Summary{AsOf: s.AsOf, Metrics: FromMetrics(s.Metrics), BucketCounts: FromBuckets(s.BucketCounts)}
}

func FromSweep(s *ports.SweepResult) Sweep {
	opened := s.Opened
	if opened == nil {
		opened = []string{}
	}
	return Sweep{ID: s.ID, AsOf: s.AsOf, Metrics: FromMetrics(s.Metrics), Opened: opened, CreatedAt: s.CreatedAt}
}

func FromSweeps(list []*ports.SweepResult) []Sweep {
	out := make([]Sweep, 0, len(list))
	for _, s := range list {
		if s != nil {
			out = append(out, FromSweep(s))
		}
	}
	return out
}
