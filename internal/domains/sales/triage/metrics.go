package triage

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

var hundred = decimal.NewFromInt(100)

// Evaluate classifies every sale once and aggregates the outcome in the same pass.
func (c Classifier) Evaluate(sales []*domain.Sale) Report {
	acc := newAccumulator()
	results := make([]Result, 0, len(sales))
	for _, sale := range sales {
		result := c.Classify(sale)
		acc.add(result)
		results = append(results, result)
	}
	metrics, counts := acc.finish()
	return Report{AsOf: c.asOf, Results: results, Metrics: metrics, BucketCounts: counts}
}

// Summarize aggregates results that were already classified.
func Summarize(results []Result) (Metrics, map[Bucket]int) {
	acc := newAccumulator()
	for _, result := range results {
		acc.add(result)
	}
	return acc.finish()
}

type accumulator struct {
	metrics Metrics
	total   decimal.Decimal
	buckets map[Bucket]int
}

func newAccumulator() *accumulator {
	buckets := make(map[Bucket]int, len(Buckets))
	for _, b := range Buckets {
		buckets[b] = 0
	}
	return &accumulator{total: decimal.Zero, buckets: buckets}
}

func (a *accumulator) add(result Result) {
	a.metrics.TotalCases++
	a.buckets[result.Bucket]++
	if result.Unclassifiable {
		a.metrics.UnclassifiableCount++
		a.metrics.NormalPriorityCount++
		return
	}
	switch result.Priority {
	case PriorityHigh:
		a.metrics.HighPriorityCount++
	case PriorityMedium:
		a.metrics.MediumPriorityCount++
	default:
		a.metrics.NormalPriorityCount++
	}
	switch result.Commercial {
	case domain.CommercialPending:
		a.metrics.PendingCount++
	case domain.CommercialCancelled:
		a.metrics.CancelledCount++
	}
	if finite(result.TotalValue) && result.TotalValue > 0 {
		a.total = a.total.Add(decimal.NewFromFloat(result.TotalValue))
	}
}

func (a *accumulator) finish() (Metrics, map[Bucket]int) {
	m := a.metrics
	m.TotalValue, _ = a.total.Round(2).Float64()
	if m.TotalCases > 0 {
		cases := decimal.NewFromInt(int64(m.TotalCases))
		m.AvgValue, _ = a.total.Div(cases).Round(2).Float64()
		m.UrgencyRate, _ = decimal.NewFromInt(int64(m.HighPriorityCount)).Mul(hundred).Div(cases).Round(2).Float64()
	}
	return m, a.buckets
}
