package triage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

func TestEvaluate_EmptyCollectionIsZeroGuarded(t *testing.T) {
	report := New(asOf).Evaluate(nil)
	require.Equal(t, asOf, report.AsOf)
	require.Empty(t, report.Results)
	require.Zero(t, report.Metrics.TotalCases)
	require.Zero(t, report.Metrics.AvgValue)
	require.Zero(t, report.Metrics.UrgencyRate)
	require.False(t, math.IsNaN(report.Metrics.AvgValue))
	require.Len(t, report.BucketCounts, len(Buckets))
	for _, b := range Buckets {
		require.Zero(t, report.BucketCounts[b])
	}
}

func TestEvaluate_AggregatesSinglePass(t *testing.T) {
	sales := []*domain.Sale{
		sale("cancelled", withCommercial(domain.CommercialCancelled), withValue(5000)),
		sale("pending", withCommercial(domain.CommercialPending), withAge(day)),
		sale("completed", withValue(200), withLogistic(domain.LogisticInTransit)),
		sale("broken", withCommercial(""), withValue(math.NaN())),
	}
	report := New(asOf).Evaluate(sales)

	require.Len(t, report.Results, 4)
	for i, s := range sales {
		require.Equal(t, s.ID, report.Results[i].SaleID)
	}
	m := report.Metrics
	require.Equal(t, 4, m.TotalCases)
	require.Equal(t, 1, m.HighPriorityCount)
	require.Equal(t, 1, m.MediumPriorityCount)
	require.Equal(t, 2, m.NormalPriorityCount)
	require.Equal(t, 1, m.PendingCount)
	require.Equal(t, 1, m.CancelledCount)
	require.Equal(t, 1, m.UnclassifiableCount)
	require.InDelta(t, 5300, m.TotalValue, 1e-9)
	require.InDelta(t, 1325, m.AvgValue, 1e-9)
	require.InDelta(t, 25, m.UrgencyRate, 1e-9)
	require.Equal(t, 1, report.BucketCounts[BucketUndeliveredNewLine])
	require.Equal(t, 3, report.BucketCounts[BucketNone])
}

func TestSummarize_MatchesEvaluate(t *testing.T) {
	sales := []*domain.Sale{
		sale("one", withValue(19.99)),
		sale("two", withValue(0.01)),
		sale("three", withValue(0.1), withCommercial(domain.CommercialPending), withAge(10*day)),
	}
	report := New(asOf).Evaluate(sales)
	metrics, buckets := Summarize(report.Results)
	require.Equal(t, report.Metrics, metrics)
	require.Equal(t, report.BucketCounts, buckets)
	require.InDelta(t, 20.10, metrics.TotalValue, 1e-9)
	require.InDelta(t, 6.70, metrics.AvgValue, 1e-9)
	require.InDelta(t, 33.33, metrics.UrgencyRate, 1e-9)
}

func TestEvaluate_RoundsRatiosToCents(t *testing.T) {
	cases := []struct {
		name        string
		sales       []*domain.Sale
		avgValue    float64
		urgencyRate float64
	}{
		{
			name: "one third",
			sales: []*domain.Sale{
				sale("a", withCommercial(domain.CommercialCancelled), withValue(50)),
				sale("b", withValue(25)),
				sale("c", withValue(25)),
			},
			avgValue:    33.33,
			urgencyRate: 33.33,
		},
		{
			name: "two thirds",
			sales: []*domain.Sale{
				sale("a", withCommercial(domain.CommercialCancelled), withValue(100)),
				sale("b", withCommercial(domain.CommercialCancelled), withValue(100)),
				sale("c", withValue(0)),
			},
			avgValue:    66.67,
			urgencyRate: 66.67,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(asOf).Evaluate(tc.sales).Metrics
			require.Equal(t, tc.avgValue, m.AvgValue)
			require.Equal(t, tc.urgencyRate, m.UrgencyRate)
		})
	}
}
