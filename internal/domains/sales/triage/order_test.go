package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

func TestSortResults_PriorityThenAgeThenID(t *testing.T) {
	results := []Result{
		{SaleID: "n", Priority: PriorityNormal, CreatedAt: asOf.Add(-10 * day)},
		{SaleID: "m-new", Priority: PriorityMedium, CreatedAt: asOf.Add(-time.Hour)},
		{SaleID: "h-b", Priority: PriorityHigh, CreatedAt: asOf.Add(-2 * day)},
		{SaleID: "m-old", Priority: PriorityMedium, CreatedAt: asOf.Add(-3 * day)},
		{SaleID: "h-a", Priority: PriorityHigh, CreatedAt: asOf.Add(-2 * day)},
	}
	SortResults(results)
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.SaleID)
	}
	require.Equal(t, []string{"h-a", "h-b", "m-old", "m-new", "n"}, ids)
}

func TestFilter_Matches(t *testing.T) {
	c := New(asOf)
	s := sale("SALE-77", withCommercial(domain.CommercialCancelled), withProduct(domain.ProductPortability), func(s *domain.Sale) {
		s.CustomerName = "Ana Souza"
		s.PhoneNumber = "+55 11 91234-5678"
	})
	result := c.Classify(s)

	require.True(t, Filter{}.Matches(s, result, "unassigned"))
	require.True(t, Filter{Priorities: []Priority{PriorityHigh}}.Matches(s, result, ""))
	require.False(t, Filter{Priorities: []Priority{PriorityMedium}}.Matches(s, result, ""))
	require.False(t, Filter{Buckets: []Bucket{BucketScheduled}}.Matches(s, result, ""))
	require.True(t, Filter{ProductTypes: []domain.ProductType{domain.ProductPortability}}.Matches(s, result, ""))
	require.True(t, Filter{Assignee: "MARIA"}.Matches(s, result, "maria"))
	require.False(t, Filter{Assignee: "maria"}.Matches(s, result, "joao"))
	require.True(t, Filter{Search: "souza"}.Matches(s, result, ""))
	require.True(t, Filter{Search: "sale-7"}.Matches(s, result, ""))
	require.False(t, Filter{Search: "pereira"}.Matches(s, result, ""))

	broken := c.Classify(nil)
	require.True(t, Filter{}.Matches(nil, broken, ""))
	require.False(t, Filter{ExcludeUnclassifiable: true}.Matches(nil, broken, ""))
	require.False(t, Filter{Search: "x"}.Matches(nil, broken, ""))
}
