package triage

import (
	"sort"
	"strings"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

// SortResults orders results by priority, then oldest sale first, then sale ID.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i], results[j])
	})
}

func less(a, b Result) bool {
	if ra, rb := a.Priority.rank(), b.Priority.rank(); ra != rb {
		return ra < rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.SaleID < b.SaleID
}

// Filter narrows a classified collection the way the dashboards do. Empty fields match all.
type Filter struct {
	Priorities            []Priority
	Buckets               []Bucket
	ProductTypes          []domain.ProductType
	Assignee              string
	Search                string
	ExcludeUnclassifiable bool
}

// Matches reports whether the sale, its classification and its follow-up assignee pass the filter.
func (f Filter) Matches(sale *domain.Sale, result Result, assignee string) bool {
	if f.ExcludeUnclassifiable && result.Unclassifiable {
		return false
	}
	if len(f.Priorities) > 0 && !contains(f.Priorities, result.Priority) {
		return false
	}
	if len(f.Buckets) > 0 && !contains(f.Buckets, result.Bucket) {
		return false
	}
	if sale == nil {
		return len(f.ProductTypes) == 0 && f.Assignee == "" && f.Search == ""
	}
	if len(f.ProductTypes) > 0 && !contains(f.ProductTypes, sale.ProductType) {
		return false
	}
	if f.Assignee != "" && !strings.EqualFold(f.Assignee, assignee) {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		return matchesSearch(sale, needle)
	}
	return true
}

func matchesSearch(sale *domain.Sale, needle string) bool {
	for _, field := range []string{sale.ID, sale.CustomerName, sale.PhoneNumber, sale.PlanName, sale.Seller} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
