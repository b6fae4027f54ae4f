package backofficeserver

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

// splitQuery accepts both repeated parameters and comma-separated values.
func splitQuery(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseAsOf reads the optional asOf parameter. A missing value yields the zero time.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("asOf"))
	if raw == "" {
		return time.Time{}, true
	}
	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondInvalidParam(c, "asOf", errors.New("must be an RFC3339 timestamp"))
		return time.Time{}, false
	}
	return asOf.UTC(), true
}

func parseBool(c *gin.Context, name string) (bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondInvalidParam(c, name, errors.New("must be a boolean"))
		return false, false
	}
	return v, true
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondInvalidParam(c, "limit", errors.New("must be a non-negative integer"))
		return 0, false
	}
	return limit, true
}

func parseProductTypes(c *gin.Context) []domain.ProductType {
	raw := splitQuery(c, "productType")
	out := make([]domain.ProductType, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.ProductType(strings.ToUpper(p)))
	}
	return out
}

// parseTriageFilter reads the dashboard filters shared by the queue and summary endpoints.
func parseTriageFilter(c *gin.Context) (triage.Filter, bool) {
	filter := triage.Filter{
		ProductTypes: parseProductTypes(c),
		Assignee:     strings.TrimSpace(c.Query("assignee")),
		Search:       strings.TrimSpace(c.Query("q")),
	}
	for _, raw := range splitQuery(c, "priority") {
		p, err := triage.ParsePriority(raw)
		if err != nil {
			respondInvalidParam(c, "priority", err)
			return triage.Filter{}, false
		}
		filter.Priorities = append(filter.Priorities, p)
	}
	for _, raw := range splitQuery(c, "bucket") {
		b, err := triage.ParseBucket(raw)
		if err != nil {
			respondInvalidParam(c, "bucket", err)
			return triage.Filter{}, false
		}
		filter.Buckets = append(filter.Buckets, b)
	}
	exclude, ok := parseBool(c, "excludeUnclassifiable")
	if !ok {
		return triage.Filter{}, false
	}
	filter.ExcludeUnclassifiable = exclude
	return filter, true
}
