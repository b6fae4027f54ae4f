package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

// Priority ranks how urgently the back office must act on a sale.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityNormal Priority = "NORMAL"
)

// rank orders priorities for sorting; lower sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ParsePriority accepts any casing of a known priority.
func ParsePriority(raw string) (Priority, error) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(raw))); p {
	case PriorityHigh, PriorityMedium, PriorityNormal:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", raw)
	}
}

// Bucket is an operational work queue.
type Bucket string

const (
	BucketPendingPIN             Bucket = "PENDING_PIN"
	BucketDeliveredPortability   Bucket = "DELIVERED_PORTABILITY"
	BucketUndeliveredPortability Bucket = "UNDELIVERED_PORTABILITY"
	BucketUndeliveredNewLine     Bucket = "UNDELIVERED_NEW_LINE"
	BucketScheduled              Bucket = "SCHEDULED"
	BucketNone                   Bucket = "UNBUCKETED"
)

// Buckets lists every queue in evaluation order, followed by BucketNone.
var Buckets = []Bucket{
	BucketPendingPIN,
	BucketDeliveredPortability,
	BucketUndeliveredPortability,
	BucketUndeliveredNewLine,
	BucketScheduled,
	BucketNone,
}

// ParseBucket accepts any casing of a known bucket.
func ParseBucket(raw string) (Bucket, error) {
	candidate := Bucket(strings.ToUpper(strings.TrimSpace(raw)))
	for _, b := range Buckets {
		if b == candidate {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bucket %q", raw)
}

// Reasons attached to a priority decision.
const (
	ReasonCancelled      = "Cancelled sale — requires analysis"
	ReasonHighValue      = "High value — verification required"
	ReasonStalePending   = "Pending more than 3 days"
	ReasonPending        = "Pending — routine follow-up"
	ReasonMediumValue    = "Medium-high value — standard verification"
	ReasonUnclassifiable = "Unclassifiable: invalid data"
)

// Thresholds used by the priority rules. Comparisons are strict.
const (
	HighValueThreshold   = 1000.0
	MediumValueThreshold = 500.0
	StalePendingDays     = 3
)

// Result is the derived, never persisted classification of one sale.
type Result struct {
	SaleID         string
	Priority       Priority
	Reason         string
	Bucket         Bucket
	Unclassifiable bool
	AgeDays        int

	// Inputs carried for aggregation and ordering.
	TotalValue float64
	Commercial domain.CommercialStatus
	CreatedAt  time.Time
}

// Metrics summarise a collection of classified sales.
type Metrics struct {
	TotalCases          int
	HighPriorityCount   int
	MediumPriorityCount int
	NormalPriorityCount int
	PendingCount        int
	CancelledCount      int
	UnclassifiableCount int
	TotalValue          float64
	AvgValue            float64
	UrgencyRate         float64
}

// Report is the outcome of classifying a batch against a single as-of instant.
type Report struct {
	AsOf         time.Time
	Results      []Result
	Metrics      Metrics
	BucketCounts map[Bucket]int
}
