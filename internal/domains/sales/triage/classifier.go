// Package triage classifies sales into priorities and back-office work queues.
//
// Classification is pure: a Classifier holds only the as-of instant it evaluates against, so a
// batch built from one Classifier sees a single consistent "now".
package triage

import (
	"math"
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

const day = 24 * time.Hour

// Classifier evaluates sales against a fixed as-of instant.
type Classifier struct {
	asOf time.Time
}

// New builds a classifier for the given instant.
func New(asOf time.Time) Classifier {
	return Classifier{asOf: asOf}
}

// AsOf returns the instant the classifier evaluates against.
func (c Classifier) AsOf() time.Time {
	return c.asOf
}

// Classify derives priority, reason and bucket for one sale. It never panics; invalid input
// yields a NORMAL, unbucketed result flagged as unclassifiable.
func (c Classifier) Classify(sale *domain.Sale) Result {
	if !classifiable(sale) {
		result := Result{
			Priority:       PriorityNormal,
			Reason:         ReasonUnclassifiable,
			Bucket:         BucketNone,
			Unclassifiable: true,
		}
		if sale != nil {
			result.SaleID = sale.ID
			result.CreatedAt = sale.CreatedAt
		}
		return result
	}
	age := c.ageDays(sale.CreatedAt)
	priority, reason := c.priority(sale, age)
	return Result{
		SaleID:     sale.ID,
		Priority:   priority,
		Reason:     reason,
		Bucket:     bucket(sale),
		AgeDays:    age,
		TotalValue: sale.TotalValue(),
		Commercial: sale.CommercialStatus.Coarse(),
		CreatedAt:  sale.CreatedAt,
	}
}

// Priority returns the priority and reason for one sale.
func (c Classifier) Priority(sale *domain.Sale) (Priority, string) {
	result := c.Classify(sale)
	return result.Priority, result.Reason
}

// Bucket returns the work queue for one sale, BucketNone when it belongs to none.
func (c Classifier) Bucket(sale *domain.Sale) Bucket {
	return c.Classify(sale).Bucket
}

// priority applies the rules in order; the first match wins.
func (c Classifier) priority(sale *domain.Sale, ageDays int) (Priority, string) {
	total := sale.TotalValue()
	stage := sale.CommercialStatus.Coarse()
	switch {
	case stage == domain.CommercialCancelled:
		return PriorityHigh, ReasonCancelled
	case total > HighValueThreshold:
		return PriorityHigh, ReasonHighValue
	case stage == domain.CommercialPending:
		if ageDays > StalePendingDays {
			return PriorityHigh, ReasonStalePending
		}
		return PriorityMedium, ReasonPending
	case total > MediumValueThreshold:
		return PriorityMedium, ReasonMediumValue
	default:
		return PriorityNormal, ""
	}
}

// ageDays counts whole days since creation, clamped at zero for clock skew.
func (c Classifier) ageDays(createdAt time.Time) int {
	elapsed := c.asOf.Sub(createdAt)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / day)
}

// bucket routes a sale to exactly one queue. Order is a business rule: a sale can satisfy
// several loose conditions at once.
func bucket(sale *domain.Sale) Bucket {
	delivered := sale.LogisticStatus.IsDelivered()
	shipped := sale.LogisticStatus != domain.LogisticInitial
	switch {
	case sale.LineStatus == domain.LinePendingPortability:
		return BucketPendingPIN
	case delivered && sale.ProductType == domain.ProductPortability:
		return BucketDeliveredPortability
	case !delivered && shipped && sale.ProductType == domain.ProductPortability:
		return BucketUndeliveredPortability
	case !delivered && shipped && sale.ProductType == domain.ProductNewLine:
		return BucketUndeliveredNewLine
	case sale.CommercialStatus == domain.CommercialInProgress || sale.LogisticStatus == domain.LogisticAssigned:
		return BucketScheduled
	default:
		return BucketNone
	}
}

func classifiable(sale *domain.Sale) bool {
	if sale == nil {
		return false
	}
	if !sale.CommercialStatus.Valid() || !sale.LogisticStatus.Valid() || !sale.LineStatus.Valid() {
		return false
	}
	if sale.CreatedAt.IsZero() {
		return false
	}
	if !finite(sale.UnitPrice) || sale.UnitPrice < 0 || sale.Quantity < 0 {
		return false
	}
	return finite(sale.TotalValue())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
