package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidCommercialStatus = errors.New("commercial status is invalid")
	ErrInvalidLogisticStatus   = errors.New("logistic status is invalid")
	ErrInvalidLineStatus       = errors.New("line status is invalid")
	ErrEmptyProductType        = errors.New("product type is required")
	ErrInvalidUnitPrice        = errors.New("unit price must be a finite number greater or equal to zero")
	ErrInvalidQuantity         = errors.New("quantity must be greater than zero")
)

// Sale is the aggregate classified by the triage engine.
type Sale struct {
	ID               string
	CommercialStatus CommercialStatus
	LogisticStatus   LogisticStatus
	LineStatus       LineStatus
	ProductType      ProductType
	CreatedAt        time.Time
	UnitPrice        float64
	Quantity         int

	CustomerName string
	PhoneNumber  string
	PlanName     string
	Seller       string
}

// SaleDraft carries the caller-supplied attributes for a new sale.
type SaleDraft struct {
	ID               string
	CommercialStatus CommercialStatus
	LogisticStatus   LogisticStatus
	LineStatus       LineStatus
	ProductType      ProductType
	CreatedAt        time.Time
	UnitPrice        float64
	Quantity         int
	CustomerName     string
	PhoneNumber      string
	PlanName         string
	Seller           string
}

// StatusChange updates any subset of the three status dimensions.
type StatusChange struct {
	Commercial *CommercialStatus
	Logistic   *LogisticStatus
	Line       *LineStatus
}

// Empty reports whether the change touches no dimension.
func (c StatusChange) Empty() bool {
	return c.Commercial == nil && c.Logistic == nil && c.Line == nil
}

// NewSale applies defaults and validates the write-side invariants. A zero CreatedAt is
// replaced with now.
func NewSale(draft SaleDraft, now time.Time) (*Sale, error) {
	s := &Sale{
		ID:               strings.TrimSpace(draft.ID),
		CommercialStatus: draft.CommercialStatus,
		LogisticStatus:   draft.LogisticStatus,
		LineStatus:       draft.LineStatus,
		ProductType:      ProductType(strings.ToUpper(strings.TrimSpace(string(draft.ProductType)))),
		CreatedAt:        draft.CreatedAt,
		UnitPrice:        draft.UnitPrice,
		Quantity:         draft.Quantity,
		CustomerName:     strings.TrimSpace(draft.CustomerName),
		PhoneNumber:      strings.TrimSpace(draft.PhoneNumber),
		PlanName:         strings.TrimSpace(draft.PlanName),
		Seller:           strings.TrimSpace(draft.Seller),
	}
	if s.CommercialStatus == "" {
		s.CommercialStatus = CommercialInitial
	}
	if s.LogisticStatus == "" {
		s.LogisticStatus = LogisticInitial
	}
	if s.LineStatus == "" {
		s.LineStatus = LinePendingPreload
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate enforces the write-side invariants. Stored sales may still violate them, which is
// why the classifier performs its own checks.
func (s *Sale) Validate() error {
	if !s.CommercialStatus.Valid() {
		return ErrInvalidCommercialStatus
	}
	if !s.LogisticStatus.Valid() {
		return ErrInvalidLogisticStatus
	}
	if !s.LineStatus.Valid() {
		return ErrInvalidLineStatus
	}
	if s.ProductType == "" {
		return ErrEmptyProductType
	}
	if math.IsNaN(s.UnitPrice) || math.IsInf(s.UnitPrice, 0) || s.UnitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	if s.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// TotalValue is derived from its factors and never stored.
func (s *Sale) TotalValue() float64 {
	return s.UnitPrice * float64(s.Quantity)
}

// UpdateStatuses applies the change. Dimensions are independent and no transition graph is
// enforced; only membership in each enumeration is checked.
func (s *Sale) UpdateStatuses(change StatusChange) error {
	next := *s
	if change.Commercial != nil {
		if !change.Commercial.Valid() {
			return ErrInvalidCommercialStatus
		}
		next.CommercialStatus = *change.Commercial
	}
	if change.Logistic != nil {
		if !change.Logistic.Valid() {
			return ErrInvalidLogisticStatus
		}
		next.LogisticStatus = *change.Logistic
	}
	if change.Line != nil {
		if !change.Line.Valid() {
			return ErrInvalidLineStatus
		}
		next.LineStatus = *change.Line
	}
	*s = next
	return nil
}
