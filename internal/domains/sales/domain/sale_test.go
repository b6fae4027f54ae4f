package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSale_AppliesDefaults(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	sale, err := NewSale(SaleDraft{ID: "s-1", ProductType: "portability", UnitPrice: 29.9, Quantity: 2}, now)
	require.NoError(t, err)
	require.Equal(t, CommercialInitial, sale.CommercialStatus)
	require.Equal(t, LogisticInitial, sale.LogisticStatus)
	require.Equal(t, LinePendingPreload, sale.LineStatus)
	require.Equal(t, ProductPortability, sale.ProductType)
	require.Equal(t, now, sale.CreatedAt)
	require.InDelta(t, 59.8, sale.TotalValue(), 1e-9)
}

func TestNewSale_RejectsInvalidInput(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		draft SaleDraft
		want  error
	}{
		{"unknown commercial status", SaleDraft{CommercialStatus: "SHIPPED", ProductType: "NEW_LINE", Quantity: 1}, ErrInvalidCommercialStatus},
		{"unknown logistic status", SaleDraft{LogisticStatus: "TELEPORTED", ProductType: "NEW_LINE", Quantity: 1}, ErrInvalidLogisticStatus},
		{"unknown line status", SaleDraft{LineStatus: "DISCONNECTED", ProductType: "NEW_LINE", Quantity: 1}, ErrInvalidLineStatus},
		{"missing product type", SaleDraft{Quantity: 1}, ErrEmptyProductType},
		{"negative price", SaleDraft{ProductType: "NEW_LINE", UnitPrice: -1, Quantity: 1}, ErrInvalidUnitPrice},
		{"nan price", SaleDraft{ProductType: "NEW_LINE", UnitPrice: math.NaN(), Quantity: 1}, ErrInvalidUnitPrice},
		{"zero quantity", SaleDraft{ProductType: "NEW_LINE"}, ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSale(tc.draft, now)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCommercialStatus_Coarse(t *testing.T) {
	require.Equal(t, CommercialCompleted, CommercialActivated.Coarse())
	require.Equal(t, CommercialCompleted, CommercialApproved.Coarse())
	require.Equal(t, CommercialPending, CommercialInProgress.Coarse())
	require.Equal(t, CommercialPending, CommercialPendingDocumentation.Coarse())
	require.Equal(t, CommercialCancelled, CommercialRejected.Coarse())
	require.Equal(t, CommercialStatus(""), CommercialStatus("").Coarse())
	require.False(t, CommercialStatus("bogus").Valid())
}

func TestUpdateStatuses_IsAtomic(t *testing.T) {
	sale, err := NewSale(SaleDraft{ID: "s-2", ProductType: "NEW_LINE", Quantity: 1}, time.Now())
	require.NoError(t, err)

	delivered := LogisticDelivered
	badLine := LineStatus("NOPE")
	err = sale.UpdateStatuses(StatusChange{Logistic: &delivered, Line: &badLine})
	require.ErrorIs(t, err, ErrInvalidLineStatus)
	require.Equal(t, LogisticInitial, sale.LogisticStatus)

	cancelled := CommercialCancelled
	active := LineActive
	require.NoError(t, sale.UpdateStatuses(StatusChange{Commercial: &cancelled, Line: &active}))
	require.Equal(t, CommercialCancelled, sale.CommercialStatus)
	require.Equal(t, LineActive, sale.LineStatus)
}
