package domain

// CommercialStatus tracks the sale through the commercial pipeline. It carries both the
// fine-grained sales-entry values and the coarse values used by the back-office view.
type CommercialStatus string

const (
	CommercialInitial              CommercialStatus = "INITIAL"
	CommercialInProgress           CommercialStatus = "IN_PROGRESS"
	CommercialPendingDocumentation CommercialStatus = "PENDING_DOCUMENTATION"
	CommercialApproved             CommercialStatus = "APPROVED"
	CommercialActivated            CommercialStatus = "ACTIVATED"
	CommercialRejected             CommercialStatus = "REJECTED"
	CommercialCancelled            CommercialStatus = "CANCELLED"

	// Coarse back-office values. CANCELLED is shared with the fine-grained set.
	CommercialCompleted CommercialStatus = "COMPLETED"
	CommercialPending   CommercialStatus = "PENDING"
)

// Coarse folds the status into COMPLETED, PENDING or CANCELLED. Unknown values fold to "".
func (s CommercialStatus) Coarse() CommercialStatus {
	switch s {
	case CommercialApproved, CommercialActivated, CommercialCompleted:
		return CommercialCompleted
	case CommercialInitial, CommercialInProgress, CommercialPendingDocumentation, CommercialPending:
		return CommercialPending
	case CommercialRejected, CommercialCancelled:
		return CommercialCancelled
	default:
		return ""
	}
}

// Valid reports whether the status belongs to either enumeration.
func (s CommercialStatus) Valid() bool {
	return s.Coarse() != ""
}

// LogisticStatus tracks the shipment of the SIM/device to the customer.
type LogisticStatus string

const (
	LogisticInitial             LogisticStatus = "INITIAL"
	LogisticAssigned            LogisticStatus = "ASSIGNED"
	LogisticInTransit           LogisticStatus = "IN_TRANSIT"
	LogisticDelivered           LogisticStatus = "DELIVERED"
	LogisticReturnedToCustomer  LogisticStatus = "RETURNED_TO_CUSTOMER"
	LogisticInReturn            LogisticStatus = "IN_RETURN"
	LogisticNotDelivered        LogisticStatus = "NOT_DELIVERED"
	LogisticLostPackage         LogisticStatus = "LOST_PACKAGE"
	LogisticSettledWithCustomer LogisticStatus = "SETTLED_WITH_CUSTOMER"
)

// Valid reports whether the status is a known logistic value.
func (s LogisticStatus) Valid() bool {
	switch s {
	case LogisticInitial, LogisticAssigned, LogisticInTransit, LogisticDelivered,
		LogisticReturnedToCustomer, LogisticInReturn, LogisticNotDelivered,
		LogisticLostPackage, LogisticSettledWithCustomer:
		return true
	default:
		return false
	}
}

// IsDelivered is true once the customer has the package in hand.
func (s LogisticStatus) IsDelivered() bool {
	return s == LogisticDelivered || s == LogisticSettledWithCustomer
}

// LineStatus tracks activation of the telephone line.
type LineStatus string

const (
	LinePendingPreload     LineStatus = "PENDING_PRELOAD"
	LinePreloaded          LineStatus = "PRELOADED"
	LineAuditOK            LineStatus = "AUDIT_OK"
	LinePendingPortability LineStatus = "PENDING_PORTABILITY"
	LineTechnicalError     LineStatus = "TECHNICAL_ERROR"
	LineActive             LineStatus = "ACTIVE"
)

// Valid reports whether the status is a known line value.
func (s LineStatus) Valid() bool {
	switch s {
	case LinePendingPreload, LinePreloaded, LineAuditOK, LinePendingPortability, LineTechnicalError, LineActive:
		return true
	default:
		return false
	}
}

// ProductType is an open enumeration; only the values below drive queue routing.
type ProductType string

const (
	ProductPortability ProductType = "PORTABILITY"
	ProductNewLine     ProductType = "NEW_LINE"
)
