package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid sale input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidCommercialStatus) ||
		errors.Is(err, domain.ErrInvalidLogisticStatus) ||
		errors.Is(err, domain.ErrInvalidLineStatus) ||
		errors.Is(err, domain.ErrEmptyProductType) ||
		errors.Is(err, domain.ErrInvalidUnitPrice) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
