package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
)

var (
	ErrInvalidInput = errors.New("invalid follow-up input")
	// ErrConflict signals an operation on a task that is already resolved.
	ErrConflict = errors.New("follow-up state conflict")
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEmptySaleID), errors.Is(err, domain.ErrEmptyNoteBody), errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrAlreadyClosed):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
