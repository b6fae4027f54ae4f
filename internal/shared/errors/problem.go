// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 body. Instance defaults to the request path when responding.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy carrying key. The receiver's map is never shared with the copy,
// so package-level templates stay untouched.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type URIs. Relative; the responder may prefix a base URI.
const (
	TypeValidation       = "/problems/validation-error"
	TypeNotFound         = "/problems/not-found"
	TypeInternal         = "/problems/internal-error"
	TypeBadRequest       = "/problems/bad-request"
	TypeDuplicateSale    = "/problems/sale-exists"
	TypeFollowUpOpen     = "/problems/follow-up-open"
	TypeFollowUpResolved = "/problems/follow-up-resolved"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest is for requests that never reach a service, such as an unreadable body.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrDuplicateSale answers a create whose sale ID is already taken.
	ErrDuplicateSale = ProblemDetail{
		Type:   TypeDuplicateSale,
		Title:  "Sale Already Exists",
		Status: http.StatusConflict,
	}

	// ErrFollowUpOpen answers a concurrent open that lost to another unresolved task.
	ErrFollowUpOpen = ProblemDetail{
		Type:   TypeFollowUpOpen,
		Title:  "Follow-Up Already Open",
		Status: http.StatusConflict,
	}

	// ErrFollowUpResolved answers a change to a task that is already resolved.
	ErrFollowUpResolved = ProblemDetail{
		Type:   TypeFollowUpResolved,
		Title:  "Follow-Up Resolved",
		Status: http.StatusConflict,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem reports malformed request fields, keyed by parameter name.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}
