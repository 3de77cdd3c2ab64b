package review

import (
	"fmt"
	"sort"
	"strings"
)

// Error codes double as translation keys in the review domain.
const (
	CodeNotAllowed      = "review.not_allowed"
	CodeAlreadyAdded    = "review.already_added"
	CodeBookingNotFound = "review.booking_not_found"
)

// AuthorizationError reports that the caller may not review the booking.
type AuthorizationError struct {
	Code    string
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAuthorizationError(msg string) error {
	return &AuthorizationError{
		Code:    CodeNotAllowed,
		Message: msg,
	}
}

// ConflictError reports a second review for the same (booking, author) pair.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{
		Code:    CodeAlreadyAdded,
		Message: msg,
	}
}

// NotFoundError reports a missing booking.
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{
		Code:    CodeBookingNotFound,
		Message: msg,
	}
}

// ValidationError holds the per-field messages of a rejected review form.
// It is rendered back to the user and never surfaces as an HTTP error.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid review: " + strings.Join(names, ", ")
}
