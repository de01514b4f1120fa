package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers any entity lookup miss (transaction, listing, user).
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is not the actor a
	// transition or resource is bound to.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyReviewed rejects a second review on the same transaction.
	ErrAlreadyReviewed = errors.New("review already submitted")
)

// ValidationError rejects a malformed request before any side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StatusConflictError rejects a transition attempted from a non-matching
// status. The actual status is surfaced so clients can refresh their view
// instead of blindly retrying.
type StatusConflictError struct {
	Expected HandshakeStatus
	Actual   HandshakeStatus
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("transaction is %s, expected %s", e.Actual, e.Expected)
}

// IsConflict reports whether err is a status conflict or a duplicate review.
func IsConflict(err error) bool {
	var sc *StatusConflictError
	return errors.As(err, &sc) || errors.Is(err, ErrAlreadyReviewed)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
