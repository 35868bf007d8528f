package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for the authorization sequence. Handlers map these onto
// HTTP statuses; none of them is retried.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrProfileNotFound = errors.New("technician profile not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrRequestClosed   = errors.New("request no longer accepts offers")
	ErrForbidden       = errors.New("request is addressed to another technician")
)

// ValidationError flags malformed caller input (price, eta, request id).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
