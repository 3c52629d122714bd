// Package rest implements the HTTP client for the upstream parts backend.
package rest

import "errors"

// Sentinel errors classifying upstream failures.
var (
	// ErrValidation indicates a rejected payload, either locally before a
	// request is issued or as a 4xx from the backend.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates a missing or dead credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the resource does not exist upstream.
	ErrNotFound = errors.New("resource not found")
	// ErrUpstream indicates the backend answered with a 5xx.
	ErrUpstream = errors.New("upstream error")
	// ErrNetwork indicates no response was received at all.
	ErrNetwork = errors.New("network error")
)

// Error carries the classification together with the backend's message
// text, which callers surface verbatim when present.
type Error struct {
	Kind    error
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Kind.Error() + ": " + e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

// Validationf builds a local validation failure raised before any
// network call.
func Validationf(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}
