package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoData signals that an aggregate query legitimately matched zero
	// rows. It is not a failure of the store.
	ErrNoData   = errors.New("no data")
	ErrInternal = errors.New("internal error")
)

// StoreError reports a failed store operation together with the phase the
// operation failed in, so callers can tell an unopened write scope from a
// failed commit.
type StoreError struct {
	Op    string // "insert" or "query"
	Phase string // "prepare", "append", "send", "execute", "scan"
	Err   error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed during %s: %v", e.Op, e.Phase, e.Err)
}

// Unwrap returns the underlying driver error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError contains field-level validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return ve[0].Message
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}
