// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Store domain errors, raised by the persistence layer independent of any
// single entity.
var (
	ErrStoreUnavailable = errors.New("data store unavailable")
	ErrIndexMissing     = errors.New("required index missing for this query shape")
	ErrInvalidCursor    = errors.New("pagination cursor is invalid")
)

// StoreErrorCode defines error codes for store errors.
// Format: STO-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	ErrCodeStoreUnavailable StoreErrorCode = "STO-010001"
	ErrCodeIndexMissing     StoreErrorCode = "STO-010002"
	ErrCodeInvalidCursor    StoreErrorCode = "STO-010003"
)

// StoreError represents a store error with a Kind, code, and message.
type StoreError struct {
	K       Kind
	Code    StoreErrorCode
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StoreError) Unwrap() error { return e.Err }
func (e *StoreError) Kind() Kind    { return e.K }

// NewStoreError creates a new StoreError.
func NewStoreError(kind Kind, code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{K: kind, Code: code, Message: message, Err: err}
}
