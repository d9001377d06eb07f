// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Category domain errors.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryIsDefault   = errors.New("default categories are read-only")
	ErrNotOwnedByRequester = errors.New("category does not belong to requester")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	ErrCodeCategoryNotFound CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryIsDefault CategoryErrorCode = "CAT-010002"
)

// CategoryError represents a category error with a Kind, code, and message.
type CategoryError struct {
	K       Kind
	Code    CategoryErrorCode
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CategoryError) Unwrap() error { return e.Err }
func (e *CategoryError) Kind() Kind    { return e.K }

// NewCategoryError creates a new CategoryError.
func NewCategoryError(kind Kind, code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{K: kind, Code: code, Message: message, Err: err}
}
