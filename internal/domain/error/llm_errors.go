// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// LLM domain errors, raised by the classification/parsing integration layer.
var (
	ErrLLMUnavailable  = errors.New("llm provider unavailable")
	ErrLLMBadResponse  = errors.New("llm returned a response that could not be parsed")
	ErrLLMRateLimited  = errors.New("llm provider rate limited the request")
)

// LLMErrorCode defines error codes for llm errors.
// Format: LLM-XXYYYY where XX is category and YYYY is specific error.
type LLMErrorCode string

const (
	ErrCodeLLMUnavailable LLMErrorCode = "LLM-010001"
	ErrCodeLLMBadResponse LLMErrorCode = "LLM-010002"
	ErrCodeLLMRateLimited LLMErrorCode = "LLM-010003"
)

// LLMError represents an llm integration error with a Kind, code, and message.
type LLMError struct {
	K       Kind
	Code    LLMErrorCode
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *LLMError) Unwrap() error { return e.Err }
func (e *LLMError) Kind() Kind    { return e.K }

// NewLLMError creates a new LLMError.
func NewLLMError(kind Kind, code LLMErrorCode, message string, err error) *LLMError {
	return &LLMError{K: kind, Code: code, Message: message, Err: err}
}
