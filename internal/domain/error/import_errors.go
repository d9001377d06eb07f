// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Import domain errors.
var (
	ErrImportNotFound         = errors.New("import not found")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrFileTooLarge           = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile              = errors.New("uploaded file is empty")
	ErrParseFailure           = errors.New("failed to parse uploaded file")
)

// ImportErrorCode defines error codes for import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	ErrCodeImportNotFound         ImportErrorCode = "IMP-010001"
	ErrCodeUnsupportedFileType    ImportErrorCode = "IMP-010002"
	ErrCodeUnsupportedContentType ImportErrorCode = "IMP-010003"
	ErrCodeFileTooLarge           ImportErrorCode = "IMP-010004"
	ErrCodeEmptyFile              ImportErrorCode = "IMP-010005"
	ErrCodeParseFailure           ImportErrorCode = "IMP-010006"
)

// ImportError represents an import error with a Kind, code, and message.
type ImportError struct {
	K       Kind
	Code    ImportErrorCode
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ImportError) Unwrap() error { return e.Err }
func (e *ImportError) Kind() Kind    { return e.K }

// NewImportError creates a new ImportError.
func NewImportError(kind Kind, code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{K: kind, Code: code, Message: message, Err: err}
}
