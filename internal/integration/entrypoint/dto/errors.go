package dto

import (
	"errors"
	"net/http"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// Stable response error codes. These are part of the wire contract and
// must never be renamed once shipped.
const (
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidParameter       = "INVALID_PARAMETER"
	CodeNotFound               = "NOT_FOUND"
	CodeAccountNotFound        = "ACCOUNT_NOT_FOUND"
	CodeFileTooLarge           = "FILE_TOO_LARGE"
	CodeUnsupportedFileType    = "UNSUPPORTED_FILE_TYPE"
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"
	CodeValidationError        = "VALIDATION_ERROR"
	CodeImportFailed           = "IMPORT_FAILED"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeRateLimited            = "RATE_LIMITED"
)

// ErrorCodeFor maps any error raised by the core into the HTTP status and
// stable response code a handler should emit. It checks sentinel errors
// that need a code more specific than their Kind first, then falls back
// to the Kind carried by the error's Kinder implementation.
func ErrorCodeFor(err error) (status int, code string, message string) {
	switch {
	case errors.Is(err, domainerror.ErrAccountNotFound):
		return http.StatusNotFound, CodeAccountNotFound, err.Error()
	case errors.Is(err, domainerror.ErrUnsupportedFileType):
		return http.StatusUnprocessableEntity, CodeUnsupportedFileType, err.Error()
	case errors.Is(err, domainerror.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType, CodeUnsupportedContentType, err.Error()
	case errors.Is(err, domainerror.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, CodeFileTooLarge, err.Error()
	case errors.Is(err, domainerror.ErrParseFailure), errors.Is(err, domainerror.ErrEmptyFile):
		return http.StatusUnprocessableEntity, CodeImportFailed, err.Error()
	case errors.Is(err, adapter.ErrInvalidCursor), errors.Is(err, domainerror.ErrInvalidCursor):
		return http.StatusBadRequest, CodeInvalidParameter, err.Error()
	}

	var kinder domainerror.Kinder
	if errors.As(err, &kinder) {
		return statusAndCodeForKind(kinder.Kind(), err)
	}

	return http.StatusInternalServerError, CodeInternalError, "an internal error occurred"
}

func statusAndCodeForKind(kind domainerror.Kind, err error) (int, string, string) {
	switch kind {
	case domainerror.KindNotFound:
		return http.StatusNotFound, CodeNotFound, err.Error()
	case domainerror.KindConflict:
		return http.StatusConflict, CodeValidationError, err.Error()
	case domainerror.KindValidation:
		return http.StatusBadRequest, CodeValidationError, err.Error()
	case domainerror.KindUnauthorized:
		return http.StatusUnauthorized, CodeUnauthorized, err.Error()
	case domainerror.KindParseFailure:
		return http.StatusUnprocessableEntity, CodeImportFailed, err.Error()
	case domainerror.KindStoreUnavailable, domainerror.KindIndexMissing, domainerror.KindLLMUnavailable, domainerror.KindInternal:
		return http.StatusInternalServerError, CodeInternalError, "an internal error occurred"
	default:
		return http.StatusInternalServerError, CodeInternalError, "an internal error occurred"
	}
}

// RespondError writes err as a Fail envelope with the status ErrorCodeFor
// derives for it.
func RespondError(err error) (int, Response) {
	status, code, message := ErrorCodeFor(err)
	return status, Fail(code, message)
}
