// Package error defines domain-specific errors for the ledger application.
package error

// Kind is the small, closed taxonomy of failure modes the core raises.
// The HTTP layer maps every Kind to one stable response error code
// (see internal/integration/entrypoint/dto.ErrorCodeFor) — handlers never
// pattern-match on a concern-specific error type to decide the HTTP status.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindValidation      Kind = "validation"
	KindUnauthorized    Kind = "unauthorized"
	KindStoreUnavailable Kind = "store_unavailable"
	KindIndexMissing    Kind = "index_missing"
	KindLLMUnavailable  Kind = "llm_unavailable"
	KindParseFailure    Kind = "parse_failure"
	KindInternal        Kind = "internal"
)

// Kinder is implemented by every concern-specific error struct in this
// package so the HTTP layer can map any of them uniformly.
type Kinder interface {
	error
	Kind() Kind
}
