// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "errors"

// ErrInvalidCursor is returned by repositories when a supplied pagination
// cursor fails to decode. The HTTP layer maps this to INVALID_PARAMETER,
// distinctly from an empty result page.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// PageParams bounds a cursor-paginated list query.
type PageParams struct {
	Cursor string
	Limit  int
}

// DefaultLimit and MaxLimit bound transaction listing page sizes.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Clamp normalizes Limit into (0, MaxLimit].
func (p PageParams) Clamp() PageParams {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
