// Package store provides persistence-layer helpers shared across
// repository implementations: opaque cursor encoding and Postgres error
// classification into the domain Kind taxonomy.
package store

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// Cursor is the decoded shape of an opaque pagination token: the
// (postedAt, id) of the last row on the previous page.
type Cursor struct {
	PostedAt time.Time `json:"postedAt"`
	ID       uuid.UUID `json:"id"`
}

// EncodeCursor serializes a Cursor into the opaque token returned to API
// callers as nextCursor.
func EncodeCursor(c Cursor) string {
	b, _ := json.Marshal(c)
	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCursor parses an opaque token back into a Cursor. A malformed
// token yields ErrInvalidCursor, never an empty-page result — callers
// must surface this distinctly from "no more rows".
func DecodeCursor(token string) (Cursor, error) {
	var c Cursor
	if token == "" {
		return c, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, domainerror.ErrInvalidCursor
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, domainerror.ErrInvalidCursor
	}
	return c, nil
}
