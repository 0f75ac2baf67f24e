package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	// ErrInvalidCursor means the cursor is not a value this package produced.
	ErrInvalidCursor = errors.New("invalid cursor format")
	// ErrCursorKind means the cursor belongs to another resource listing.
	ErrCursorKind = errors.New("cursor type mismatch")
	// ErrCursorPosition means the cursor points at an item absent from the listing.
	ErrCursorPosition = errors.New("cursor references unknown item")
)

// Cursor is an opaque position inside a listing. After holds the key of the
// last item on the previous page; empty means the start of the listing.
type Cursor struct {
	Kind  string
	After string
}

// Encode returns the URL-safe form placed in Link headers.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + c.After))
}

// ParseCursor decodes s and checks it was issued for kind. An empty s yields
// the start of the listing.
func ParseCursor(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, after, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Cursor{}, ErrInvalidCursor
	}
	if k != kind {
		return Cursor{}, ErrCursorKind
	}
	return Cursor{Kind: k, After: after}, nil
}
