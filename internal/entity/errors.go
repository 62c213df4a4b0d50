package entity

import "errors"

var (
	// ErrNoteNotFound covers both a missing note and a note owned by another
	// user. Ownership mismatch is deliberately indistinguishable from
	// non-existence so the API never leaks other users' data.
	ErrNoteNotFound = errors.New("note not found")

	ErrTokenMissing = errors.New("access token required")
	ErrTokenInvalid = errors.New("invalid or expired token")
)
