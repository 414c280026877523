// Package store holds the session-scoped in-memory stores. None of the types
// here lock; the owning session serialises access.
package store

import "errors"

var (
	ErrDuplicateID   = errors.New("id already in use")
	ErrUsernameTaken = errors.New("username already taken")
)
