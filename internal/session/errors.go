package session

import "errors"

// Validation errors. They are returned before any state changes.
var (
	ErrEmptyContent        = errors.New("content must not be empty")
	ErrUsernameRequired    = errors.New("username is required")
	ErrMissingProfileField = errors.New("missing profile field")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrPostNotFound        = errors.New("post not found")
)

// Registry errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many open sessions")
)
