package models

import "errors"

// Sentinel errors shared across repository, service, and handler layers.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint rejected a write.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password so login responses cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates a missing, malformed, or expired access token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden indicates the caller may not act on the target resource.
	ErrForbidden = errors.New("forbidden")
)
