package domain

import "errors"

// Sentinel errors shared across services and repositories. Services return
// these unwrapped so controllers can map them to HTTP status codes with
// errors.Is.
var (
	// ErrNotFound is returned when a requested event does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a user attempts a write on an event
	// they do not organize.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for missing or malformed required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound is returned when a user lookup finds no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already in use")
	// ErrInvalidCredentials is returned on failed authentication.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
