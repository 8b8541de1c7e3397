package model

import "errors"

// Validation errors carry the user-facing message and never leave the store
// mutated.
var (
	ErrUsernameTaken       = errors.New("that username is taken")
	ErrInvalidUsername     = errors.New("username must be between 3 and 20 alphanumeric characters, dashes and underscores allowed")
	ErrPasswordMismatch    = errors.New("passwords must match")
	ErrPasswordLength      = errors.New("passwords must be between 10 and 25 characters")
	ErrInvalidName         = errors.New("a name must be included")
	ErrUnknownRelationship = errors.New("unknown relationship")
)

var (
	// ErrInvalidCredentials is returned for any failed login, regardless of
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCollectionBusy is returned when the per-collection lock could not be
	// acquired within the bounded wait. Transient; callers may retry.
	ErrCollectionBusy = errors.New("collection is busy")

	// ErrStoreUnavailable is returned when a backing file is missing or
	// unparsable. Fatal for the current request.
	ErrStoreUnavailable = errors.New("store unavailable")
)
