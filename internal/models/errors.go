package models

import "errors"

// Store error sentinels. Repositories translate driver errors into these so
// handlers can map them to HTTP statuses without knowing the driver.
var (
	// ErrNotFound means a well-formed identifier matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail means a unique email constraint was violated.
	ErrDuplicateEmail = errors.New("email already registered")
)
