package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint rejects a write,
// e.g. an email address that is already in use.
var ErrConflict = errors.New("conflict")
