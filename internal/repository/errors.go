package repository

import "errors"

// ErrNotFound is returned when a record does not exist. Services map it
// to the not-found error kind.
var ErrNotFound = errors.New("not found")
