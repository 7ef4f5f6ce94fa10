package repository

import "errors"

// Sentinel errors shared by every storage backend. Usecases translate these
// into their own domain-facing errors.
var (
	ErrNotFound  = errors.New("repository: record not found")
	ErrDuplicate = errors.New("repository: unique constraint violated")
)
