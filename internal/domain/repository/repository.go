package repository

import "errors"

// Sentinel errors shared by every repository implementation. The application
// layer maps these onto caller-facing error kinds.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)
