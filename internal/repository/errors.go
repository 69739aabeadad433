// Package repository declares the storage contracts of the reference
// server.
package repository

import "errors"

// Storage errors. Every repository implementation wraps one of these.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrForeignKeyViolation = errors.New("referenced entity does not exist")
	ErrInvalidInput        = errors.New("invalid input")
)
