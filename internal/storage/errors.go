package storage

import "errors"

// Errors shared by the plan, snapshot, and day-row stores.
var (
	// ErrNotFound is returned when the requested plan or snapshot does not exist.
	ErrNotFound = errors.New("plan or snapshot not found")

	// ErrDuplicateKey is returned when an insert collides with an existing
	// plan, snapshot, or day row. All stores are append-only and never update.
	ErrDuplicateKey = errors.New("duplicate key: stores are append-only")

	// ErrInvalidInput is returned when a record fails validation before it
	// reaches the store.
	ErrInvalidInput = errors.New("invalid input")
)
