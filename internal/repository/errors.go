package repository

import "errors"

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrConcurrencyConflict indicates the row changed or vanished between
	// being read and being written back.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)
