package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a write collides with an existing
	// (task_id, due_date) materialization key
	ErrDuplicateKey = errors.New("duplicate materialization key")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
