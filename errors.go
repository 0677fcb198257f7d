package shelf

import "errors"

var (
	// ErrNotFound is returned when a file or directory is not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
