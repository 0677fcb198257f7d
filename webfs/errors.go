package webfs

import "errors"

var (
	// ErrDirectory is returned by Open when the path resolves to a directory.
	ErrDirectory = errors.New("is a directory")
	// ErrNotDirectory is returned by ReadDir when the path resolves to a
	// regular file.
	ErrNotDirectory = errors.New("not a directory")
)
