package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrEmptyPatch signals an update that would touch no columns.
	ErrEmptyPatch = errors.New("repository: empty patch")
)
