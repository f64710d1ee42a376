package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the users.email unique constraint is violated.
	ErrDuplicateEmail = errors.New("duplicate email")
)
