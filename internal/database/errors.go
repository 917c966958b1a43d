package database

import "errors"

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("a user cannot follow themselves")
)
