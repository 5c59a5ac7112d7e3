package db

import "errors"

var (
	// ErrEmptyQuery is returned before any connection is opened when the
	// query string is blank.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrUnsupportedDriver is returned for a driver name with no dialect.
	ErrUnsupportedDriver = errors.New("unsupported driver")

	// ErrColumnNotFound is returned by DataFrame lookups by name.
	ErrColumnNotFound = errors.New("column not found")
)
