package source

import "errors"

var (
	// ErrInvalidSource is returned when a table name cannot be resolved.
	ErrInvalidSource = errors.New("invalid array")
	// ErrEmptySource is returned when a table holds fewer than two samples.
	ErrEmptySource = errors.New("empty array")
	// ErrUnsupportedFormat is returned by Load for unknown file types.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
