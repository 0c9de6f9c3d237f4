package selection

import "errors"

var (
	// ErrOutOfRange is returned when an explicit position resolves outside the buffer.
	ErrOutOfRange = errors.New("position out of range")
	// ErrEmpty is returned by explicit sets on a zero-length buffer.
	ErrEmpty = errors.New("empty buffer")
)
