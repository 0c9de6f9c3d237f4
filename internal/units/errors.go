package units

import "errors"

var (
	// ErrInvalidSampleRate is returned by time conversions when the sample rate is zero.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	// ErrPhaseRange is returned when a phase lies outside [0,1].
	ErrPhaseRange = errors.New("phase should be in [0,1] range")
	// ErrEmpty is returned by inverse conversions on a zero-length buffer.
	ErrEmpty = errors.New("empty buffer")
	// ErrUnknownUnit is returned for an unrecognised unit tag.
	ErrUnknownUnit = errors.New("unknown unit")
)
