// Package units converts buffer positions between sample index, phase,
// milliseconds and seconds.
package units

import (
	"fmt"
	"math"
	"strings"
)

// Unit tags a position representation.
type Unit uint8

const (
	Sample Unit = iota
	Phase
	Millis
	Seconds
)

// All lists the units in output order.
var All = [...]Unit{Sample, Phase, Millis, Seconds}

func (u Unit) String() string {
	switch u {
	case Sample:
		return "samp"
	case Phase:
		return "phase"
	case Millis:
		return "ms"
	case Seconds:
		return "sec"
	default:
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
}

// ParseUnit maps "samp", "phase", "ms" and "sec" to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "samp", "sample", "samples":
		return Sample, nil
	case "phase":
		return Phase, nil
	case "ms":
		return Millis, nil
	case "sec", "s":
		return Seconds, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Converter maps sample offsets of a buffer of Length samples played at
// SampleRate to the other units and back. The zero value converts nothing
// but phase 0.
type Converter struct {
	Length     int
	SampleRate float64
}

// New returns a Converter for a buffer of n samples at rate sr.
func New(n int, sr float64) Converter {
	return Converter{Length: n, SampleRate: sr}
}

// SampleToPhase returns s/(N-1), or 0 when N <= 1.
func (c Converter) SampleToPhase(s float64) float64 {
	if c.Length <= 1 {
		return 0
	}
	return s / float64(c.Length-1)
}

// SampleToMs returns 1000*s/SR.
func (c Converter) SampleToMs(s float64) (float64, error) {
	if c.SampleRate == 0 {
		return 0, ErrInvalidSampleRate
	}
	return 1000 * s / c.SampleRate, nil
}

// SampleToSec returns s/SR.
func (c Converter) SampleToSec(s float64) (float64, error) {
	if c.SampleRate == 0 {
		return 0, ErrInvalidSampleRate
	}
	return s / c.SampleRate, nil
}

// PhaseToSample maps a phase in [0,1] onto [0,N-1].
func (c Converter) PhaseToSample(p float64) (int, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: %g", ErrPhaseRange, p)
	}
	if c.Length < 1 {
		return 0, ErrEmpty
	}
	return c.clamp(math.Round(p * float64(c.Length-1))), nil
}

// MsToSample maps milliseconds to the nearest sample, clamped to [0,N-1].
func (c Converter) MsToSample(ms float64) (int, error) {
	if c.SampleRate == 0 {
		return 0, ErrInvalidSampleRate
	}
	if c.Length < 1 {
		return 0, ErrEmpty
	}
	return c.clamp(math.Round(c.SampleRate * ms / 1000)), nil
}

// SecToSample maps seconds to the nearest sample, clamped to [0,N-1].
func (c Converter) SecToSample(sec float64) (int, error) {
	if c.SampleRate == 0 {
		return 0, ErrInvalidSampleRate
	}
	if c.Length < 1 {
		return 0, ErrEmpty
	}
	return c.clamp(math.Round(c.SampleRate * sec)), nil
}

// FromSample converts sample offset s into unit u.
func (c Converter) FromSample(u Unit, s float64) (float64, error) {
	switch u {
	case Sample:
		return s, nil
	case Phase:
		return c.SampleToPhase(s), nil
	case Millis:
		return c.SampleToMs(s)
	case Seconds:
		return c.SampleToSec(s)
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownUnit, u)
}

// ToSample converts v expressed in unit u into a sample offset in [0,N-1].
// Sample values are rounded and clamped like the time units.
func (c Converter) ToSample(u Unit, v float64) (int, error) {
	switch u {
	case Sample:
		if c.Length < 1 {
			return 0, ErrEmpty
		}
		return c.clamp(math.Round(v)), nil
	case Phase:
		return c.PhaseToSample(v)
	case Millis:
		return c.MsToSample(v)
	case Seconds:
		return c.SecToSample(v)
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownUnit, u)
}

// Size returns the buffer length in unit u. Phase size is always 1.
func (c Converter) Size(u Unit) (float64, error) {
	if u == Phase {
		return 1, nil
	}
	return c.FromSample(u, float64(c.Length))
}

func (c Converter) clamp(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if last := float64(c.Length - 1); v > last {
		return c.Length - 1
	}
	return int(v)
}
