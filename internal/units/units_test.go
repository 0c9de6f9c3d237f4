package units

import (
	"errors"
	"math"
	"testing"
)

func TestRoundTripAllUnits(t *testing.T) {
	for _, n := range []int{2, 3, 10, 1000, 44101} {
		for _, sr := range []float64{8000, 44100, 48000, 96000} {
			c := New(n, sr)
			for _, s := range []int{0, 1, n / 3, n / 2, n - 2, n - 1} {
				for _, u := range All {
					v, err := c.FromSample(u, float64(s))
					if err != nil {
						t.Fatalf("FromSample(%v, %d) n=%d sr=%g: %v", u, s, n, sr, err)
					}
					back, err := c.ToSample(u, v)
					if err != nil {
						t.Fatalf("ToSample(%v, %g): %v", u, v, err)
					}
					if d := back - s; d < -1 || d > 1 {
						t.Fatalf("round trip %v n=%d sr=%g: %d -> %g -> %d", u, n, sr, s, v, back)
					}
				}
			}
		}
	}
}

func TestSampleToPhaseDegenerateLength(t *testing.T) {
	for _, n := range []int{0, 1} {
		if got := New(n, 44100).SampleToPhase(0); got != 0 {
			t.Fatalf("expected phase 0 for n=%d, got %g", n, got)
		}
	}
	if got := New(11, 44100).SampleToPhase(5); got != 0.5 {
		t.Fatalf("expected phase 0.5, got %g", got)
	}
}

func TestZeroSampleRateFails(t *testing.T) {
	c := New(100, 0)
	if _, err := c.SampleToMs(10); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}
	if _, err := c.SampleToSec(10); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}
	if _, err := c.MsToSample(10); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}
	if _, err := c.ToSample(Seconds, 1); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}
	if _, err := c.FromSample(Phase, 50); err != nil {
		t.Fatalf("phase does not depend on sample rate: %v", err)
	}
}

func TestPhaseOutsideRangeRejected(t *testing.T) {
	c := New(100, 44100)
	for _, p := range []float64{-0.01, 1.01, math.NaN()} {
		if _, err := c.PhaseToSample(p); !errors.Is(err, ErrPhaseRange) {
			t.Fatalf("expected ErrPhaseRange for %g, got %v", p, err)
		}
	}
	if s, err := c.PhaseToSample(1); err != nil || s != 99 {
		t.Fatalf("expected 99, got %d (%v)", s, err)
	}
}

func TestInverseClampsToBuffer(t *testing.T) {
	c := New(1000, 1000)
	tests := []struct {
		unit Unit
		in   float64
		want int
	}{
		{Millis, -5, 0},
		{Millis, 5000, 999},
		{Seconds, 0.25, 250},
		{Seconds, 2, 999},
		{Sample, 12.4, 12},
		{Sample, 1e9, 999},
	}
	for _, tt := range tests {
		got, err := c.ToSample(tt.unit, tt.in)
		if err != nil {
			t.Fatalf("ToSample(%v, %g): %v", tt.unit, tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ToSample(%v, %g) = %d, want %d", tt.unit, tt.in, got, tt.want)
		}
	}
}

func TestInverseOnEmptyBuffer(t *testing.T) {
	c := New(0, 44100)
	if _, err := c.MsToSample(1); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestSizeInUnits(t *testing.T) {
	c := New(44100, 44100)
	if got, _ := c.Size(Seconds); got != 1 {
		t.Fatalf("expected 1s, got %g", got)
	}
	if got, _ := c.Size(Millis); got != 1000 {
		t.Fatalf("expected 1000ms, got %g", got)
	}
	if got, _ := c.Size(Sample); got != 44100 {
		t.Fatalf("expected 44100 samples, got %g", got)
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range All {
		got, err := ParseUnit(u.String())
		if err != nil || got != u {
			t.Fatalf("ParseUnit(%q) = %v, %v", u.String(), got, err)
		}
	}
	if _, err := ParseUnit("furlong"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}
