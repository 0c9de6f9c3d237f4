package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPrecise formats a duration as m:ss.mmm.
func FormatPrecise(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Round(time.Millisecond).Milliseconds()
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

// FormatSamples formats a sample count with its duration at rate sr.
func FormatSamples(n int, sr float64) string {
	if sr <= 0 {
		return fmt.Sprintf("%d smp", n)
	}
	d := time.Duration(float64(n) / sr * float64(time.Second))
	return fmt.Sprintf("%d smp (%s)", n, FormatPrecise(d))
}
