package canvas

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a #rrggbb or #rgb colour.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}

// MustColor is ParseColor for constants.
func MustColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Mix returns a blended toward b by t in RGB space.
func Mix(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, clamp01(t)).Clamped()
}

// Contrast moves c toward black or white, whichever is further, by amount.
func Contrast(c colorful.Color, amount float64) colorful.Color {
	l, _, _ := c.Lab()
	target := colorful.Color{R: 1, G: 1, B: 1}
	if l > 0.5 {
		target = colorful.Color{}
	}
	return Mix(c, target, amount)
}

func expandShortHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
