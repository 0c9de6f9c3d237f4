package selection

import "math"

// Geometry relates the pixel columns of a view to the samples of the
// buffer it shows.
type Geometry struct {
	Width  int // pixels
	Length int // samples
}

// ClampPixel limits x to [0,Width).
func (g Geometry) ClampPixel(x int) int {
	if g.Width < 1 {
		return 0
	}
	return clampInt(x, 0, g.Width-1)
}

// PixelToSample returns floor(x*(N-1)/(W-1)) for x clamped into the view.
func (g Geometry) PixelToSample(x int) int {
	if g.Width < 2 || g.Length < 2 {
		return 0
	}
	x = g.ClampPixel(x)
	return int(int64(x) * int64(g.Length-1) / int64(g.Width-1))
}

// SampleToPixel returns round(s*(W-1)/(N-1)), the column showing sample s.
func (g Geometry) SampleToPixel(s int) int {
	if g.Width < 2 || g.Length < 2 {
		return 0
	}
	px := math.Round(float64(s) * float64(g.Width-1) / float64(g.Length-1))
	return g.ClampPixel(int(px))
}
