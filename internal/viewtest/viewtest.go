// Package viewtest provides deterministic stand-ins for the scheduler,
// drawing surface and sample sources used by the waveform view.
package viewtest

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/wavescope/internal/canvas"
)

// Clock is a manually driven scheduler. It holds at most one pending
// callback, like the host's single-slot clock.
type Clock struct {
	pending func()

	Delays  int
	Cancels int
	Last    time.Duration
}

// Delay replaces the pending callback.
func (c *Clock) Delay(d time.Duration, fn func()) {
	c.pending = fn
	c.Delays++
	c.Last = d
}

// Unset drops the pending callback.
func (c *Clock) Unset() {
	if c.pending != nil {
		c.Cancels++
	}
	c.pending = nil
}

// Pending reports whether a callback is waiting.
func (c *Clock) Pending() bool { return c.pending != nil }

// Fire runs the pending callback, if any.
func (c *Clock) Fire() bool {
	fn := c.pending
	if fn == nil {
		return false
	}
	c.pending = nil
	fn()
	return true
}

// RunUntilIdle fires callbacks until none is pending or limit is reached
// and returns how many ran.
func (c *Clock) RunUntilIdle(limit int) int {
	n := 0
	for n < limit && c.Fire() {
		n++
	}
	return n
}

// Samples is an in-memory source. Setting Invalid makes Update fail.
type Samples struct {
	Data    []float32
	Invalid bool
	Updates int
}

func (s *Samples) Update() bool {
	s.Updates++
	return !s.Invalid
}

func (s *Samples) Size() int { return len(s.Data) }

func (s *Samples) At(i int) float32 {
	if i < 0 || i >= len(s.Data) {
		return 0
	}
	return s.Data[i]
}

// Sine returns n samples of a sine wave with the given period in samples.
func Sine(n int, period float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * float64(i) / period))
	}
	return out
}

// Ramp returns n samples rising linearly from -1 to 1.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	if n < 2 {
		return out
	}
	for i := range out {
		out[i] = float32(-1 + 2*float64(i)/float64(n-1))
	}
	return out
}

// OpKind names a recorded drawing call.
type OpKind uint8

const (
	OpColor OpKind = iota
	OpMove
	OpLine
	OpStroke
	OpFill
)

// Op is one recorded drawing call. Color is the colour in effect when
// the call was made.
type Op struct {
	Kind       OpKind
	Layer      canvas.Layer
	X, Y, W, H float64
	Color      colorful.Color
}

// Surface records drawing calls instead of rasterizing them.
type Surface struct {
	invalid [3]bool
	layer   canvas.Layer
	color   colorful.Color

	Ops     []Op
	Painted []canvas.Layer
	Redraws int
}

// NewSurface returns a surface with every layer invalid.
func NewSurface() *Surface {
	return &Surface{invalid: [3]bool{true, true, true}}
}

func (s *Surface) Begin(l canvas.Layer) bool {
	if int(l) >= len(s.invalid) || !s.invalid[l] {
		return false
	}
	s.invalid[l] = false
	s.layer = l
	s.Painted = append(s.Painted, l)
	return true
}

func (s *Surface) SetColor(c colorful.Color) {
	s.color = c
	s.Ops = append(s.Ops, Op{Kind: OpColor, Layer: s.layer, Color: c})
}

func (s *Surface) MoveTo(x, y float64) {
	s.Ops = append(s.Ops, Op{Kind: OpMove, Layer: s.layer, X: x, Y: y})
}

func (s *Surface) LineTo(x, y float64) {
	s.Ops = append(s.Ops, Op{Kind: OpLine, Layer: s.layer, X: x, Y: y})
}

func (s *Surface) Stroke() {
	s.Ops = append(s.Ops, Op{Kind: OpStroke, Layer: s.layer, Color: s.color})
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.Ops = append(s.Ops, Op{Kind: OpFill, Layer: s.layer, X: x, Y: y, W: w, H: h, Color: s.color})
}

func (s *Surface) Invalidate(l canvas.Layer) {
	if int(l) < len(s.invalid) {
		s.invalid[l] = true
	}
}

func (s *Surface) Redraw() { s.Redraws++ }

// Invalid reports whether layer l waits for a repaint.
func (s *Surface) Invalid(l canvas.Layer) bool { return s.invalid[l] }

// Reset forgets recorded calls.
func (s *Surface) Reset() {
	s.Ops = s.Ops[:0]
	s.Painted = s.Painted[:0]
	s.Redraws = 0
}

// OpsOn returns the recorded calls of kind k on layer l.
func (s *Surface) OpsOn(l canvas.Layer, k OpKind) []Op {
	var out []Op
	for _, op := range s.Ops {
		if op.Layer == l && op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
