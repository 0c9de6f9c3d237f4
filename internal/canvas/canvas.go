// Package canvas is a layered pixel surface that renders to the terminal
// with Braille characters: every cell is a 2x4 dot grid.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Layer selects one of the independently invalidated drawing planes.
// Higher layers are composited over lower ones.
type Layer uint8

const (
	Background Layer = iota
	Wave
	Cursor
	numLayers
)

func (l Layer) String() string {
	switch l {
	case Background:
		return "background"
	case Wave:
		return "wave"
	case Cursor:
		return "cursor"
	default:
		return "layer?"
	}
}

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

type cell struct {
	bits  uint8
	fg    colorful.Color
	bg    colorful.Color
	hasBg bool
}

type point struct{ x, y float64 }

// Canvas implements the drawing surface of a waveform view.
type Canvas struct {
	cols, rows int
	layers     [numLayers][]cell
	invalid    [numLayers]bool

	current Layer
	color   colorful.Color
	path    [][]point
	redraw  bool
}

// New returns a canvas of cols x rows terminal cells with every layer
// invalid.
func New(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates all layers and invalidates them.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	for l := range c.layers {
		c.layers[l] = make([]cell, c.cols*c.rows)
		c.invalid[l] = true
	}
	c.redraw = true
}

// Cells returns the size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// Size returns the size in pixels (dots).
func (c *Canvas) Size() (w, h int) { return c.cols * 2, c.rows * 4 }

// Invalidate marks layer l for repainting.
func (c *Canvas) Invalidate(l Layer) {
	if l < numLayers {
		c.invalid[l] = true
	}
}

// Invalid reports whether l waits for a repaint.
func (c *Canvas) Invalid(l Layer) bool { return c.invalid[l] }

// Redraw asks the host to present the canvas again.
func (c *Canvas) Redraw() { c.redraw = true }

// TakeRedraw reports and clears a pending redraw request.
func (c *Canvas) TakeRedraw() bool {
	r := c.redraw
	c.redraw = false
	return r
}

// Begin starts painting layer l. It returns false when the layer is still
// valid, in which case nothing should be drawn. A true result clears the
// layer.
func (c *Canvas) Begin(l Layer) bool {
	if l >= numLayers || !c.invalid[l] {
		return false
	}
	clear(c.layers[l])
	c.invalid[l] = false
	c.current = l
	c.path = c.path[:0]
	return true
}

// SetColor sets the stroke and fill colour.
func (c *Canvas) SetColor(col colorful.Color) { c.color = col }

// MoveTo starts a new sub-path.
func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, []point{{x, y}})
}

// LineTo extends the current sub-path.
func (c *Canvas) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := len(c.path) - 1
	c.path[last] = append(c.path[last], point{x, y})
}

// Stroke rasterizes the path into the current layer and clears it.
func (c *Canvas) Stroke() {
	for _, sub := range c.path {
		if len(sub) == 1 {
			c.plot(round(sub[0].x), round(sub[0].y))
			continue
		}
		for i := 1; i < len(sub); i++ {
			c.line(round(sub[i-1].x), round(sub[i-1].y), round(sub[i].x), round(sub[i].y))
		}
	}
	c.path = c.path[:0]
}

// FillRect sets the background of every cell the rectangle overlaps.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c0 := max(int(math.Floor(x/2)), 0)
	c1 := min(int(math.Ceil((x+w)/2)), c.cols)
	r0 := max(int(math.Floor(y/4)), 0)
	r1 := min(int(math.Ceil((y+h)/4)), c.rows)
	grid := c.layers[c.current]
	for r := r0; r < r1; r++ {
		for col := c0; col < c1; col++ {
			grid[r*c.cols+col].bg = c.color
			grid[r*c.cols+col].hasBg = true
		}
	}
}

func (c *Canvas) plot(x, y int) {
	w, h := c.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	idx := (y/4)*c.cols + x/2
	cl := &c.layers[c.current][idx]
	cl.bits |= 1 << brailleBits[x%2][y%4]
	cl.fg = c.color
}

func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Dot reports whether pixel (x, y) is set on any layer.
func (c *Canvas) Dot(x, y int) bool {
	w, h := c.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	idx := (y/4)*c.cols + x/2
	bit := uint8(1) << brailleBits[x%2][y%4]
	for l := range c.layers {
		if c.layers[l][idx].bits&bit != 0 {
			return true
		}
	}
	return false
}

// composite merges the layers into one cell: dots are OR-ed, the
// foreground comes from the highest layer with dots in the cell and the
// background from the highest layer that filled it.
func (c *Canvas) composite(idx int) cell {
	var out cell
	for l := range c.layers {
		cl := c.layers[l][idx]
		if cl.bits != 0 {
			out.bits |= cl.bits
			out.fg = cl.fg
		}
		if cl.hasBg {
			out.bg = cl.bg
			out.hasBg = true
		}
	}
	return out
}

// Plain renders the canvas without colours.
func (c *Canvas) Plain() string {
	var sb strings.Builder
	for r := range c.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for col := range c.cols {
			sb.WriteRune(glyph(c.composite(r*c.cols + col).bits))
		}
	}
	return sb.String()
}

// String renders the canvas with colours, one lipgloss style per run of
// equally coloured cells.
func (c *Canvas) String() string {
	var sb strings.Builder
	for r := range c.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var style cellStyle
		for col := range c.cols {
			cl := c.composite(r*c.cols + col)
			st := styleOf(cl)
			if col > 0 && st != style {
				sb.WriteString(style.render(run.String()))
				run.Reset()
			}
			style = st
			run.WriteRune(glyph(cl.bits))
		}
		if run.Len() > 0 {
			sb.WriteString(style.render(run.String()))
		}
	}
	return sb.String()
}

type cellStyle struct {
	fg, bg string
}

func styleOf(cl cell) cellStyle {
	var st cellStyle
	if cl.bits != 0 {
		st.fg = cl.fg.Clamped().Hex()
	}
	if cl.hasBg {
		st.bg = cl.bg.Clamped().Hex()
	}
	return st
}

func (st cellStyle) render(s string) string {
	if st.fg == "" && st.bg == "" {
		return s
	}
	style := lipgloss.NewStyle()
	if st.fg != "" {
		style = style.Foreground(lipgloss.Color(st.fg))
	}
	if st.bg != "" {
		style = style.Background(lipgloss.Color(st.bg))
	}
	return style.Render(s)
}

func glyph(bits uint8) rune {
	if bits == 0 {
		return ' '
	}
	return rune(0x2800 + int(bits))
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
