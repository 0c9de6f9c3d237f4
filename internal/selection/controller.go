package selection

import "fmt"

// Mode is the pointer interaction state.
type Mode uint8

const (
	None Mode = iota
	DraggingCursor
	DraggingRange
)

func (m Mode) String() string {
	switch m {
	case DraggingCursor:
		return "cursor"
	case DraggingRange:
		return "range"
	default:
		return "none"
	}
}

// Effect is a set of follow-up actions the owner of a Controller performs
// after a transition.
type Effect uint8

const (
	RepaintCursor Effect = 1 << iota
	RepaintWave
	Emit
)

// Has reports whether all flags of f are set in e.
func (e Effect) Has(f Effect) bool { return e&f == f }

// Controller turns pointer events and explicit commands into cursor and
// range updates. It is driven from a single goroutine.
type Controller struct {
	geom   Geometry
	mode   Mode
	sel    Range
	cursor int
}

// SetGeometry updates the view width and buffer length and clamps the
// cursor and selection to the new length.
func (c *Controller) SetGeometry(width, length int) {
	c.geom = Geometry{Width: width, Length: length}
	c.cursor = clampInt(c.cursor, 0, max(length-1, 0))
	c.sel = c.sel.Clamp(length)
}

// Geometry returns the current pixel/sample mapping.
func (c *Controller) Geometry() Geometry { return c.geom }

// Reset puts the cursor at 0, clears the selection and ends any drag.
func (c *Controller) Reset() {
	c.mode = None
	c.cursor = 0
	c.sel = Range{}
}

// Mode returns the current drag state.
func (c *Controller) Mode() Mode { return c.mode }

// Cursor returns the cursor sample offset.
func (c *Controller) Cursor() int { return c.cursor }

// Selection returns the current selection. It is normalized except while a
// range drag is in progress.
func (c *Controller) Selection() Range { return c.sel }

func (c *Controller) usable() bool {
	return c.geom.Length >= 2 && c.geom.Width >= 1
}

// PointerDown starts a cursor drag, or a range drag when rangeMod is held.
func (c *Controller) PointerDown(x int, rangeMod bool) Effect {
	if !c.usable() {
		return 0
	}
	s := c.geom.PixelToSample(x)
	if rangeMod {
		c.mode = DraggingRange
		c.sel = Range{From: s, To: s}
		return RepaintWave
	}
	c.mode = DraggingCursor
	c.cursor = s
	return RepaintCursor | Emit
}

// PointerDrag moves the cursor or the free end of the range. Range drags
// only repaint; the selection is emitted on release.
func (c *Controller) PointerDrag(x int) Effect {
	if !c.usable() {
		return 0
	}
	s := c.geom.PixelToSample(x)
	switch c.mode {
	case DraggingCursor:
		c.cursor = s
		return RepaintCursor | Emit
	case DraggingRange:
		c.sel.To = s
		return RepaintWave
	}
	return 0
}

// PointerUp finishes a drag.
func (c *Controller) PointerUp(x int) Effect {
	return c.release(x)
}

// PointerLeave finishes a drag when the pointer leaves the view.
func (c *Controller) PointerLeave(x int) Effect {
	return c.release(x)
}

func (c *Controller) release(x int) Effect {
	mode := c.mode
	c.mode = None
	if mode != DraggingRange || !c.usable() {
		return 0
	}
	c.sel.To = c.geom.PixelToSample(x)
	c.sel = c.sel.Normalize()
	return RepaintWave | RepaintCursor | Emit
}

// SetSelection selects [begin,end]. Negative offsets count from the end of
// the buffer. Both resolved ends must lie in [0,N); otherwise the selection
// is left unchanged. Explicit sets never emit.
func (c *Controller) SetSelection(begin, end int) (Effect, error) {
	n := c.geom.Length
	if n < 1 {
		return 0, ErrEmpty
	}
	from, err := resolve(begin, n)
	if err != nil {
		return 0, fmt.Errorf("selection begin: %w", err)
	}
	to, err := resolve(end, n)
	if err != nil {
		return 0, fmt.Errorf("selection end: %w", err)
	}
	c.sel = Range{From: from, To: to}.Normalize()
	return RepaintWave, nil
}

// ClearSelection sets the null selection.
func (c *Controller) ClearSelection() Effect {
	c.sel = Range{}
	return RepaintWave
}

// SetCursor places the cursor at sample s, clamped to the last sample.
// Negative offsets are rejected.
func (c *Controller) SetCursor(s int) (Effect, error) {
	if s < 0 {
		return 0, fmt.Errorf("cursor %d: %w", s, ErrOutOfRange)
	}
	if c.geom.Length < 1 {
		return 0, ErrEmpty
	}
	c.cursor = min(s, c.geom.Length-1)
	return RepaintCursor, nil
}

func resolve(off, n int) (int, error) {
	if off < 0 {
		off += n
	}
	if off < 0 || off >= n {
		return 0, fmt.Errorf("%d not in [0,%d): %w", off, n, ErrOutOfRange)
	}
	return off, nil
}
