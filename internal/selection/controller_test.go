package selection

import (
	"errors"
	"testing"
)

func newController(width, length int) *Controller {
	c := new(Controller)
	c.SetGeometry(width, length)
	return c
}

func TestRangeDragNormalizesOnRelease(t *testing.T) {
	c := newController(100, 10)

	if eff := c.PointerDown(40, true); eff.Has(Emit) {
		t.Fatal("range press must not emit")
	}
	if c.Mode() != DraggingRange {
		t.Fatalf("expected range drag, got %v", c.Mode())
	}
	if eff := c.PointerDrag(20); eff != RepaintWave {
		t.Fatalf("expected repaint only while dragging a range, got %b", eff)
	}
	eff := c.PointerUp(10)
	if !eff.Has(Emit | RepaintWave) {
		t.Fatalf("expected repaint and emit on release, got %b", eff)
	}
	if got := c.Selection(); got != (Range{From: 0, To: 3}) {
		t.Fatalf("expected normalized (0,3), got %+v", got)
	}
	if c.Mode() != None {
		t.Fatalf("expected idle after release, got %v", c.Mode())
	}
}

func TestCursorDragEmitsOnEveryMove(t *testing.T) {
	c := newController(100, 1000)

	if eff := c.PointerDown(50, false); !eff.Has(RepaintCursor | Emit) {
		t.Fatalf("expected cursor repaint and emit, got %b", eff)
	}
	if got := c.Cursor(); got != 50*999/99 {
		t.Fatalf("unexpected cursor %d", got)
	}
	for _, x := range []int{51, 52, 200} {
		if eff := c.PointerDrag(x); !eff.Has(Emit) {
			t.Fatalf("expected emit while dragging cursor to %d", x)
		}
	}
	if got := c.Cursor(); got != 999 {
		t.Fatalf("expected cursor clamped to last sample, got %d", got)
	}
	if eff := c.PointerUp(10); eff != 0 {
		t.Fatalf("cursor release has no effect, got %b", eff)
	}
	if c.Cursor() != 999 {
		t.Fatal("release must not move the cursor")
	}
}

func TestPointerLeaveEndsRangeDrag(t *testing.T) {
	c := newController(100, 100)
	c.PointerDown(80, true)
	eff := c.PointerLeave(-10)
	if !eff.Has(Emit) {
		t.Fatal("expected leave to finish the range")
	}
	if got := c.Selection(); got != (Range{From: 0, To: 80}) {
		t.Fatalf("unexpected selection %+v", got)
	}
}

func TestPointerOpsOnEmptySourceAreNoops(t *testing.T) {
	for _, n := range []int{0, 1} {
		c := newController(100, n)
		if eff := c.PointerDown(10, false); eff != 0 {
			t.Fatalf("n=%d: expected no effect, got %b", n, eff)
		}
		if c.Mode() != None {
			t.Fatalf("n=%d: expected no drag", n)
		}
	}
}

func TestSetSelectionNegativeOffsets(t *testing.T) {
	c := newController(100, 10)

	if _, err := c.SetSelection(-3, -1); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if got := c.Selection(); got != (Range{From: 7, To: 9}) {
		t.Fatalf("expected (7,9), got %+v", got)
	}

	eff, err := c.SetSelection(-1, -1)
	if err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if eff.Has(Emit) {
		t.Fatal("explicit selection must be silent")
	}
	if got := c.Selection(); got != (Range{From: 9, To: 9}) || !got.IsNull() {
		t.Fatalf("expected null (9,9), got %+v", got)
	}
}

func TestSetSelectionOutOfRangeKeepsState(t *testing.T) {
	c := newController(100, 10)
	c.SetSelection(2, 5)

	for _, tt := range [][2]int{{0, 10}, {-11, 3}, {12, 1}} {
		if _, err := c.SetSelection(tt[0], tt[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("SetSelection(%d,%d): expected ErrOutOfRange, got %v", tt[0], tt[1], err)
		}
	}
	if got := c.Selection(); got != (Range{From: 2, To: 5}) {
		t.Fatalf("selection changed after rejected set: %+v", got)
	}
}

func TestSetCursor(t *testing.T) {
	c := newController(100, 10)
	if _, err := c.SetCursor(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := c.SetCursor(42); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	if c.Cursor() != 9 {
		t.Fatalf("expected clamp to 9, got %d", c.Cursor())
	}
}

func TestSetGeometryClampsState(t *testing.T) {
	c := newController(100, 1000)
	c.SetCursor(900)
	c.SetSelection(100, 800)
	c.SetGeometry(100, 500)
	if c.Cursor() != 499 {
		t.Fatalf("expected cursor clamp to 499, got %d", c.Cursor())
	}
	if got := c.Selection(); got != (Range{From: 100, To: 499}) {
		t.Fatalf("unexpected selection %+v", got)
	}
}
