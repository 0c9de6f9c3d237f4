package waveview

import (
	"fmt"
	"math"

	"github.com/olivier-w/wavescope/internal/selection"
	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/units"
)

// PointerDown starts a cursor drag at pixel x, or a range drag when
// rangeMod is held.
func (v *View) PointerDown(x int, rangeMod bool) {
	v.validate()
	v.apply(v.ctl.PointerDown(x, rangeMod))
}

// PointerDrag continues the current drag.
func (v *View) PointerDrag(x int) {
	v.validate()
	v.apply(v.ctl.PointerDrag(x))
}

// PointerUp ends the current drag.
func (v *View) PointerUp(x int) {
	v.validate()
	v.apply(v.ctl.PointerUp(x))
}

// PointerLeave ends the current drag at the last pixel x inside the view.
func (v *View) PointerLeave(x int) {
	v.validate()
	v.apply(v.ctl.PointerLeave(x))
}

// Select sets the selection to [begin,end] in samples. Negative offsets
// count from the end. Explicit selections are not emitted.
func (v *View) Select(begin, end int) error {
	if !v.validate() {
		return fmt.Errorf("select: %w", source.ErrInvalidSource)
	}
	e, err := v.ctl.SetSelection(begin, end)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	v.apply(e)
	return nil
}

// ClearSelection selects nothing.
func (v *View) ClearSelection() {
	v.apply(v.ctl.ClearSelection())
}

// SetCursor moves the cursor to sample s. Values past the end clamp to the
// last sample; negative values fail with selection.ErrOutOfRange.
func (v *View) SetCursor(s int) error {
	if !v.validate() {
		return fmt.Errorf("cursor: %w", source.ErrInvalidSource)
	}
	e, err := v.ctl.SetCursor(s)
	if err != nil {
		return err
	}
	v.apply(e)
	return nil
}

// CursorIn returns the cursor in unit u.
func (v *View) CursorIn(u units.Unit) (float64, error) {
	v.validate()
	return v.converter().FromSample(u, float64(v.ctl.Cursor()))
}

// SetCursorIn moves the cursor to a position expressed in unit u.
func (v *View) SetCursorIn(u units.Unit, val float64) error {
	if u == units.Sample {
		return v.SetCursor(int(math.Round(val)))
	}
	if !v.validate() {
		return fmt.Errorf("cursor: %w", source.ErrInvalidSource)
	}
	s, err := v.converter().ToSample(u, val)
	if err != nil {
		return fmt.Errorf("cursor %s: %w", u, err)
	}
	return v.SetCursor(s)
}

// SelectionIn returns the normalized selection bounds in unit u.
func (v *View) SelectionIn(u units.Unit) (from, to float64, err error) {
	v.validate()
	sel := v.ctl.Selection().Normalize()
	conv := v.converter()
	if from, err = conv.FromSample(u, float64(sel.From)); err != nil {
		return 0, 0, err
	}
	if to, err = conv.FromSample(u, float64(sel.To)); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// SetSelectionIn selects [a,b] expressed in unit u. Sample bounds accept
// negative offsets like Select.
func (v *View) SetSelectionIn(u units.Unit, a, b float64) error {
	if u == units.Sample {
		return v.Select(int(math.Round(a)), int(math.Round(b)))
	}
	if !v.validate() {
		return fmt.Errorf("select: %w", source.ErrInvalidSource)
	}
	conv := v.converter()
	from, err := conv.ToSample(u, a)
	if err != nil {
		return fmt.Errorf("select %s: %w", u, err)
	}
	to, err := conv.ToSample(u, b)
	if err != nil {
		return fmt.Errorf("select %s: %w", u, err)
	}
	return v.Select(from, to)
}

// SizeIn returns the table length in unit u.
func (v *View) SizeIn(u units.Unit) (float64, error) {
	v.validate()
	return v.converter().Size(u)
}

// Span returns the half-open sample span playback or export should
// cover: the selection including its end sample, or the cursor to the end
// of the table when nothing is selected.
func (v *View) Span() selection.Range {
	v.validate()
	sel := v.ctl.Selection().Normalize()
	if !sel.IsNull() {
		return selection.Range{From: sel.From, To: sel.To + 1}
	}
	return selection.Range{From: v.ctl.Cursor(), To: v.handle.Size()}
}
