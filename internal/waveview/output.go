package waveview

import (
	"fmt"

	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/units"
)

var (
	cursorTags = [...]outlet.Tag{outlet.CursorSamp, outlet.CursorPhase, outlet.CursorMs, outlet.CursorSec}
	selectTags = [...]outlet.Tag{outlet.SelectSamp, outlet.SelectPhase, outlet.SelectMs, outlet.SelectSec}
)

// Output emits the cursor in samples, phase, milliseconds and seconds,
// followed, when the selection is not null, by the selection in the same
// four units and its raw begin and end. Nothing is emitted when any value
// cannot be computed.
func (v *View) Output() error {
	msgs, err := v.messages()
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	for _, m := range msgs {
		v.sink.Emit(m)
	}
	return nil
}

// Bang re-emits the current output.
func (v *View) Bang() error { return v.Output() }

func (v *View) messages() ([]outlet.Message, error) {
	if !v.validate() {
		return nil, source.ErrInvalidSource
	}
	n := v.handle.Size()
	if n < 1 {
		return nil, source.ErrEmptySource
	}
	conv := v.converter()

	msgs := make([]outlet.Message, 0, len(cursorTags)+len(selectTags)+2)
	cursor := float64(v.ctl.Cursor())
	for i, u := range units.All {
		val, err := conv.FromSample(u, cursor)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, outlet.Message{Tag: cursorTags[i], Values: []float64{val}})
	}

	sel := v.ctl.Selection().Normalize()
	if sel.IsNull() {
		return msgs, nil
	}
	from, to := float64(sel.From), float64(sel.To)
	for i, u := range units.All {
		a, err := conv.FromSample(u, from)
		if err != nil {
			return nil, err
		}
		b, err := conv.FromSample(u, to)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, outlet.Message{Tag: selectTags[i], Values: []float64{a, b}})
	}
	msgs = append(msgs,
		outlet.Message{Tag: outlet.Begin, Values: []float64{from}},
		outlet.Message{Tag: outlet.End, Values: []float64{to}},
	)
	return msgs, nil
}
