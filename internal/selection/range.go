// Package selection holds the cursor/range selection state of a waveform
// view and the pointer state machine that edits it.
package selection

// Range is a pair of absolute sample offsets. Interaction may produce the
// ends in either order; call Normalize before using it as an interval.
// A zero-length range is the null selection.
type Range struct {
	From int
	To   int
}

// Len returns To-From, which is negative for an unnormalized range.
func (r Range) Len() int { return r.To - r.From }

// AbsLen returns |To-From|.
func (r Range) AbsLen() int {
	if n := r.Len(); n < 0 {
		return -n
	}
	return r.Len()
}

// IsNull reports whether the range selects nothing.
func (r Range) IsNull() bool { return r.Len() == 0 }

// Normalize returns the range with From <= To.
func (r Range) Normalize() Range {
	if r.To < r.From {
		r.From, r.To = r.To, r.From
	}
	return r
}

// Clamp limits both ends to [0,n-1]. A range over an empty buffer becomes null.
func (r Range) Clamp(n int) Range {
	if n < 1 {
		return Range{}
	}
	return Range{From: clampInt(r.From, 0, n-1), To: clampInt(r.To, 0, n-1)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
