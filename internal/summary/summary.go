// Package summary reduces a long sample buffer to one peak/rms bin per
// pixel column.
package summary

import "math"

// Bin is the summary of the samples shown in one pixel column.
type Bin struct {
	PeakMin float32
	PeakMax float32
	RMS     float32
}

// Reader is the read side of a sample buffer.
type Reader interface {
	Size() int
	At(i int) float32
}

// Buffer holds one Bin per pixel column. Resizing allocates a fresh
// sequence; bins are never shared between widths.
type Buffer struct {
	bins []Bin
}

// NewBuffer returns a zeroed buffer of width w.
func NewBuffer(w int) *Buffer {
	return &Buffer{bins: make([]Bin, max(w, 0))}
}

// Width returns the number of bins.
func (b *Buffer) Width() int { return len(b.bins) }

// Bins exposes the bins for drawing. Callers must not retain the slice
// across a Resize.
func (b *Buffer) Bins() []Bin { return b.bins }

// At returns bin x.
func (b *Buffer) At(x int) Bin { return b.bins[x] }

// Resize replaces the bins with a zeroed sequence of width w.
func (b *Buffer) Resize(w int) {
	b.bins = make([]Bin, max(w, 0))
}

// Clear zeroes all bins, which draws as a flat line.
func (b *Buffer) Clear() {
	clear(b.bins)
}

// Window returns the sample window [start,end) of pixel x for a buffer of
// width w over n samples: start is floor(x*(n-1)/(w-1)), the window is
// ceil(n/w) samples long and never runs past n.
func Window(x, w, n int) (start, end int) {
	start = int(int64(x) * int64(n-1) / int64(w-1))
	end = min(start+(n+w-1)/w, n)
	return start, end
}

// QuickRender fills every bin from a single sample, giving an immediate
// but lossy picture. It does nothing and returns false when either the
// buffer or the source has fewer than two entries.
func QuickRender(b *Buffer, src Reader) bool {
	w, n := b.Width(), src.Size()
	if w < 2 || n < 2 {
		return false
	}
	for x := range w {
		idx := int(int64(x) * int64(n-1) / int64(w-1))
		v := src.At(idx)
		b.bins[x] = Bin{PeakMin: v, PeakMax: v, RMS: v}
	}
	return true
}

// RenderRange recomputes every bin whose sample window intersects
// [pos,pos+count) with the true min/max and rms over the whole window.
// It returns the half-open pixel span it touched; from == to means
// nothing was rendered. Re-running it over an unchanged source yields
// identical bins.
func RenderRange(b *Buffer, src Reader, pos, count int) (from, to int) {
	w, n := b.Width(), src.Size()
	if w < 2 || n < 2 || count <= 0 || pos >= n {
		return 0, 0
	}
	pos = max(pos, 0)
	limit := min(pos+count, n)

	from = min(int(int64(pos)*int64(w-1)/int64(n-1)), w-1)
	for from > 0 {
		if _, end := Window(from-1, w, n); end <= pos {
			break
		}
		from--
	}
	for from < w {
		if _, end := Window(from, w, n); end > pos {
			break
		}
		from++
	}

	to = from
	for ; to < w; to++ {
		start, end := Window(to, w, n)
		if start >= limit {
			break
		}
		b.bins[to] = measure(src, start, end)
	}
	return from, to
}

func measure(src Reader, start, end int) Bin {
	lo := src.At(start)
	hi := lo
	var sum float64
	for i := start; i < end; i++ {
		v := src.At(i)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += float64(v) * float64(v)
	}
	return Bin{
		PeakMin: lo,
		PeakMax: hi,
		RMS:     float32(math.Sqrt(sum / float64(end-start))),
	}
}
