// Package render refines a pixel summary of a sample buffer in bounded
// chunks driven by a cooperative scheduler.
package render

import (
	"time"

	"github.com/olivier-w/wavescope/internal/summary"
)

const (
	// DefaultChunkSize is five seconds of audio at 44.1 kHz.
	DefaultChunkSize = 44100 * 5
	// DefaultPeriod is the delay between two chunks.
	DefaultPeriod = 100 * time.Millisecond
)

// Scheduler runs a single pending callback after a delay on the caller's
// goroutine. Delay replaces any pending callback; Unset cancels it.
type Scheduler interface {
	Delay(d time.Duration, fn func())
	Unset()
}

// Source is a sample buffer that may change or vanish between calls.
// Update re-validates it and reports whether it can be read.
type Source interface {
	summary.Reader
	Update() bool
}

// State is the refinement state.
type State uint8

const (
	Idle State = iota
	QuickPass
	Chunking
)

func (s State) String() string {
	switch s {
	case QuickPass:
		return "quick"
	case Chunking:
		return "chunking"
	default:
		return "idle"
	}
}

// Options tunes the chunking.
type Options struct {
	ChunkSize int
	Period    time.Duration
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Period <= 0 {
		o.Period = DefaultPeriod
	}
	return o
}

// Renderer owns the summary buffer of a view and the chunk cursor that
// refines it. All methods must be called from the scheduler's goroutine.
type Renderer struct {
	src     Source
	buf     *summary.Buffer
	clock   Scheduler
	opts    Options
	repaint func(from, to int)

	state  State
	cursor int
	size   int
	ticks  int
}

// New returns an idle renderer with an empty buffer. repaint is called
// with the half-open pixel span that changed; it may be nil.
func New(clock Scheduler, opts Options, repaint func(from, to int)) *Renderer {
	if repaint == nil {
		repaint = func(int, int) {}
	}
	return &Renderer{
		buf:     summary.NewBuffer(0),
		clock:   clock,
		opts:    opts.withDefaults(),
		repaint: repaint,
	}
}

// SetSource replaces the source and cancels any refinement in progress.
// Call Refresh to render it.
func (r *Renderer) SetSource(src Source) {
	r.Stop()
	r.src = src
}

// Resize reallocates the buffer for w pixels and restarts rendering from
// scratch. A width below one is a programming error.
func (r *Renderer) Resize(w int) {
	if w < 1 {
		panic("render: width must be positive")
	}
	r.buf.Resize(w)
	r.Refresh()
}

// Refresh cancels pending work, fills the buffer with a quick one sample
// per pixel pass and schedules the accurate pass. It reports whether the
// source could be rendered; an unusable source leaves a flat buffer.
func (r *Renderer) Refresh() bool {
	r.Stop()

	if r.src == nil || !r.src.Update() {
		r.flatten()
		return false
	}

	r.state = QuickPass
	r.size = r.src.Size()
	if !summary.QuickRender(r.buf, r.src) {
		r.state = Idle
		r.flatten()
		return false
	}
	r.repaint(0, r.buf.Width())

	r.state = Chunking
	r.clock.Delay(r.opts.Period, r.tick)
	return true
}

// Clear cancels pending work and flattens the buffer.
func (r *Renderer) Clear() {
	r.Stop()
	r.flatten()
}

// Stop cancels pending work and returns to Idle.
func (r *Renderer) Stop() {
	r.clock.Unset()
	r.state = Idle
	r.cursor = 0
}

func (r *Renderer) tick() {
	if r.state != Chunking {
		return
	}
	if r.src == nil || !r.src.Update() {
		r.state = Idle
		r.cursor = 0
		r.flatten()
		return
	}

	n := r.src.Size()
	if n != r.size {
		r.Refresh()
		return
	}

	r.ticks++
	count := min(r.opts.ChunkSize, n-r.cursor)
	if from, to := summary.RenderRange(r.buf, r.src, r.cursor, count); from < to {
		r.repaint(from, to)
	}

	if r.cursor+r.opts.ChunkSize < n {
		r.cursor += r.opts.ChunkSize
		r.clock.Delay(r.opts.Period, r.tick)
		return
	}
	r.cursor = 0
	r.state = Idle
}

func (r *Renderer) flatten() {
	r.buf.Clear()
	r.size = 0
	r.repaint(0, r.buf.Width())
}

// Buffer returns the summary being refined.
func (r *Renderer) Buffer() *summary.Buffer { return r.buf }

// State returns the current refinement state.
func (r *Renderer) State() State { return r.state }

// Cursor returns the first sample of the next chunk.
func (r *Renderer) Cursor() int { return r.cursor }

// Ticks returns how many chunks have been rendered since New.
func (r *Renderer) Ticks() int { return r.ticks }

// Options returns the effective chunking options.
func (r *Renderer) Options() Options { return r.opts }

// Progress returns the refined fraction of the source in [0,1].
func (r *Renderer) Progress() float64 {
	if r.state != Chunking || r.size == 0 {
		return 1
	}
	return float64(r.cursor) / float64(r.size)
}
