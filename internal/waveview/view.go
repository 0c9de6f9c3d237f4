// Package waveview implements an interactive waveform view over a named
// sample table: progressive rendering, cursor and range selection, and
// tagged output of the current positions.
package waveview

import (
	"fmt"
	"io"
	"log"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/wavescope/internal/canvas"
	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/render"
	"github.com/olivier-w/wavescope/internal/selection"
	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/summary"
	"github.com/olivier-w/wavescope/internal/units"
)

// Surface is the layered drawing target of a view. Coordinates are in
// pixels with y growing downwards.
type Surface interface {
	Begin(l canvas.Layer) bool
	SetColor(c colorful.Color)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	FillRect(x, y, w, h float64)
	Invalidate(l canvas.Layer)
	Redraw()
}

// Colors are the view's paint colours.
type Colors struct {
	Wave       colorful.Color
	Cursor     colorful.Color
	Selection  colorful.Color
	Background colorful.Color
}

// DefaultColors returns the built-in palette.
func DefaultColors() Colors {
	return Colors{
		Wave:       canvas.MustColor("#5fafd7"),
		Cursor:     canvas.MustColor("#ff5f87"),
		Selection:  canvas.MustColor("#303a4a"),
		Background: canvas.MustColor("#121212"),
	}
}

// Options configure a View.
type Options struct {
	SampleRate  float64
	Render      render.Options
	Colors      *Colors
	ShowRMS     bool
	ShowLabels  bool
	LabelTop    string
	LabelBottom string
	Logger      *log.Logger
}

// View shows one table of a registry. All methods must be called from the
// goroutine that drives the scheduler.
type View struct {
	handle   *source.Handle
	surface  Surface
	sink     outlet.Sink
	renderer *render.Renderer
	ctl      selection.Controller
	logger   *log.Logger

	sampleRate    float64
	width, height int

	colors                Colors
	showRMS, showLabels   bool
	labelTop, labelBottom string

	valid  bool
	warned bool
}

// New returns a detached view. Call Resize and Attach before painting.
func New(reg *source.Registry, clock render.Scheduler, surface Surface, sink outlet.Sink, opts Options) *View {
	if sink == nil {
		sink = outlet.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	colors := DefaultColors()
	if opts.Colors != nil {
		colors = *opts.Colors
	}
	v := &View{
		handle:      source.NewHandle(reg),
		surface:     surface,
		sink:        sink,
		logger:      logger,
		sampleRate:  opts.SampleRate,
		colors:      colors,
		showRMS:     opts.ShowRMS,
		showLabels:  opts.ShowLabels,
		labelTop:    opts.LabelTop,
		labelBottom: opts.LabelBottom,
	}
	v.renderer = render.New(clock, opts.Render, v.repaintWave)
	v.renderer.SetSource(v.handle)
	return v
}

// repaintWave also follows a length change found by the renderer, so the
// cursor and selection are clamped before the next paint.
func (v *View) repaintWave(from, to int) {
	if n := v.handle.Size(); n != v.ctl.Geometry().Length {
		v.ctl.SetGeometry(v.width, n)
		v.surface.Invalidate(canvas.Cursor)
	}
	v.surface.Invalidate(canvas.Wave)
	v.surface.Redraw()
}

// Attach binds the view to the named table, resets the cursor and the
// selection and starts rendering. An unknown name leaves a flat view and
// returns source.ErrInvalidSource.
func (v *View) Attach(name string) error {
	v.warned = false
	v.handle.Open(name)
	v.ctl.Reset()
	ok := v.refresh()
	v.invalidate(canvas.Wave, canvas.Cursor)
	if !ok {
		return fmt.Errorf("attach %q: %w", name, source.ErrInvalidSource)
	}
	return nil
}

// Refresh re-reads the table and renders it again from scratch. It
// reports whether the table could be rendered.
func (v *View) Refresh() bool {
	ok := v.refresh()
	v.invalidate(canvas.Wave, canvas.Cursor)
	return ok
}

func (v *View) refresh() bool {
	if v.width < 1 {
		return v.validate()
	}
	v.renderer.Refresh()
	return v.sync(v.handle.Valid())
}

// Resize changes the pixel size of the view. A width change reallocates
// the summary and restarts rendering; a height change alone only
// repaints. A width below one panics.
func (v *View) Resize(w, h int) {
	if w < 1 {
		panic("waveview: width must be positive")
	}
	h = max(h, 1)
	if w == v.width {
		if h != v.height {
			v.height = h
			v.invalidate(canvas.Background, canvas.Wave, canvas.Cursor)
		}
		return
	}
	v.width, v.height = w, h
	v.renderer.Resize(w)
	v.sync(v.handle.Valid())
	v.invalidate(canvas.Background, canvas.Wave, canvas.Cursor)
}

// validate re-resolves the table and updates the pointer geometry.
func (v *View) validate() bool {
	return v.sync(v.handle.Update())
}

func (v *View) sync(ok bool) bool {
	v.ctl.SetGeometry(v.width, v.handle.Size())
	if ok {
		v.valid = true
		v.warned = false
		return true
	}
	if v.valid {
		v.valid = false
		v.renderer.Clear()
	}
	if !v.warned && v.handle.Name() != "" {
		v.warned = true
		v.logger.Printf("invalid array: %q", v.handle.Name())
	}
	return false
}

func (v *View) invalidate(layers ...canvas.Layer) {
	for _, l := range layers {
		v.surface.Invalidate(l)
	}
	v.surface.Redraw()
}

func (v *View) apply(e selection.Effect) {
	if e.Has(selection.RepaintWave) {
		v.surface.Invalidate(canvas.Wave)
	}
	if e.Has(selection.RepaintCursor) {
		v.surface.Invalidate(canvas.Cursor)
	}
	if e != 0 {
		v.surface.Redraw()
	}
	if e.Has(selection.Emit) {
		if err := v.Output(); err != nil {
			v.logger.Printf("output: %v", err)
		}
	}
}

// Name returns the attached table name.
func (v *View) Name() string { return v.handle.Name() }

// Handle returns the view's table handle.
func (v *View) Handle() *source.Handle { return v.handle }

// Size returns the pixel size.
func (v *View) Size() (w, h int) { return v.width, v.height }

// Cursor returns the cursor sample.
func (v *View) Cursor() int { return v.ctl.Cursor() }

// Selection returns the selection; the null range when nothing is selected.
func (v *View) Selection() selection.Range { return v.ctl.Selection() }

// Mode returns the pointer drag state.
func (v *View) Mode() selection.Mode { return v.ctl.Mode() }

// Summary returns the pixel summary being rendered.
func (v *View) Summary() *summary.Buffer { return v.renderer.Buffer() }

// RenderState returns the progressive rendering state.
func (v *View) RenderState() render.State { return v.renderer.State() }

// Progress returns the refined fraction of the table.
func (v *View) Progress() float64 { return v.renderer.Progress() }

// SampleRate returns the rate used for time conversions.
func (v *View) SampleRate() float64 { return v.sampleRate }

// SetSampleRate changes the rate used for time conversions.
func (v *View) SetSampleRate(sr float64) {
	v.sampleRate = sr
	v.invalidate(canvas.Background)
}

func (v *View) converter() units.Converter {
	return units.New(v.handle.Size(), v.sampleRate)
}
