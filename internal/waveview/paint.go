package waveview

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/wavescope/internal/canvas"
	"github.com/olivier-w/wavescope/internal/summary"
	"github.com/olivier-w/wavescope/internal/util"
)

// Paint draws every invalid layer: the background, then the waveform with
// the selection span highlighted, then the cursor line.
func (v *View) Paint() {
	if v.width < 1 {
		return
	}
	v.validate()
	if v.surface.Begin(canvas.Background) {
		v.surface.SetColor(v.colors.Background)
		v.surface.FillRect(0, 0, float64(v.width), float64(v.height))
	}
	if v.surface.Begin(canvas.Wave) {
		v.paintWave()
	}
	if v.surface.Begin(canvas.Cursor) {
		v.paintCursor()
	}
}

func (v *View) paintWave() {
	bins := v.renderer.Buffer().Bins()
	geom := v.ctl.Geometry()
	sel := v.ctl.Selection().Normalize()

	if sel.IsNull() || geom.Length < 2 {
		v.segment(bins, 0, len(bins), v.colors.Wave)
	} else {
		p0, p1 := geom.SampleToPixel(sel.From), geom.SampleToPixel(sel.To)
		v.segment(bins, 0, p0, v.colors.Wave)
		v.surface.SetColor(canvas.Mix(v.colors.Background, v.colors.Selection, 0.9))
		v.surface.FillRect(float64(p0), 0, float64(p1-p0+1), float64(v.height))
		v.segment(bins, p0, p1+1, canvas.Mix(v.colors.Wave, v.colors.Selection, 0.4))
		v.segment(bins, p1+1, len(bins), v.colors.Wave)
	}

	if v.showRMS {
		v.surface.SetColor(canvas.Contrast(v.colors.Wave, 0.5))
		for x, b := range bins {
			if b.RMS == 0 {
				continue
			}
			v.surface.MoveTo(float64(x), v.ampY(b.RMS))
			v.surface.LineTo(float64(x), v.ampY(-b.RMS))
		}
		v.surface.Stroke()
	}
}

// segment draws one min/max bar per column of [from,to).
func (v *View) segment(bins []summary.Bin, from, to int, c colorful.Color) {
	from, to = max(from, 0), min(to, len(bins))
	if from >= to {
		return
	}
	v.surface.SetColor(c)
	for x := from; x < to; x++ {
		v.surface.MoveTo(float64(x), v.ampY(bins[x].PeakMax))
		v.surface.LineTo(float64(x), v.ampY(bins[x].PeakMin))
	}
	v.surface.Stroke()
}

func (v *View) paintCursor() {
	x := float64(v.ctl.Geometry().SampleToPixel(v.ctl.Cursor()))
	v.surface.SetColor(v.colors.Cursor)
	v.surface.MoveTo(x, 0)
	v.surface.LineTo(x, float64(v.height-1))
	v.surface.Stroke()
}

// ampY maps an amplitude in [-1,1] to a row, +1 at the top.
func (v *View) ampY(a float32) float64 {
	amp := float64(a)
	if amp > 1 {
		amp = 1
	}
	if amp < -1 {
		amp = -1
	}
	return (1 - amp) * float64(v.height-1) / 2
}

// Labels are the texts shown in the corners of the view.
type Labels struct {
	TopLeft, TopRight       string
	BottomLeft, BottomRight string
}

// Labels returns the corner texts, or none when labels are hidden.
func (v *View) Labels() Labels {
	if !v.showLabels {
		return Labels{}
	}
	l := Labels{
		TopLeft:     v.handle.Name(),
		TopRight:    v.labelTop,
		BottomRight: v.labelBottom,
	}
	if sec, err := v.converter().SampleToSec(float64(v.ctl.Cursor())); err == nil {
		l.BottomLeft = util.FormatPrecise(time.Duration(sec * float64(time.Second)))
	}
	return l
}

// Colors returns the paint colours.
func (v *View) Colors() Colors { return v.colors }

// SetColors changes the paint colours and invalidates the layers that use
// the changed ones.
func (v *View) SetColors(c Colors) {
	old := v.colors
	v.colors = c
	switch {
	case c.Background != old.Background:
		v.invalidate(canvas.Background, canvas.Wave, canvas.Cursor)
		return
	case c.Wave != old.Wave || c.Selection != old.Selection:
		v.surface.Invalidate(canvas.Wave)
	}
	if c.Cursor != old.Cursor {
		v.surface.Invalidate(canvas.Cursor)
	}
	if c != old {
		v.surface.Redraw()
	}
}

// ShowRMS reports whether the rms envelope is drawn.
func (v *View) ShowRMS() bool { return v.showRMS }

// SetShowRMS toggles the rms envelope.
func (v *View) SetShowRMS(on bool) {
	if on != v.showRMS {
		v.showRMS = on
		v.invalidate(canvas.Wave)
	}
}

// ShowLabels reports whether corner labels are shown.
func (v *View) ShowLabels() bool { return v.showLabels }

// SetShowLabels toggles the corner labels.
func (v *View) SetShowLabels(on bool) {
	if on != v.showLabels {
		v.showLabels = on
		v.invalidate(canvas.Background, canvas.Wave, canvas.Cursor)
	}
}

// SetLabels sets the user texts shown on the right.
func (v *View) SetLabels(top, bottom string) {
	v.labelTop, v.labelBottom = top, bottom
	v.invalidate(canvas.Background, canvas.Wave, canvas.Cursor)
}
