package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/units"
	"github.com/olivier-w/wavescope/internal/util"
	"github.com/olivier-w/wavescope/internal/waveview"
)

// renderLabelLine puts left and right at the edges of width cells.
func renderLabelLine(left, right string, width int) string {
	l, r := labelStyle.Render(left), labelStyle.Render(right)
	gap := width - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		gap = 1
	}
	return l + spaces(gap) + r
}

// renderPosition describes the view's cursor and selection.
func renderPosition(v *waveview.View) string {
	s := fmt.Sprintf("cursor %d", v.Cursor())
	if sec, err := v.CursorIn(units.Seconds); err == nil {
		s += "  " + util.FormatPrecise(time.Duration(sec*float64(time.Second)))
	}
	sel := v.Selection().Normalize()
	if !sel.IsNull() {
		s += fmt.Sprintf("   sel %d–%d (%d smp)", sel.From, sel.To, sel.AbsLen()+1)
	}
	return s
}

// renderLastOutput shows the most recent emitted values.
func renderLastOutput(l *outlet.Latest) string {
	m, ok := l.Get(outlet.CursorSamp)
	if !ok {
		return ""
	}
	s := fmt.Sprintf("→ cursor %g", m.Values[0])
	if b, ok := l.Get(outlet.Begin); ok {
		if e, ok := l.Get(outlet.End); ok {
			s += fmt.Sprintf("  begin %g end %g", b.Values[0], e.Values[0])
		}
	}
	return s
}

func renderTableInfo(v *waveview.View) string {
	t := v.Handle().Table()
	if t == nil {
		return "no array"
	}
	return util.FormatSamples(t.Len(), v.SampleRate())
}

func formatElapsed(d time.Duration) string {
	return timeStyle.Render(util.FormatDuration(d))
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
