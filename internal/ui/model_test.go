package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/wavescope/internal/oscctl"
	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/render"
	"github.com/olivier-w/wavescope/internal/selection"
	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/units"
	"github.com/olivier-w/wavescope/internal/viewtest"
	"github.com/olivier-w/wavescope/internal/waveview"
)

func newTestModel(t *testing.T, names ...string) Model {
	t.Helper()
	reg := source.NewRegistry()
	for _, name := range names {
		reg.Put(source.NewTable(name, viewtest.Ramp(1000), 44100))
	}
	m := New(reg, Options{
		View: waveview.Options{
			SampleRate: 44100,
			Render:     render.Options{ChunkSize: 100},
		},
		Rows:     4,
		Audition: true,
	})
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 44, Height: 30})
	return m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeResizesViewAndSchedulesChunk(t *testing.T) {
	m := newTestModel(t, "a")
	w, h := m.view.Size()
	if w != 80 || h != 16 {
		t.Fatalf("view size = %dx%d, want 80x16", w, h)
	}
	if m.clock.fn == nil {
		t.Fatal("expected a scheduled chunk after resize")
	}
	if m.view.RenderState() != render.Chunking {
		t.Fatalf("render state = %s, want chunking", m.view.RenderState())
	}
}

func TestChunkTickIgnoresStaleSeq(t *testing.T) {
	m := newTestModel(t, "a")
	seq := m.clock.seq

	m, _ = m.handleMsg(chunkTickMsg{seq: seq - 1})
	if p := m.view.Progress(); p != 0 {
		t.Fatalf("stale tick advanced progress to %v", p)
	}

	m, cmd := m.handleMsg(chunkTickMsg{seq: seq})
	if p := m.view.Progress(); p != 0.1 {
		t.Fatalf("progress = %v, want 0.1", p)
	}
	if cmd == nil {
		t.Fatal("expected next chunk command")
	}
	if m.clock.seq == seq {
		t.Fatal("expected a new schedule sequence")
	}
}

func TestRefreshCancelsPendingTick(t *testing.T) {
	m := newTestModel(t, "a")
	seq := m.clock.seq
	m, _ = m.handleMsg(oscctl.UpdateMsg{})
	if m.clock.seq <= seq {
		t.Fatal("refresh should reschedule")
	}
	m, _ = m.handleMsg(chunkTickMsg{seq: seq})
	if p := m.view.Progress(); p != 0 {
		t.Fatalf("cancelled tick ran: progress %v", p)
	}
}

func TestMouseRangeDragSelects(t *testing.T) {
	m := newTestModel(t, "a")
	m, _ = m.handleMsg(tea.MouseMsg{X: margin + 10, Y: canvasTop, Shift: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.handleMsg(tea.MouseMsg{X: margin + 20, Y: canvasTop + 1, Shift: true, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.view.Mode() != selection.DraggingRange {
		t.Fatalf("mode = %s, want range", m.view.Mode())
	}
	m, _ = m.handleMsg(tea.MouseMsg{X: margin + 30, Y: canvasTop + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if got := m.view.Selection(); got != (selection.Range{From: 252, To: 758}) {
		t.Fatalf("selection = %+v, want {252 758}", got)
	}
	if b, ok := m.latest.Get(outlet.Begin); !ok || b.Values[0] != 252 {
		t.Fatalf("begin not emitted: %v %v", b, ok)
	}
}

func TestMouseLeavingCanvasEndsDrag(t *testing.T) {
	m := newTestModel(t, "a")
	m, _ = m.handleMsg(tea.MouseMsg{X: margin + 10, Y: canvasTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.view.Mode() != selection.DraggingCursor {
		t.Fatalf("mode = %s, want cursor", m.view.Mode())
	}
	m, _ = m.handleMsg(tea.MouseMsg{X: margin + 10, Y: canvasTop + 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.dragging || m.view.Mode() != selection.None {
		t.Fatal("leaving the canvas should end the drag")
	}
}

func TestPressOutsideCanvasIgnored(t *testing.T) {
	m := newTestModel(t, "a")
	m, _ = m.handleMsg(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.dragging {
		t.Fatal("press outside the canvas should not start a drag")
	}
}

func TestOSCMessagesDriveView(t *testing.T) {
	m := newTestModel(t, "a")

	m, _ = m.handleMsg(oscctl.SelectMsg{Unit: units.Sample, Begin: -3, End: -1})
	if got := m.view.Selection(); got != (selection.Range{From: 997, To: 999}) {
		t.Fatalf("selection = %+v", got)
	}
	m, _ = m.handleMsg(oscctl.CursorMsg{Unit: units.Millis, Value: 10})
	if m.view.Cursor() != 441 {
		t.Fatalf("cursor = %d, want 441", m.view.Cursor())
	}
	m, _ = m.handleMsg(oscctl.BangMsg{})
	if c, ok := m.latest.Get(outlet.CursorSamp); !ok || c.Values[0] != 441 {
		t.Fatalf("bang did not emit cursor: %v", c)
	}
	m, _ = m.handleMsg(oscctl.SelectMsg{Unit: units.Sample, Clear: true})
	if !m.view.Selection().IsNull() {
		t.Fatal("select with no bounds should clear")
	}
	m, _ = m.handleMsg(oscctl.CursorMsg{Unit: units.Phase, Value: 2})
	if !strings.Contains(m.statusMsg, "cursor failed") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestTabCyclesArrays(t *testing.T) {
	m := newTestModel(t, "a", "b")
	if m.view.Name() != "a" {
		t.Fatalf("initial array = %q", m.view.Name())
	}
	m, _ = m.handleMsg(keyPress("tab"))
	if m.view.Name() != "b" {
		t.Fatalf("after tab = %q, want b", m.view.Name())
	}
	m, _ = m.handleMsg(keyPress("tab"))
	if m.view.Name() != "a" {
		t.Fatalf("after second tab = %q, want a", m.view.Name())
	}
}

func TestPickerAttachesChosenArray(t *testing.T) {
	m := newTestModel(t, "a", "b")
	m.view.SetCursor(10)
	m, _ = m.handleMsg(keyPress("a"))
	if !m.picking {
		t.Fatal("expected picker to open")
	}
	m, _ = m.handleMsg(arrayPickedMsg{name: "b"})
	if m.picking || m.view.Name() != "b" {
		t.Fatalf("picking=%v name=%q", m.picking, m.view.Name())
	}
	if m.view.Cursor() != 0 {
		t.Fatal("attach should reset the cursor")
	}
}

func TestNudgeMovesByOneColumnAndEmits(t *testing.T) {
	m := newTestModel(t, "a")
	m, _ = m.handleMsg(keyPress("right"))
	if m.view.Cursor() != 12 {
		t.Fatalf("cursor = %d, want 12", m.view.Cursor())
	}
	if c, ok := m.latest.Get(outlet.CursorSamp); !ok || c.Values[0] != 12 {
		t.Fatal("nudge should emit the cursor")
	}
}

func TestToggleKeys(t *testing.T) {
	m := newTestModel(t, "a")
	m, _ = m.handleMsg(keyPress("r"))
	if !m.view.ShowRMS() {
		t.Fatal("r should enable rms")
	}
	m, _ = m.handleMsg(keyPress("L"))
	if !m.view.ShowLabels() {
		t.Fatal("L should enable labels")
	}
	m, _ = m.handleMsg(keyPress("?"))
	if !m.help.ShowAll {
		t.Fatal("? should expand help")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, "a")
	m, cmd := m.handleMsg(keyPress("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if m.View() != "" {
		t.Fatal("expected empty view when quitting")
	}
}

func TestViewShowsCanvas(t *testing.T) {
	m := newTestModel(t, "a")
	v := m.View()
	if !strings.Contains(v, "wavescope") {
		t.Fatal("missing header")
	}
	hasDots := strings.ContainsFunc(v, func(r rune) bool { return r > 0x2800 && r <= 0x28FF })
	if !hasDots {
		t.Fatal("expected braille waveform in view")
	}
}

func TestExportPath(t *testing.T) {
	named := source.NewTable("my table", nil, 44100)
	if got := exportPath(named, 0, 10); got != "my_table-0-10.wav" {
		t.Fatalf("exportPath = %q", got)
	}
}

func TestExportWritesSelection(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tone.wav")
	if err := source.ExportWAV(src, viewtest.Sine(2000, 50), 22050); err != nil {
		t.Fatalf("ExportWAV: %v", err)
	}
	table, err := source.Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	reg := source.NewRegistry()
	reg.Put(table)
	m := New(reg, Options{View: waveview.Options{SampleRate: 44100}, Rows: 4})
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 44, Height: 30})
	if err := m.view.Select(100, 199); err != nil {
		t.Fatalf("Select: %v", err)
	}

	cmd := m.exportCmd()
	if cmd == nil {
		t.Fatal("expected export command")
	}
	saved, ok := cmd().(fileSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("export result = %#v", saved)
	}
	if want := filepath.Join(dir, "tone-100-200.wav"); saved.destName != want {
		t.Fatalf("dest = %q, want %q", saved.destName, want)
	}
	out, err := source.Load(saved.destName)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if out.Len() != 100 || out.SampleRate() != 22050 {
		t.Fatalf("export has %d samples at %d Hz", out.Len(), out.SampleRate())
	}
	if _, err := os.Stat(saved.destName); err != nil {
		t.Fatal(err)
	}
}

func TestAuditionDisabled(t *testing.T) {
	reg := source.NewRegistry()
	reg.Put(source.NewTable("a", viewtest.Ramp(10), 44100))
	m := New(reg, Options{View: waveview.Options{SampleRate: 44100}, Rows: 4})
	m, cmd := m.handleMsg(keyPress("p"))
	if cmd != nil || !strings.Contains(m.statusMsg, "disabled") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}
