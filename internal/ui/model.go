package ui

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/wavescope/internal/audition"
	"github.com/olivier-w/wavescope/internal/canvas"
	"github.com/olivier-w/wavescope/internal/oscctl"
	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/render"
	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/waveview"
)

const (
	margin    = 2  // columns left of the canvas
	canvasTop = 4  // lines above the canvas
	chrome    = 10 // lines around the canvas
)

// Options configure the TUI.
type Options struct {
	View     waveview.Options
	Rows     int
	Sink     outlet.Sink
	Audition bool
	Attach   string
}

// Model is the Bubbletea model for the wavescope TUI.
type Model struct {
	reg    *source.Registry
	view   *waveview.View
	canvas *canvas.Canvas
	clock  *teaClock
	latest *outlet.Latest
	logger *log.Logger

	help     help.Model
	progress progress.Model
	picker   pickerModel
	picking  bool

	player      *audition.Player
	auditionOn  bool
	rows        int
	width       int
	height      int
	dragging    bool
	frame       string
	quitting    bool
	statusMsg   string    // transient status message
	statusTime  time.Time // when statusMsg was set
}

// New creates a Model showing opts.Attach, or the first table of reg.
func New(reg *source.Registry, opts Options) Model {
	logger := opts.View.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
		opts.View.Logger = logger
	}
	clock := &teaClock{}
	cv := canvas.New(0, 0)
	latest := outlet.NewLatest()
	view := waveview.New(reg, clock, cv, outlet.Multi{latest, opts.Sink}, opts.View)

	name := opts.Attach
	if name == "" {
		if names := reg.Names(); len(names) > 0 {
			name = names[0]
		}
	}
	if name != "" {
		if err := view.Attach(name); err != nil {
			logger.Printf("attach: %v", err)
		}
	}

	return Model{
		reg:        reg,
		view:       view,
		canvas:     cv,
		clock:      clock,
		latest:     latest,
		logger:     logger,
		help:       help.New(),
		progress:   progress.New(progress.WithScaledGradient("#5FAFD7", "#FF5F87"), progress.WithoutPercentage()),
		auditionOn: opts.Audition,
		rows:       max(opts.Rows, 1),
	}
}

// WaveView returns the waveform view driven by the model.
func (m Model) WaveView() *waveview.View { return m.view }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle("wavescope"), m.clock.take())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.picking {
			m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2})
		}

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		if !m.picking {
			m.handleMouse(msg)
		}

	case chunkTickMsg:
		m.clock.fire(msg.seq)

	case tickMsg:
		if m.statusMsg != "" && time.Since(m.statusTime) > 5*time.Second {
			m.statusMsg = ""
		}
		cmd = tickCmd()

	case oscctl.SelectMsg:
		if msg.Clear {
			m.view.ClearSelection()
		} else if err := m.view.SetSelectionIn(msg.Unit, msg.Begin, msg.End); err != nil {
			m.fail("select", err)
		}

	case oscctl.CursorMsg:
		if err := m.view.SetCursorIn(msg.Unit, msg.Value); err != nil {
			m.fail("cursor", err)
		}

	case oscctl.UpdateMsg:
		m.view.Refresh()

	case oscctl.BangMsg:
		if err := m.view.Bang(); err != nil {
			m.fail("bang", err)
		}

	case arrayPickedMsg:
		m.picking = false
		m.attach(msg.name)

	case pickerClosedMsg:
		m.picking = false

	case fileSavedMsg:
		if msg.err != nil {
			m.fail("export", msg.err)
		} else {
			m.setStatus(fmt.Sprintf("Saved to %s", msg.destName))
		}

	case auditionEndedMsg:
		if msg.player == m.player {
			m.player.Close()
			m.player = nil
		}

	default:
		if m.picking {
			m.picker, cmd = m.picker.Update(msg)
		}
	}

	m.view.Paint()
	if m.canvas.TakeRedraw() {
		m.frame = m.canvas.String()
	}
	return m, tea.Batch(cmd, m.clock.take())
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" || (!m.picking && key.Matches(msg, keys.Quit)) {
		m.quitting = true
		if m.player != nil {
			m.player.Close()
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Left):
		m.nudge(-1)
	case key.Matches(msg, keys.Right):
		m.nudge(1)
	case key.Matches(msg, keys.Home):
		m.moveCursor(0)
	case key.Matches(msg, keys.End):
		m.moveCursor(m.view.Handle().Size() - 1)
	case key.Matches(msg, keys.Bang):
		if err := m.view.Bang(); err != nil {
			m.fail("bang", err)
		}
	case key.Matches(msg, keys.Clear):
		m.view.ClearSelection()
	case key.Matches(msg, keys.Refresh):
		m.view.Refresh()
	case key.Matches(msg, keys.RMS):
		m.view.SetShowRMS(!m.view.ShowRMS())
	case key.Matches(msg, keys.Labels):
		m.view.SetShowLabels(!m.view.ShowLabels())
	case key.Matches(msg, keys.Next):
		m.nextArray()
	case key.Matches(msg, keys.Picker):
		m.picker = newPicker(m.reg, m.view.Name(), m.view.SampleRate(), m.width, m.height-2)
		m.picking = true
	case key.Matches(msg, keys.Audition):
		return m, m.toggleAudition()
	case key.Matches(msg, keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// pixelAt maps a terminal cell to a view pixel and reports whether the
// cell lies on the canvas.
func (m *Model) pixelAt(x, y int) (int, bool) {
	cols, rows := m.canvas.Cells()
	inside := x >= margin && x < margin+cols && y >= canvasTop && y < canvasTop+rows
	px := (x - margin) * 2
	px = max(min(px, cols*2-1), 0)
	return px, inside
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	px, inside := m.pixelAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		m.dragging = true
		m.view.PointerDown(px, msg.Shift || msg.Alt)
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		if inside {
			m.view.PointerDrag(px)
			return
		}
		m.dragging = false
		m.view.PointerLeave(px)
	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.view.PointerUp(px)
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(w-2*margin, 1)
	rows := max(min(m.rows, h-chrome), 1)
	m.canvas.Resize(cols, rows)
	m.view.Resize(cols*2, rows*4)
	m.progress.Width = min(cols, 60)
	m.help.Width = cols
}

func (m *Model) attach(name string) {
	if err := m.view.Attach(name); err != nil {
		m.fail("attach", err)
		return
	}
	m.setStatus("Showing " + name)
}

func (m *Model) nextArray() {
	names := m.reg.Names()
	if len(names) == 0 {
		return
	}
	i := slices.Index(names, m.view.Name())
	m.attach(names[(i+1)%len(names)])
}

// nudge moves the cursor by one pixel column and emits it.
func (m *Model) nudge(dir int) {
	w, _ := m.view.Size()
	n := m.view.Handle().Size()
	step := max(n/max(w, 1), 1)
	m.moveCursor(max(m.view.Cursor()+dir*step, 0))
}

func (m *Model) moveCursor(s int) {
	if err := m.view.SetCursor(max(s, 0)); err != nil {
		m.fail("cursor", err)
		return
	}
	if err := m.view.Output(); err != nil {
		m.fail("output", err)
	}
}

func (m *Model) toggleAudition() tea.Cmd {
	if !m.auditionOn {
		m.setStatus("Audition disabled")
		return nil
	}
	if m.player != nil {
		m.player.Close()
		m.player = nil
		return nil
	}
	sr := int(m.view.SampleRate())
	if sr <= 0 {
		m.setStatus("Audition needs a sample rate")
		return nil
	}
	span := m.view.Span()
	p, err := audition.Play(m.view.Handle().Slice(span.From, span.To), sr)
	if err != nil {
		m.fail("audition", err)
		return nil
	}
	m.player = p
	return checkDone(p)
}

func (m *Model) exportCmd() tea.Cmd {
	t := m.view.Handle().Table()
	if t == nil {
		m.setStatus("No array to export")
		return nil
	}
	rate := t.SampleRate()
	if rate <= 0 {
		rate = int(m.view.SampleRate())
	}
	if rate <= 0 {
		m.setStatus("Export needs a sample rate")
		return nil
	}
	span := m.view.Span()
	samples := m.view.Handle().Slice(span.From, span.To)
	dest := exportPath(t, span.From, span.To)
	m.setStatus("Saving...")
	return func() tea.Msg {
		err := source.ExportWAV(dest, samples, rate)
		return fileSavedMsg{destName: dest, err: err}
	}
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", " ", "_")

// exportPath names the WAV written for samples [from,to) of t, next to
// the file it was loaded from.
func exportPath(t *source.Table, from, to int) string {
	dir, base := ".", t.Name()
	if p := t.Path(); p != "" {
		dir = filepath.Dir(p)
		base = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d-%d.wav", unsafeName.Replace(base), from, to))
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

func (m *Model) fail(op string, err error) {
	m.logger.Printf("%s: %v", op, err)
	m.setStatus(fmt.Sprintf("%s failed: %v", op, err))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picking {
		return "\n" + m.picker.View()
	}

	cols, _ := m.canvas.Cells()
	pad := spaces(margin)
	labels := m.view.Labels()

	lines := "\n"
	lines += pad + headerStyle.Render("wavescope") + "  " + titleStyle.Render(m.view.Name()) +
		"  " + timeStyle.Render(renderTableInfo(m.view)) + "\n"
	lines += "\n"
	lines += pad + renderLabelLine(labels.TopLeft, labels.TopRight, cols) + "\n"
	for _, row := range strings.Split(m.frame, "\n") {
		lines += pad + row + "\n"
	}
	lines += pad + renderLabelLine(labels.BottomLeft, labels.BottomRight, cols) + "\n"
	lines += "\n"
	lines += pad + statusStyle.Render(renderPosition(m.view)) + "   " + helpStyle.Render(renderLastOutput(m.latest)) + "\n"

	switch {
	case m.view.RenderState() == render.Chunking:
		lines += pad + m.progress.ViewAs(m.view.Progress()) + "\n"
	case m.statusMsg != "":
		lines += pad + helpStyle.Render(m.statusMsg) + "\n"
	case m.player != nil:
		lines += pad + statusStyle.Render("▶ ") + formatElapsed(m.player.Position()) + "\n"
	default:
		lines += "\n"
	}
	lines += "\n"
	lines += pad + m.help.View(keys) + "\n"

	return lines
}
