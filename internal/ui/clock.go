package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type chunkTickMsg struct {
	seq uint64
}

// teaClock schedules renderer chunks as tea.Tick commands. Each Delay or
// Unset bumps seq, so a tick that was already in flight when it got
// replaced or cancelled arrives stale and is ignored.
type teaClock struct {
	seq     uint64
	fn      func()
	pending tea.Cmd
}

func (c *teaClock) Delay(d time.Duration, fn func()) {
	c.seq++
	c.fn = fn
	seq := c.seq
	c.pending = tea.Tick(d, func(time.Time) tea.Msg {
		return chunkTickMsg{seq: seq}
	})
}

func (c *teaClock) Unset() {
	c.seq++
	c.fn = nil
	c.pending = nil
}

// fire runs the callback scheduled under seq.
func (c *teaClock) fire(seq uint64) bool {
	if seq != c.seq || c.fn == nil {
		return false
	}
	fn := c.fn
	c.fn = nil
	fn()
	return true
}

// take returns the tick command scheduled since the last call.
func (c *teaClock) take() tea.Cmd {
	cmd := c.pending
	c.pending = nil
	return cmd
}
