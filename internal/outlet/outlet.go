// Package outlet carries the tagged values a waveform view emits.
package outlet

import (
	"fmt"
	"strings"
)

// Tag identifies one value of the view's output.
type Tag uint8

const (
	CursorSamp Tag = iota
	CursorPhase
	CursorMs
	CursorSec
	SelectSamp
	SelectPhase
	SelectMs
	SelectSec
	Begin
	End
)

var tagNames = [...]string{
	CursorSamp:  "cursor_samp",
	CursorPhase: "cursor_phase",
	CursorMs:    "cursor_ms",
	CursorSec:   "cursor_sec",
	SelectSamp:  "select_samp",
	SelectPhase: "select_phase",
	SelectMs:    "select_ms",
	SelectSec:   "select_sec",
	Begin:       "begin",
	End:         "end",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Message is one tagged output. Cursor, begin and end tags carry one
// value, select tags carry the (from, to) pair.
type Message struct {
	Tag    Tag
	Values []float64
}

func (m Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Tag.String())
	for _, v := range m.Values {
		fmt.Fprintf(&sb, " %g", v)
	}
	return sb.String()
}

// Sink receives output messages in emission order.
type Sink interface {
	Emit(Message)
}

// Discard drops every message.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Message) {}

// Recorder keeps every message.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Emit(m Message) { r.Messages = append(r.Messages, m) }

// Tags returns the recorded tags in order.
func (r *Recorder) Tags() []Tag {
	out := make([]Tag, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Tag
	}
	return out
}

// Find returns the last message with tag t.
func (r *Recorder) Find(t Tag) (Message, bool) {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Tag == t {
			return r.Messages[i], true
		}
	}
	return Message{}, false
}

// Reset forgets recorded messages.
func (r *Recorder) Reset() { r.Messages = r.Messages[:0] }

// Latest remembers the most recent value per tag; the UI status line
// reads it. Selection tags are dropped when a burst without them
// arrives, so a cleared selection disappears from the status.
type Latest struct {
	values map[Tag]Message
}

func NewLatest() *Latest {
	return &Latest{values: make(map[Tag]Message)}
}

func (l *Latest) Emit(m Message) {
	if m.Tag == CursorSamp {
		for t := SelectSamp; t <= End; t++ {
			delete(l.values, t)
		}
	}
	l.values[m.Tag] = m
}

// Get returns the latest message for t.
func (l *Latest) Get(t Tag) (Message, bool) {
	m, ok := l.values[t]
	return m, ok
}

// Multi fans messages out to several sinks.
type Multi []Sink

func (m Multi) Emit(msg Message) {
	for _, s := range m {
		if s != nil {
			s.Emit(msg)
		}
	}
}
