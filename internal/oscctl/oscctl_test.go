package oscctl

import (
	"bytes"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hypebeast/go-osc/osc"

	"github.com/olivier-w/wavescope/internal/units"
)

func newTestServer() (*Server, *[]tea.Msg, *bytes.Buffer) {
	var got []tea.Msg
	var logs bytes.Buffer
	s := New("aview", func(m tea.Msg) { got = append(got, m) }, log.New(&logs, "", 0))
	return s, &got, &logs
}

func TestHandleCommands(t *testing.T) {
	tests := []struct {
		addr string
		args []any
		want tea.Msg
	}{
		{"/aview/select", []any{int32(1), int32(5)}, SelectMsg{Unit: units.Sample, Begin: 1, End: 5}},
		{"/aview/select", nil, SelectMsg{Unit: units.Sample, Clear: true}},
		{"/aview/select_ms", []any{float32(10), float32(20)}, SelectMsg{Unit: units.Millis, Begin: 10, End: 20}},
		{"/aview/select_phase", []any{float32(0), float32(0.5)}, SelectMsg{Unit: units.Phase, Begin: 0, End: 0.5}},
		{"/aview/select_sec", []any{float64(1), float64(2)}, SelectMsg{Unit: units.Seconds, Begin: 1, End: 2}},
		{"/aview/cursor", []any{int32(42)}, CursorMsg{Unit: units.Sample, Value: 42}},
		{"/aview/cursor_phase", []any{float32(0.25)}, CursorMsg{Unit: units.Phase, Value: 0.25}},
		{"/aview/cursor_ms", []any{float32(500)}, CursorMsg{Unit: units.Millis, Value: 500}},
		{"/aview/cursor_sec", []any{int64(3)}, CursorMsg{Unit: units.Seconds, Value: 3}},
		{"/aview/update", nil, UpdateMsg{}},
		{"/aview/bang", nil, BangMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			s, got, _ := newTestServer()
			s.Handle(osc.NewMessage(tt.addr, tt.args...))
			if len(*got) != 1 {
				t.Fatalf("sent %d messages, want 1", len(*got))
			}
			if (*got)[0] != tt.want {
				t.Fatalf("sent %#v, want %#v", (*got)[0], tt.want)
			}
		})
	}
}

func TestHandleRejectsBadArguments(t *testing.T) {
	tests := []struct {
		addr string
		args []any
	}{
		{"/aview/select", []any{int32(1)}},
		{"/aview/select_ms", nil},
		{"/aview/cursor", []any{"ten"}},
		{"/aview/cursor_sec", nil},
	}
	for _, tt := range tests {
		s, got, logs := newTestServer()
		s.Handle(osc.NewMessage(tt.addr, tt.args...))
		if len(*got) != 0 {
			t.Fatalf("%s: sent %v, want nothing", tt.addr, *got)
		}
		if !strings.Contains(logs.String(), "bad arguments") {
			t.Fatalf("%s: not logged: %q", tt.addr, logs.String())
		}
	}
}

func TestHandleIgnoresForeignPrefix(t *testing.T) {
	s, got, logs := newTestServer()
	s.Handle(osc.NewMessage("/other/bang"))
	s.Handle(osc.NewMessage("/aview/nope"))
	if len(*got) != 0 {
		t.Fatalf("sent %v, want nothing", *got)
	}
	if !strings.Contains(logs.String(), "unknown address /aview/nope") {
		t.Fatalf("unknown address not logged: %q", logs.String())
	}
}

func TestAddressesUsePrefix(t *testing.T) {
	s := New("/scope/", func(tea.Msg) {}, nil)
	addrs := s.Addresses()
	if len(addrs) != 10 {
		t.Fatalf("addresses = %d, want 10", len(addrs))
	}
	for _, a := range addrs {
		if !strings.HasPrefix(a, "/scope/") {
			t.Fatalf("address %q lacks prefix", a)
		}
	}
	if s.Dispatcher() == nil {
		t.Fatal("nil dispatcher")
	}
}
