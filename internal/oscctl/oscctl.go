// Package oscctl receives view commands over OSC and hands them to the UI
// loop as bubbletea messages.
package oscctl

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hypebeast/go-osc/osc"

	"github.com/olivier-w/wavescope/internal/units"
)

// SelectMsg selects [Begin,End] in Unit, or clears the selection.
type SelectMsg struct {
	Unit       units.Unit
	Begin, End float64
	Clear      bool
}

// CursorMsg moves the cursor to Value in Unit.
type CursorMsg struct {
	Unit  units.Unit
	Value float64
}

// UpdateMsg asks the view to re-read its table.
type UpdateMsg struct{}

// BangMsg asks the view to emit its output.
type BangMsg struct{}

var errArgs = errors.New("bad arguments")

// Server routes "<prefix>/<command>" messages to send.
type Server struct {
	prefix string
	send   func(tea.Msg)
	logger *log.Logger
	routes map[string]func(*osc.Message) (tea.Msg, error)

	conn net.PacketConn
}

// New returns a server delivering commands through send, typically
// tea.Program.Send.
func New(prefix string, send func(tea.Msg), logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		prefix: "/" + strings.Trim(prefix, "/"),
		send:   send,
		logger: logger,
	}
	s.routes = map[string]func(*osc.Message) (tea.Msg, error){
		"select":       s.selectIn(units.Sample),
		"select_phase": s.selectIn(units.Phase),
		"select_ms":    s.selectIn(units.Millis),
		"select_sec":   s.selectIn(units.Seconds),
		"cursor":       cursorIn(units.Sample),
		"cursor_phase": cursorIn(units.Phase),
		"cursor_ms":    cursorIn(units.Millis),
		"cursor_sec":   cursorIn(units.Seconds),
		"update":       func(*osc.Message) (tea.Msg, error) { return UpdateMsg{}, nil },
		"bang":         func(*osc.Message) (tea.Msg, error) { return BangMsg{}, nil },
	}
	return s
}

// Addresses returns the OSC addresses the server answers to.
func (s *Server) Addresses() []string {
	out := make([]string, 0, len(s.routes))
	for name := range s.routes {
		out = append(out, s.prefix+"/"+name)
	}
	return out
}

// Dispatcher returns a go-osc dispatcher with a handler per address.
func (s *Server) Dispatcher() *osc.StandardDispatcher {
	d := osc.NewStandardDispatcher()
	for _, addr := range s.Addresses() {
		if err := d.AddMsgHandler(addr, s.Handle); err != nil {
			s.logger.Printf("osc handler %s: %v", addr, err)
		}
	}
	return d
}

// Listen serves on addr (for example ":9001") until Close.
func (s *Server) Listen(addr string) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("osc listen %s: %w", addr, err)
	}
	s.conn = conn
	server := &osc.Server{Addr: addr, Dispatcher: s.Dispatcher()}
	go func() {
		s.logger.Printf("OSC server listening on %s", conn.LocalAddr())
		if err := server.Serve(conn); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Printf("osc serve: %v", err)
		}
	}()
	return nil
}

// Close stops a server started with Listen.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Handle converts one message and forwards it.
func (s *Server) Handle(msg *osc.Message) {
	name, ok := strings.CutPrefix(msg.Address, s.prefix+"/")
	if !ok {
		return
	}
	route, ok := s.routes[name]
	if !ok {
		s.logger.Printf("osc: unknown address %s", msg.Address)
		return
	}
	out, err := route(msg)
	if err != nil {
		s.logger.Printf("osc %s: %v", msg.Address, err)
		return
	}
	s.send(out)
}

func (s *Server) selectIn(u units.Unit) func(*osc.Message) (tea.Msg, error) {
	return func(msg *osc.Message) (tea.Msg, error) {
		switch len(msg.Arguments) {
		case 0:
			if u != units.Sample {
				break
			}
			return SelectMsg{Unit: u, Clear: true}, nil
		case 2:
			b, okB := number(msg.Arguments[0])
			e, okE := number(msg.Arguments[1])
			if okB && okE {
				return SelectMsg{Unit: u, Begin: b, End: e}, nil
			}
		}
		return nil, fmt.Errorf("%w: want begin end, got %v", errArgs, msg.Arguments)
	}
}

func cursorIn(u units.Unit) func(*osc.Message) (tea.Msg, error) {
	return func(msg *osc.Message) (tea.Msg, error) {
		if len(msg.Arguments) == 1 {
			if v, ok := number(msg.Arguments[0]); ok {
				return CursorMsg{Unit: u, Value: v}, nil
			}
		}
		return nil, fmt.Errorf("%w: want one number, got %v", errArgs, msg.Arguments)
	}
}

func number(arg any) (float64, bool) {
	switch v := arg.(type) {
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
