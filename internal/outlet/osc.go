package outlet

import (
	"log"
	"strings"

	"github.com/hypebeast/go-osc/osc"
)

// DefaultPrefix is the OSC address prefix of outbound messages.
const DefaultPrefix = "/aview"

type sender interface {
	Send(packet osc.Packet) error
}

// OSC sends every message as "<prefix>/<tag> values...". Sample tags are
// sent as int32, the others as float32.
type OSC struct {
	client sender
	prefix string
	logger *log.Logger
}

// NewOSC returns a sink sending to host:port.
func NewOSC(host string, port int, prefix string, logger *log.Logger) *OSC {
	return newOSC(osc.NewClient(host, port), prefix, logger)
}

func newOSC(client sender, prefix string, logger *log.Logger) *OSC {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = log.Default()
	}
	return &OSC{
		client: client,
		prefix: "/" + strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// Address returns the OSC address used for t.
func (o *OSC) Address(t Tag) string {
	return o.prefix + "/" + t.String()
}

func (o *OSC) Emit(m Message) {
	msg := osc.NewMessage(o.Address(m.Tag))
	for _, v := range m.Values {
		if isSampleTag(m.Tag) {
			msg.Append(int32(v))
		} else {
			msg.Append(float32(v))
		}
	}
	if err := o.client.Send(msg); err != nil {
		o.logger.Printf("osc send %s: %v", msg.Address, err)
	}
}

func isSampleTag(t Tag) bool {
	switch t {
	case CursorSamp, SelectSamp, Begin, End:
		return true
	}
	return false
}
