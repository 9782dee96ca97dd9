// internal/writer/types.go
package writer

import "github.com/tamzrod/lander-pilot/internal/state"

// Sink kinds.
const (
	KindUDP  = "udp"
	KindNATS = "nats"
)

// Target is one dashboard destination.
type Target struct {
	Name     string // unique key into the sink map
	Kind     string
	Endpoint string // host:port (udp) or server URL (nats)
	Subject  string // nats only
}

// Plan is the fully-built dashboard fan-out.
type Plan struct {
	Targets []Target
}

// Writer pushes one dashboard snapshot to every target.
type Writer interface {
	Write(l state.LanderState, c state.ControlState) error
}

// Sink delivers one encoded payload. Fire-and-forget: no reply is read.
type Sink interface {
	Send(payload []byte) error
	Close() error
}
