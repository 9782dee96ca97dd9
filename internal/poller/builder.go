// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/lander-pilot/internal/config"
	"github.com/tamzrod/lander-pilot/internal/poller/udp"
	"github.com/tamzrod/lander-pilot/internal/state"
)

// Build constructs a Poller and wires the UDP client lifecycle.
// The socket is reused while healthy.
// On transport death, Poller discards the client and uses factory on a future tick.
// No retries, no loops, no semantics.
func Build(l cfg.LanderConfig, store *state.Store) (*Poller, func() error, error) {
	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		return udp.New(udp.Config{
			Endpoint: l.Endpoint,
			Timeout:  time.Duration(l.TimeoutMs) * time.Millisecond,
		})
	}

	// initial client (fail fast at startup)
	client, err := factory()
	if err != nil {
		return nil, nil, err
	}

	p, err := New(client, factory, store)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, p.Close, nil
}
