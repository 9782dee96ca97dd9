// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/tamzrod/lander-pilot/internal/state"
	"github.com/tamzrod/lander-pilot/internal/status"
	"github.com/tamzrod/lander-pilot/internal/telemetry"
)

// Poller is a dumb, clock-driven lander exchange.
// It sends the latest command and merges the reply into the store.
type Poller struct {
	client  Client
	factory Factory
	store   *state.Store
	buf     [telemetry.MaxDatagram]byte
}

// New creates a poller. client may be nil; factory is then used on the first tick.
func New(client Client, factory Factory, store *state.Store) (*Poller, error) {
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}
	if store == nil {
		return nil, errors.New("poller: store required")
	}
	return &Poller{client: client, factory: factory, store: store}, nil
}

// PollOnce performs exactly one exchange.
// All-or-nothing: on any failure the store is not touched.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{At: time.Now()}

	if p.client == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: no client")
			return res
		}
		c, err := p.factory()
		if err != nil {
			res.Err = transportError{fmt.Errorf("poller: redial: %w", err)}
			return res
		}
		p.client = c
	}

	req := telemetry.EncodeCommand(p.store.Control())

	n, err := p.client.Exchange(ctx, req, p.buf[:])
	res.Latency = time.Since(res.At)
	if err != nil {
		if isTimeout(err) || ctx.Err() != nil {
			res.Err = fmt.Errorf("poller: %w", err)
			return res
		}
		// transport death: discard, the factory re-creates it on a future tick
		_ = p.client.Close()
		p.client = nil
		res.Err = transportError{fmt.Errorf("poller: %w", err)}
		return res
	}

	if n > len(p.buf) {
		n = len(p.buf)
	}
	res.Bytes = n

	msg := p.buf[:n]
	p.store.UpdateLander(func(l *state.LanderState) {
		res.Applied = telemetry.DecodeSnapshot(msg, l)
	})

	return res
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// transportError marks failures that discarded the client.
type transportError struct{ err error }

func (e transportError) Error() string { return e.err.Error() }
func (e transportError) Unwrap() error { return e.err }
func (e transportError) Code() uint16  { return status.ErrorTransport }
