// internal/poller/udp/client.go
package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// Client implements poller.Client over a connected UDP socket.
// One datagram out, at most one datagram back, bounded by Timeout.
// Replies that arrived after an earlier timeout are discarded before each
// send, so every exchange reads the answer to its own command.
type Client struct {
	conn    net.Conn
	timeout time.Duration
	stale   atomic.Uint64
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// New resolves the lander address and opens the socket.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("lander udp: endpoint required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("lander udp: timeout must be > 0")
	}

	conn, err := net.Dial("udp", cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("lander udp: dial %s: %w", cfg.Endpoint, err)
	}

	return &Client{conn: conn, timeout: cfg.Timeout}, nil
}

// RemoteAddr is the resolved lander address.
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the socket.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Discarded reports how many late replies have been dropped.
func (c *Client) Discarded() uint64 {
	return c.stale.Load()
}

// Exchange sends req and waits for one reply into resp.
// The wait ends at Timeout or the context deadline, whichever is sooner.
func (c *Client) Exchange(ctx context.Context, req, resp []byte) (int, error) {
	if c == nil || c.conn == nil {
		return 0, errors.New("lander udp: not connected")
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// resp is overwritten below; use it as scratch
	if n := drainPending(c.conn, resp); n > 0 {
		c.stale.Add(uint64(n))
	}

	_ = c.conn.SetWriteDeadline(deadline)
	if _, err := c.conn.Write(req); err != nil {
		return 0, fmt.Errorf("send: %w", err)
	}

	_ = c.conn.SetReadDeadline(deadline)
	n, err := c.conn.Read(resp)
	if err != nil {
		return 0, fmt.Errorf("recv: %w", err)
	}
	return n, nil
}
