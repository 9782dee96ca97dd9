// internal/writer/udp/client.go
package udp

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Client sends dashboard datagrams. Send-only: replies are never read.
type Client struct {
	conn    net.Conn
	timeout time.Duration
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("dashboard udp: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Millisecond
	}

	conn, err := net.Dial("udp", cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("dashboard udp: dial %s: %w", cfg.Endpoint, err)
	}

	return &Client{conn: conn, timeout: cfg.Timeout}, nil
}

// RemoteAddr is the resolved dashboard address.
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Client) Send(payload []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if _, err := c.conn.Write(payload); err != nil {
		return fmt.Errorf("dashboard udp: write: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
