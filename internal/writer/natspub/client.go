// internal/writer/natspub/client.go
package natspub

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// HeaderSession carries the pilot run id on every message.
const HeaderSession = "Pilot-Session"

// publisher is the part of *nats.Conn the sink uses.
type publisher interface {
	PublishMsg(m *nats.Msg) error
	Close()
}

// Client mirrors dashboard snapshots onto a NATS subject for spectators.
// Core NATS publish: no persistence, lowest overhead.
type Client struct {
	nc        publisher
	subject   string
	sessionID string
}

type Config struct {
	URL       string
	Subject   string
	Name      string // client name shown in NATS monitoring
	SessionID string
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Subject == "" {
		return nil, errors.New("dashboard nats: url and subject required")
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.PingInterval(5*time.Second),
		nats.MaxPingsOutstanding(3),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1), // reconnect forever
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard nats: connect %s: %w", cfg.URL, err)
	}

	return newClient(nc, cfg), nil
}

func newClient(nc publisher, cfg Config) *Client {
	return &Client{nc: nc, subject: cfg.Subject, sessionID: cfg.SessionID}
}

// Send publishes one payload. While reconnecting, nats.go buffers it.
func (c *Client) Send(payload []byte) error {
	if c.nc == nil {
		return errors.New("dashboard nats: closed")
	}
	msg := &nats.Msg{
		Subject: c.subject,
		Data:    payload,
		Header:  make(nats.Header),
	}
	if c.sessionID != "" {
		msg.Header.Set(HeaderSession, c.sessionID)
	}
	return c.nc.PublishMsg(msg)
}

func (c *Client) Close() error {
	if c == nil || c.nc == nil {
		return nil
	}
	c.nc.Close()
	c.nc = nil
	return nil
}
