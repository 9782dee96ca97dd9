// internal/writer/natspub/client_test.go
package natspub

import (
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
)

// ---- fake connection ----

type fakeConn struct {
	msgs   []*nats.Msg
	err    error
	closes int
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeConn) Close() { f.closes++ }

// ---- tests ----

func TestSend_PublishesWithSessionHeader(t *testing.T) {
	fc := &fakeConn{}
	c := newClient(fc, Config{Subject: "lander.dashboard", SessionID: "run-1"})

	if err := c.Send([]byte("fuel:42.00\n")); err != nil {
		t.Fatalf("Send err=%v", err)
	}

	if len(fc.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(fc.msgs))
	}
	m := fc.msgs[0]
	if m.Subject != "lander.dashboard" {
		t.Fatalf("subject: got %q", m.Subject)
	}
	if string(m.Data) != "fuel:42.00\n" {
		t.Fatalf("data: got %q", m.Data)
	}
	if got := m.Header.Get(HeaderSession); got != "run-1" {
		t.Fatalf("session header: got %q", got)
	}
}

func TestSend_NoSessionHeaderWhenUnset(t *testing.T) {
	fc := &fakeConn{}
	c := newClient(fc, Config{Subject: "lander.dashboard"})

	if err := c.Send([]byte("x")); err != nil {
		t.Fatalf("Send err=%v", err)
	}
	if _, ok := fc.msgs[0].Header[HeaderSession]; ok {
		t.Fatalf("unexpected session header: %v", fc.msgs[0].Header)
	}
}

func TestSend_ReturnsPublishError(t *testing.T) {
	boom := errors.New("nats: connection closed")
	c := newClient(&fakeConn{err: boom}, Config{Subject: "s"})

	if err := c.Send([]byte("x")); !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestClose_ClosesOnceAndRejectsSend(t *testing.T) {
	fc := &fakeConn{}
	c := newClient(fc, Config{Subject: "s"})

	if err := c.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close err=%v", err)
	}
	if fc.closes != 1 {
		t.Fatalf("closes: got %d want 1", fc.closes)
	}
	if err := c.Send([]byte("x")); err == nil {
		t.Fatalf("expected error sending on closed client")
	}
}

func TestNew_RequiresURLAndSubject(t *testing.T) {
	if _, err := New(Config{Subject: "s"}); err == nil {
		t.Fatalf("expected error for missing url")
	}
	if _, err := New(Config{URL: "nats://127.0.0.1:4222"}); err == nil {
		t.Fatalf("expected error for missing subject")
	}
}
