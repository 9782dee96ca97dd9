// internal/poller/udp/drain_other.go
//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package udp

import (
	"net"
	"time"
)

const (
	maxDrain    = 16
	drainWindow = time.Millisecond
)

// drainPending discards datagrams already queued on conn.
// Without a non-blocking receive, each read waits at most drainWindow.
func drainPending(conn net.Conn, scratch []byte) int {
	if len(scratch) == 0 {
		return 0
	}
	dropped := 0
	for dropped < maxDrain {
		_ = conn.SetReadDeadline(time.Now().Add(drainWindow))
		if _, err := conn.Read(scratch); err != nil {
			return dropped
		}
		dropped++
	}
	return dropped
}
