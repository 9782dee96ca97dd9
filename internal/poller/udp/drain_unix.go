// internal/poller/udp/drain_unix.go
//go:build linux || darwin || freebsd || netbsd || openbsd

package udp

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// maxDrain bounds one drain pass.
const maxDrain = 16

// drainPending discards datagrams already queued on conn without blocking.
func drainPending(conn net.Conn, scratch []byte) int {
	sc, ok := conn.(syscall.Conn)
	if !ok || len(scratch) == 0 {
		return 0
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return 0
	}

	dropped := 0
	_ = raw.Read(func(fd uintptr) bool {
		for dropped < maxDrain {
			// EAGAIN: queue empty. Queued ICMP errors are consumed here too.
			if _, _, err := unix.Recvfrom(int(fd), scratch, unix.MSG_DONTWAIT); err != nil {
				return true
			}
			dropped++
		}
		return true
	})
	return dropped
}
