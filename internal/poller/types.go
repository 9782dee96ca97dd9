// internal/poller/types.go
package poller

import (
	"context"
	"time"
)

// Client is one request/response exchange with the lander.
// The response is written into resp; the returned count is the datagram length.
// Implementations must bound the wait.
type Client interface {
	Exchange(ctx context.Context, req, resp []byte) (int, error)
	Close() error
}

// Factory creates a fresh client. ONE attempt per call.
type Factory func() (Client, error)

// PollResult is what one exchange produced.
type PollResult struct {
	At      time.Time
	Latency time.Duration

	Bytes   int // datagram length
	Applied int // recognized keys merged into LanderState

	Err error // non-nil means the previous LanderState was kept
}
