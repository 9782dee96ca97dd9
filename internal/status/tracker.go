// internal/status/tracker.go
package status

import (
	"errors"
	"net"
	"sync"
	"time"
)

// Tracker folds exchange results into a Snapshot.
// Writers are the lander job; readers are the foreground loop.
type Tracker struct {
	mu         sync.Mutex
	snap       Snapshot
	errorSince time.Time
}

func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{Health: HealthUnknown}}
}

// Observe records one exchange outcome.
// Returns true when health or error code changed, so callers log transitions only.
func (t *Tracker) Observe(err error, at time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.snap

	if err == nil {
		// Recovery / OK
		t.snap = Snapshot{Health: HealthOK, LastErrorCode: ErrorNone}
		t.errorSince = time.Time{}
	} else {
		if t.snap.Health != HealthError {
			t.errorSince = at
		}
		t.snap.Health = HealthError
		t.snap.LastErrorCode = ErrorCode(err)
		t.snap.SecondsInError = secondsSince(t.errorSince, at)
	}

	return prev.Health != t.snap.Health || prev.LastErrorCode != t.snap.LastErrorCode
}

// Snapshot returns the current state with the error duration evaluated at now.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.snap
	if s.Health == HealthError {
		s.SecondsInError = secondsSince(t.errorSince, now)
	}
	return s
}

func secondsSince(since, now time.Time) uint16 {
	if since.IsZero() || now.Before(since) {
		return 0
	}
	secs := int64(now.Sub(since) / time.Second)
	if secs > SecondsInErrorMax {
		return SecondsInErrorMax
	}
	return uint16(secs)
}

// ErrorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns ErrorGeneric.
func ErrorCode(err error) uint16 {
	if err == nil {
		return ErrorNone
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrorTimeout
	}

	return ErrorGeneric
}
