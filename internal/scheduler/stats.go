// internal/scheduler/stats.go
package scheduler

import (
	"sync/atomic"
	"time"
)

// Stats counts dispatch cycles for monitoring and shutdown reporting.
type Stats struct {
	Cycles       int64
	Overruns     int64
	Panics       int64
	TotalCycleNs int64
	MaxCycleNs   int64
}

// StatsSnapshot is a read-only copy of Stats.
type StatsSnapshot struct {
	Cycles   int64
	Overruns int64
	Panics   int64
	AvgCycle time.Duration
	MaxCycle time.Duration
}

func (s *Stats) incOverrun() { atomic.AddInt64(&s.Overruns, 1) }
func (s *Stats) incPanic()   { atomic.AddInt64(&s.Panics, 1) }

func (s *Stats) addCycle(d time.Duration) {
	atomic.AddInt64(&s.Cycles, 1)
	atomic.AddInt64(&s.TotalCycleNs, d.Nanoseconds())
	for {
		cur := atomic.LoadInt64(&s.MaxCycleNs)
		if d.Nanoseconds() <= cur || atomic.CompareAndSwapInt64(&s.MaxCycleNs, cur, d.Nanoseconds()) {
			return
		}
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	cycles := atomic.LoadInt64(&s.Cycles)
	total := atomic.LoadInt64(&s.TotalCycleNs)
	var avg time.Duration
	if cycles > 0 {
		avg = time.Duration(total / cycles)
	}
	return StatsSnapshot{
		Cycles:   cycles,
		Overruns: atomic.LoadInt64(&s.Overruns),
		Panics:   atomic.LoadInt64(&s.Panics),
		AvgCycle: avg,
		MaxCycle: time.Duration(atomic.LoadInt64(&s.MaxCycleNs)),
	}
}
