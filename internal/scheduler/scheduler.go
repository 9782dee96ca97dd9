// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one recurring unit of work. It must return well within the period.
type Job func(ctx context.Context)

type entry struct {
	name string
	run  Job
}

// Scheduler runs every registered job, in registration order, once per period,
// on a single goroutine. Jobs never overlap. Ticks missed by a slow cycle are
// dropped, never queued.
type Scheduler struct {
	period time.Duration
	log    *zap.SugaredLogger

	mu      sync.Mutex
	jobs    []entry
	cancel  context.CancelFunc
	done    chan struct{}
	started bool

	stats Stats
}

func New(period time.Duration, log *zap.SugaredLogger) (*Scheduler, error) {
	if period <= 0 {
		return nil, errors.New("scheduler: period must be > 0")
	}
	return &Scheduler{period: period, log: log}, nil
}

// Every registers a job. Jobs registered after Start are ignored.
func (s *Scheduler) Every(name string, fn Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		s.log.Warnw("job registered after start, ignored", "job", name)
		return
	}
	s.jobs = append(s.jobs, entry{name: name, run: fn})
}

// Start launches the dispatch goroutine. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("scheduler: already started")
	}
	if len(s.jobs) == 0 {
		return errors.New("scheduler: no jobs registered")
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	jobs := make([]entry, len(s.jobs))
	copy(jobs, s.jobs)

	go s.dispatch(ctx, jobs)
	return nil
}

// Stop cancels the dispatch loop and waits for the running job to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

func (s *Scheduler) dispatch(ctx context.Context, jobs []entry) {
	defer close(s.done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()

			for _, j := range jobs {
				if ctx.Err() != nil {
					return
				}
				s.runOne(ctx, j)
			}

			elapsed := time.Since(start)
			s.stats.addCycle(elapsed)
			if elapsed > s.period {
				s.stats.incOverrun()
				s.log.Warnw("cycle overran period", "elapsed", elapsed, "period", s.period)
			}
		}
	}
}

// runOne isolates a job so one panic does not stop the others.
func (s *Scheduler) runOne(ctx context.Context, j entry) {
	defer func() {
		if r := recover(); r != nil {
			s.stats.incPanic()
			s.log.Errorw("job panicked", "job", j.name, "panic", fmt.Sprint(r))
		}
	}()
	j.run(ctx)
}
