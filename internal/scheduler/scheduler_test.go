// internal/scheduler/scheduler_test.go
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T, period time.Duration) *Scheduler {
	t.Helper()
	s, err := New(period, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return s
}

func TestNew_RejectsZeroPeriod(t *testing.T) {
	if _, err := New(0, zap.NewNop().Sugar()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestStart_RequiresJobs(t *testing.T) {
	s := newTestScheduler(t, time.Millisecond)
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestJobsRunInRegistrationOrder(t *testing.T) {
	s := newTestScheduler(t, 5*time.Millisecond)

	var mu sync.Mutex
	var order []string
	record := func(name string) Job {
		return func(ctx context.Context) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	s.Every("lander", record("lander"))
	s.Every("dashboard", record("dashboard"))
	s.Every("input", record("input"))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	mu.Lock()
	defer mu.Unlock()

	if len(order) < 6 {
		t.Fatalf("expected at least two cycles, got %v", order)
	}
	want := []string{"lander", "dashboard", "input"}
	for i, name := range order {
		if name != want[i%3] {
			t.Fatalf("position %d: got %q want %q (order=%v)", i, name, want[i%3], order)
		}
	}
}

func TestJobsNeverOverlap(t *testing.T) {
	s := newTestScheduler(t, time.Millisecond)

	var running, overlaps int32
	job := func(ctx context.Context) {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
	}
	s.Every("a", job)
	s.Every("b", job)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	time.Sleep(40 * time.Millisecond)
	s.Stop()

	if overlaps != 0 {
		t.Fatalf("expected no overlapping jobs, got %d", overlaps)
	}
	if st := s.Stats(); st.Overruns == 0 {
		t.Fatalf("expected overruns to be counted, got %+v", st)
	}
}

func TestPanicIsContained(t *testing.T) {
	s := newTestScheduler(t, 2*time.Millisecond)

	var after int32
	s.Every("bad", func(ctx context.Context) { panic("boom") })
	s.Every("good", func(ctx context.Context) { atomic.AddInt32(&after, 1) })

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt32(&after) == 0 {
		t.Fatalf("job after a panicking job never ran")
	}
	if st := s.Stats(); st.Panics == 0 {
		t.Fatalf("expected panics to be counted, got %+v", st)
	}
}

func TestStopWaitsAndHalts(t *testing.T) {
	s := newTestScheduler(t, time.Millisecond)

	var runs int32
	s.Every("count", func(ctx context.Context) { atomic.AddInt32(&runs, 1) })

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	n := atomic.LoadInt32(&runs)
	time.Sleep(20 * time.Millisecond)
	if m := atomic.LoadInt32(&runs); m != n {
		t.Fatalf("jobs ran after Stop: %d -> %d", n, m)
	}

	// second Stop is a no-op
	s.Stop()
}

func TestParentContextCancels(t *testing.T) {
	s := newTestScheduler(t, time.Millisecond)
	s.Every("noop", func(ctx context.Context) {})

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop did not return after parent cancel")
	}
}
