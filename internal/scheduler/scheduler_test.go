package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countingTask(name string, calls *atomic.Int32) Task {
	return Task{Name: name, Run: func(context.Context) error {
		calls.Add(1)
		return nil
	}}
}

type orderRecorder struct {
	mu    sync.Mutex
	order []string
}

func (r *orderRecorder) task(name string) Task {
	return Task{Name: name, Run: func(context.Context) error {
		r.mu.Lock()
		r.order = append(r.order, name)
		r.mu.Unlock()
		return nil
	}}
}

func runFor(s *Scheduler, d time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()
	time.Sleep(d)
	cancel()
	<-done
}

// --- Tests ---

func TestRun_CancelReturnsPromptly(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler([]Task{countingTask("collect", &calls)}, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not return within 2s after cancel")
	}
}

func TestRun_TasksRepeatOnInterval(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler([]Task{countingTask("collect", &calls)}, 100*time.Millisecond, discardLogger())

	// Allow time for at least two full passes (run → sleep interval → run).
	runFor(s, 250*time.Millisecond)

	if got := calls.Load(); got < 2 {
		t.Errorf("task calls = %d, want >= 2", got)
	}
}

func TestRun_OrderWithinCyclePreserved(t *testing.T) {
	rec := &orderRecorder{}
	s := NewScheduler([]Task{rec.task("collect"), rec.task("write"), rec.task("cleanup")}, time.Hour, discardLogger())

	runFor(s, 100*time.Millisecond)

	rec.mu.Lock()
	order := append([]string(nil), rec.order...)
	rec.mu.Unlock()

	want := []string{"collect", "write", "cleanup"}
	if len(order) != len(want) {
		t.Fatalf("run order length = %d, want %d (order: %v)", len(order), len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("run order = %v, want %v", order, want)
			break
		}
	}
}

func TestRun_FailedTaskSkipsRestOfCycle(t *testing.T) {
	var after atomic.Int32
	failing := Task{Name: "collect", Run: func(context.Context) error { return errors.New("boom") }}
	s := NewScheduler([]Task{failing, countingTask("write", &after)}, time.Hour, discardLogger())

	runFor(s, 100*time.Millisecond)

	if got := after.Load(); got != 0 {
		t.Errorf("task after failure ran %d times, want 0", got)
	}
}

func TestRun_FailedCycleDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int32
	failing := Task{Name: "collect", Run: func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}}
	s := NewScheduler([]Task{failing}, 50*time.Millisecond, discardLogger())

	runFor(s, 180*time.Millisecond)

	if got := calls.Load(); got < 2 {
		t.Errorf("failing task calls = %d, want >= 2 (next cycle should still run)", got)
	}
}
