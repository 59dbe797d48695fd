package sched

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDue(t *testing.T) {
	s := New(3)

	day := func(d, hour int) time.Time {
		return time.Date(2026, 8, d, hour, 0, 0, 0, time.UTC)
	}

	// Never fired: due once the hour is reached.
	if s.due(day(24, 2)) {
		t.Errorf("due before update hour")
	}
	if !s.due(day(24, 3)) {
		t.Errorf("not due at update hour")
	}

	// Fired at the hour: not due again that day, due again the next.
	s.fire(day(24, 3))
	if s.due(day(24, 12)) {
		t.Errorf("due twice on the same day")
	}
	if !s.due(day(25, 3)) {
		t.Errorf("not due the following day")
	}
}

func TestDue_InitialRunBeforeHourDoesNotSuppressDailyRun(t *testing.T) {
	s := New(3)
	s.fire(time.Date(2026, 8, 24, 1, 0, 0, 0, time.UTC))

	if !s.due(time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)) {
		t.Errorf("a 01:00 startup run should not suppress the 03:00 scheduled run")
	}
}

func TestStart_FiresImmediatelyAndStops(t *testing.T) {
	s := New(3, WithPollInterval(5*time.Millisecond))

	var fired atomic.Int32
	s.AddListener(func(time.Time) { fired.Add(1) })

	stop := make(chan struct{})
	done := s.Start(stop)

	deadline := time.After(time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("initial run never fired")
		case <-time.After(time.Millisecond):
		}
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("scheduler did not stop")
	}
}

func TestStart_FiresWhenHourCrossed(t *testing.T) {
	// Drive the clock manually: start one minute before the update hour,
	// then jump past it.
	var current atomic.Value
	current.Store(time.Date(2026, 8, 24, 2, 59, 0, 0, time.UTC))

	s := New(3,
		WithPollInterval(time.Millisecond),
		WithClock(func() time.Time { return current.Load().(time.Time) }),
	)

	var fired atomic.Int32
	s.AddListener(func(time.Time) { fired.Add(1) })

	stop := make(chan struct{})
	defer close(stop)
	s.Start(stop)

	// Wait for the initial run.
	deadline := time.After(time.Second)
	for fired.Load() < 1 {
		select {
		case <-deadline:
			t.Fatalf("initial run never fired")
		case <-time.After(time.Millisecond):
		}
	}

	current.Store(time.Date(2026, 8, 24, 3, 0, 30, 0, time.UTC))

	deadline = time.After(time.Second)
	for fired.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("scheduled run never fired after hour crossed")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRunOnce(t *testing.T) {
	s := New(3)
	ran := 0
	s.AddListener(func(time.Time) { ran++ })
	s.RunOnce()
	if ran != 1 {
		t.Fatalf("RunOnce fired %d times, want 1", ran)
	}
}
