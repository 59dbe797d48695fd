// Package sched triggers periodic catalog rebuilds.
package sched

import (
	"sync"
	"time"
)

// Scheduler fires registered listeners once per day at a configured hour,
// plus once immediately on start. Listeners run synchronously on the
// scheduler goroutine, so a build can never overlap itself.
type Scheduler struct {
	mu sync.RWMutex

	// UpdateHour is the local hour (0-23) at which the daily run fires.
	UpdateHour int
	// PollInterval is how often the loop checks whether the daily run is
	// due. It only bounds trigger latency, not build frequency.
	PollInterval time.Duration

	now       func() time.Time
	listeners []func(time.Time)
	lastFired time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPollInterval overrides the due-check interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.PollInterval = d
		}
	}
}

// New constructs a scheduler firing daily at updateHour.
func New(updateHour int, opts ...Option) *Scheduler {
	s := &Scheduler{
		UpdateHour:   updateHour,
		PollInterval: time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddListener registers a callback invoked on every scheduled run with the
// trigger time.
func (s *Scheduler) AddListener(fn func(time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Start runs the scheduler in a separate goroutine: an immediate initial
// run, then a daily run at UpdateHour. Closing stop ends the loop; the
// returned channel is closed when the loop has exited. A run in progress
// is never interrupted.
func (s *Scheduler) Start(stop <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		s.fire(s.now())

		ticker := time.NewTicker(s.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				now := s.now()
				if s.due(now) {
					s.fire(now)
				}
			}
		}
	}()
	return done
}

// RunOnce fires all listeners immediately, outside any schedule.
func (s *Scheduler) RunOnce() {
	s.fire(s.now())
}

// due reports whether the daily run at UpdateHour should fire at time now:
// today's UpdateHour has been reached and nothing has fired since then.
// An initial run before the hour does not suppress today's scheduled run.
func (s *Scheduler) due(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	threshold := time.Date(now.Year(), now.Month(), now.Day(), s.UpdateHour, 0, 0, 0, now.Location())
	return !now.Before(threshold) && s.lastFired.Before(threshold)
}

func (s *Scheduler) fire(now time.Time) {
	s.mu.Lock()
	s.lastFired = now
	listeners := append([]func(time.Time){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(now)
	}
}
