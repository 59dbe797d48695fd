// Package state holds the latest catalog build in memory for the serve
// surface.
package state

import (
	"sync"
	"time"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

// EventType indicates what kind of change happened in the catalog state.
type EventType int

const (
	EventCatalogReplaced EventType = iota
)

// Event is emitted to subscribers when the catalog is replaced.
type Event struct {
	Type    EventType
	Objects int
	BuiltAt time.Time
}

// MetricsRecorder receives the class breakdown of each replacement, so
// catalog gauges can be driven directly from the mutator.
type MetricsRecorder interface {
	SetCatalogCounts(satellites, debris int)
}

// CatalogState is an in-memory, thread-safe holder of the latest catalog.
// Whole-catalog replace semantics: there is no merging with the previous
// build and no identity continuity across builds.
type CatalogState struct {
	mu sync.RWMutex

	objects []model.SpaceObject
	builtAt time.Time

	subs    []func(Event)
	metrics MetricsRecorder
}

// Option configures a CatalogState.
type Option func(*CatalogState)

// WithMetricsRecorder attaches a recorder updated on every Replace.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *CatalogState) { s.metrics = m }
}

// NewCatalogState constructs an empty state.
func NewCatalogState(opts ...Option) *CatalogState {
	s := &CatalogState{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace swaps in a new catalog build and notifies subscribers.
func (s *CatalogState) Replace(objects []model.SpaceObject, builtAt time.Time) {
	s.mu.Lock()
	s.objects = append([]model.SpaceObject(nil), objects...)
	s.builtAt = builtAt
	event := Event{
		Type:    EventCatalogReplaced,
		Objects: len(s.objects),
		BuiltAt: builtAt,
	}
	subs := append([]func(Event){}, s.subs...)
	metrics := s.metrics
	s.mu.Unlock()

	if metrics != nil {
		satellites, debris := 0, 0
		for _, obj := range objects {
			if obj.Type == model.ClassDebris {
				debris++
			} else {
				satellites++
			}
		}
		metrics.SetCatalogCounts(satellites, debris)
	}

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(event)
	}
}

// Snapshot returns a copy of the latest catalog and its build time.
func (s *CatalogState) Snapshot() ([]model.SpaceObject, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SpaceObject(nil), s.objects...), s.builtAt
}

// Len returns the number of objects in the latest catalog.
func (s *CatalogState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Subscribe registers a callback for state events. It returns an
// unsubscribe function.
func (s *CatalogState) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < 0 || idx >= len(s.subs) {
			return
		}
		s.subs = append(s.subs[:idx], s.subs[idx+1:]...)
		idx = -1
	}
}
