package state

import (
	"testing"
	"time"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

func sampleObjects() []model.SpaceObject {
	return []model.SpaceObject{
		{ID: "SAT-25544", Type: model.ClassSatellite},
		{ID: "DEB-34422", Type: model.ClassDebris},
		{ID: "SAT-43013", Type: model.ClassSatellite},
	}
}

func TestReplaceAndSnapshot(t *testing.T) {
	s := NewCatalogState()

	objects, builtAt := s.Snapshot()
	if len(objects) != 0 || !builtAt.IsZero() {
		t.Fatalf("fresh state should be empty, got %d objects", len(objects))
	}

	at := time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)
	s.Replace(sampleObjects(), at)

	objects, builtAt = s.Snapshot()
	if len(objects) != 3 {
		t.Fatalf("Snapshot returned %d objects, want 3", len(objects))
	}
	if !builtAt.Equal(at) {
		t.Errorf("builtAt = %v, want %v", builtAt, at)
	}

	// Snapshot is a copy: mutating it must not affect the state.
	objects[0].ID = "mutated"
	again, _ := s.Snapshot()
	if again[0].ID != "SAT-25544" {
		t.Errorf("snapshot mutation leaked into state")
	}
}

func TestReplace_WholeCatalogSemantics(t *testing.T) {
	s := NewCatalogState()
	s.Replace(sampleObjects(), time.Now())
	s.Replace([]model.SpaceObject{{ID: "SAT-1"}}, time.Now())

	if s.Len() != 1 {
		t.Fatalf("Len = %d after replacement, want 1 (no merging)", s.Len())
	}
}

func TestSubscribe(t *testing.T) {
	s := NewCatalogState()

	var events []Event
	unsubscribe := s.Subscribe(func(e Event) { events = append(events, e) })

	at := time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)
	s.Replace(sampleObjects(), at)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventCatalogReplaced || events[0].Objects != 3 || !events[0].BuiltAt.Equal(at) {
		t.Errorf("unexpected event: %+v", events[0])
	}

	unsubscribe()
	s.Replace(nil, time.Now())
	if len(events) != 1 {
		t.Errorf("unsubscribed callback still invoked")
	}
}

type countRecorder struct {
	satellites, debris int
}

func (r *countRecorder) SetCatalogCounts(satellites, debris int) {
	r.satellites, r.debris = satellites, debris
}

func TestReplace_DrivesMetricsRecorder(t *testing.T) {
	rec := &countRecorder{}
	s := NewCatalogState(WithMetricsRecorder(rec))

	s.Replace(sampleObjects(), time.Now())
	if rec.satellites != 2 || rec.debris != 1 {
		t.Errorf("recorder got %d/%d, want 2 satellites and 1 debris", rec.satellites, rec.debris)
	}
}
