package orbit

import (
	"math"
	"testing"
	"time"
)

const (
	issLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

// We don't assert exact orbital values (those belong to go-satellite);
// we just ensure the position is LEO-plausible and moves over time.
func TestPositionAt_ChangesOverTime(t *testing.T) {
	t1 := time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Minute)

	first, err := PositionAt(issLine1, issLine2, t1)
	if err != nil {
		t.Fatalf("PositionAt: %v", err)
	}
	second, err := PositionAt(issLine1, issLine2, t2)
	if err != nil {
		t.Fatalf("PositionAt: %v", err)
	}

	if first == second {
		t.Fatalf("expected position to change over time, got %+v at both times", first)
	}

	radius := math.Sqrt(first.X*first.X + first.Y*first.Y + first.Z*first.Z)
	if radius < 6600 || radius > 7000 {
		t.Errorf("geocentric radius = %v km, want LEO range", radius)
	}
}

func TestPositionAt_RejectsShortLines(t *testing.T) {
	if _, err := PositionAt("1 25544U", issLine2, time.Now()); err == nil {
		t.Fatalf("expected error for truncated line 1")
	}
	if _, err := PositionAt(issLine1, "2 25544", time.Now()); err == nil {
		t.Fatalf("expected error for truncated line 2")
	}
}
