// Package orbit derives physical attributes from parsed orbital elements.
package orbit

import (
	"math"
	"strings"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

const (
	// earthGM is the standard gravitational parameter of Earth in m³/s².
	earthGM = 3.986004418e14
	// earthRadiusKm is the mean Earth radius used for altitude conversion.
	earthRadiusKm = 6371.0

	minutesPerDay = 1440.0
	secondsPerDay = 86400.0
)

// debrisTokens classify an object as debris when any of them appears in the
// object name. Heuristic with known misfires (a payload named "DEBUG-1"
// would match "deb"); keep it a policy table, not logic.
var debrisTokens = []string{"deb", "debris", "r/b", "rocket"}

// Classify returns the object class for a feed name, matched case-insensitively.
func Classify(name string) model.ObjectClass {
	lower := strings.ToLower(name)
	for _, tok := range debrisTokens {
		if strings.Contains(lower, tok) {
			return model.ClassDebris
		}
	}
	return model.ClassSatellite
}

// Derive computes the enriched record for an element set. It is a pure
// function: no I/O, deterministic for identical input.
//
// Degenerate mean motion (≤ 0 rev/day) yields zero-valued period, semi-major
// axis, and altitude instead of a division error.
func Derive(es model.ElementSet) model.EnrichedRecord {
	rec := model.EnrichedRecord{
		ElementSet: es,
		Class:      Classify(es.Name),
	}
	if es.MeanMotion <= 0 {
		return rec
	}

	rec.PeriodMinutes = minutesPerDay / es.MeanMotion

	// Kepler III: a = (GM / n²)^(1/3) with n in rad/s.
	n := es.MeanMotion * 2 * math.Pi / secondsPerDay
	rec.SemiMajorAxisMeters = math.Cbrt(earthGM / (n * n))

	// Circular-orbit approximation; only accurate for near-circular objects.
	rec.AltitudeKm = rec.SemiMajorAxisMeters/1000.0 - earthRadiusKm

	return rec
}
