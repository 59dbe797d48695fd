// Package catalog assembles enriched TLE records into the normalized
// catalog of space objects and runs the per-category build pipeline.
package catalog

import (
	"math"
	"time"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

// NewEntity builds the published catalog entity for one enriched record.
// builtAt stamps the entity's lastUpdate field; all entities of one build
// share it.
func NewEntity(rec model.EnrichedRecord, builtAt time.Time) model.SpaceObject {
	prefix := "SAT-"
	status := "active"
	if rec.Class == model.ClassDebris {
		prefix = "DEB-"
		// Crude binary: debris is never operated. Not lifecycle-aware.
		status = "inactive"
	}

	return model.SpaceObject{
		ID:          prefix + rec.CatalogNumber,
		Name:        rec.Name,
		Type:        rec.Class,
		Country:     CountryFor(rec.IntlDesignator),
		LaunchDate:  rec.Epoch.Format("2006-01-02"),
		AltitudeKm:  round1(rec.AltitudeKm),
		Inclination: round1(rec.InclinationDeg),
		PeriodHours: round1(rec.PeriodMinutes / 60.0),
		Status:      status,
		RiskLevel:   RiskFor(rec.AltitudeKm),
		LastUpdate:  builtAt,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
