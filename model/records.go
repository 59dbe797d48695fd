package model

import "time"

// ObjectClass is the heuristic classification of a tracked object.
type ObjectClass string

const (
	ClassSatellite ObjectClass = "satellite"
	ClassDebris    ObjectClass = "debris"
)

// ElementSet is one parsed TLE group: the object name plus the orbital
// elements this pipeline reads from the two companion lines. The raw lines
// are retained verbatim so downstream consumers (e.g. SGP4 propagation)
// can work from the full element set.
type ElementSet struct {
	Name           string
	CatalogNumber  string
	IntlDesignator string
	Epoch          time.Time

	// MeanMotion is in revolutions per day. Zero or negative values are
	// degenerate inputs; derivation degrades rather than failing on them.
	MeanMotion     float64
	Eccentricity   float64
	InclinationDeg float64

	Line1 string
	Line2 string
}

// EnrichedRecord is an ElementSet plus the attributes derived from it.
// Records are ephemeral: produced and consumed within a single catalog build.
type EnrichedRecord struct {
	ElementSet

	// PeriodMinutes is 1440/MeanMotion, or 0 for degenerate mean motion.
	PeriodMinutes float64
	// SemiMajorAxisMeters comes from Kepler's third law; 0 when degenerate.
	SemiMajorAxisMeters float64
	// AltitudeKm assumes a circular orbit, so it is only accurate for
	// near-circular objects. That approximation is deliberate.
	AltitudeKm float64

	Class ObjectClass
}

// SpaceObject is the externally published catalog entity. The JSON field
// names match the normalized feed consumed by downstream services.
type SpaceObject struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ObjectClass `json:"type"`
	Country     string      `json:"country"`
	LaunchDate  string      `json:"launchDate"`
	AltitudeKm  float64     `json:"altitude"`
	Inclination float64     `json:"inclination"`
	PeriodHours float64     `json:"period"`
	Status      string      `json:"status"`
	RiskLevel   string      `json:"riskLevel"`
	LastUpdate  time.Time   `json:"lastUpdate"`
}
