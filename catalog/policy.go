package catalog

import "strings"

// Risk levels published on catalog entities.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Altitude thresholds (km) separating risk levels. Policy constants, not
// algorithmic logic; revisit here without touching parsing or derivation.
const (
	highRiskBelowKm   = 500.0
	mediumRiskBelowKm = 800.0
)

// countryTable maps international-designator substrings to country names.
// Order matters: the first matching entry wins, so the table is a slice,
// not a map.
var countryTable = []struct {
	code    string
	country string
}{
	{"US", "USA"},
	{"CIS", "Russia"},
	{"PRC", "China"},
	{"ESA", "ESA"},
	{"FR", "France"},
	{"JP", "Japan"},
	{"IN", "India"},
	{"CA", "Canada"},
	{"UK", "UK"},
}

// CountryFor derives a country of origin from an international designator
// by substring match against the fixed code table. Unknown designators map
// to "Unknown".
func CountryFor(designator string) string {
	if designator == "" {
		return "Unknown"
	}
	for _, entry := range countryTable {
		if strings.Contains(designator, entry.code) {
			return entry.country
		}
	}
	return "Unknown"
}

// RiskFor buckets an altitude into a risk level. Lower orbits are busier
// and decay faster, hence riskier.
func RiskFor(altitudeKm float64) string {
	switch {
	case altitudeKm < highRiskBelowKm:
		return RiskHigh
	case altitudeKm < mediumRiskBelowKm:
		return RiskMedium
	default:
		return RiskLow
	}
}
