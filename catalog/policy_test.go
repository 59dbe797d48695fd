package catalog

import "testing"

func TestCountryFor(t *testing.T) {
	cases := []struct {
		designator string
		want       string
	}{
		// Real designators carry no recognized code.
		{"98067A", "Unknown"},
		{"", "Unknown"},
		// Hypothetical designators containing a code substring.
		{"US-1998-067A", "USA"},
		{"CIS-93036", "Russia"},
		{"PRC-99025", "China"},
		{"ESA-01049", "ESA"},
		{"JP-09002", "Japan"},
	}
	for _, tc := range cases {
		if got := CountryFor(tc.designator); got != tc.want {
			t.Errorf("CountryFor(%q) = %q, want %q", tc.designator, got, tc.want)
		}
	}
}

func TestCountryFor_FirstMatchWins(t *testing.T) {
	// Both US and CA match; US is checked first per the table order.
	if got := CountryFor("US-CA-00001"); got != "USA" {
		t.Errorf("CountryFor = %q, want USA (first table entry wins)", got)
	}
}

func TestRiskFor_Thresholds(t *testing.T) {
	cases := []struct {
		altitudeKm float64
		want       string
	}{
		{499.9, RiskHigh},
		{500.0, RiskMedium}, // boundary: <500 is high, exactly 500 is medium
		{799.9, RiskMedium},
		{800.0, RiskLow}, // boundary: <800 is medium, exactly 800 is low
		{0, RiskHigh},
		{-6371, RiskHigh},
		{35786, RiskLow},
	}
	for _, tc := range cases {
		if got := RiskFor(tc.altitudeKm); got != tc.want {
			t.Errorf("RiskFor(%v) = %q, want %q", tc.altitudeKm, got, tc.want)
		}
	}
}
