package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

func catalogFixture() []model.SpaceObject {
	return []model.SpaceObject{
		{
			ID:          "SAT-25544",
			Name:        "ISS (ZARYA)",
			Type:        model.ClassSatellite,
			Country:     "Unknown",
			LaunchDate:  "2021-10-02",
			AltitudeKm:  423.6,
			Inclination: 51.6,
			PeriodHours: 1.5,
			Status:      "active",
			RiskLevel:   "high",
			LastUpdate:  time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC),
		},
		{
			ID:        "DEB-34422",
			Name:      "COSMOS 2251 DEB",
			Type:      model.ClassDebris,
			Status:    "inactive",
			RiskLevel: "medium",
		},
	}
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog", "space_objects.json")
	w := NewJSONWriter(path)

	if err := w.Write(catalogFixture()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := w.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Read returned %d objects, want 2", len(got))
	}
	if got[0].ID != "SAT-25544" || got[1].ID != "DEB-34422" {
		t.Errorf("order not preserved: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].LaunchDate != "2021-10-02" {
		t.Errorf("LaunchDate = %q, want 2021-10-02", got[0].LaunchDate)
	}
}

func TestJSONWriter_FieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "space_objects.json")
	w := NewJSONWriter(path)
	if err := w.Write(catalogFixture()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	for _, field := range []string{`"id"`, `"launchDate"`, `"altitude"`, `"period"`, `"riskLevel"`, `"lastUpdate"`} {
		if !strings.Contains(doc, field) {
			t.Errorf("catalog document missing field %s", field)
		}
	}
}

func TestJSONWriter_EmptyCatalogIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "space_objects.json")
	w := NewJSONWriter(path)
	if err := w.Write(nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty catalog = %q, want []", string(data))
	}
}

func TestJSONWriter_ReplacesPreviousCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "space_objects.json")
	w := NewJSONWriter(path)

	if err := w.Write(catalogFixture()); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(catalogFixture()[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := w.Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("catalog has %d objects after rewrite, want 1", len(got))
	}
}

func TestJSONWriter_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONWriter(filepath.Join(dir, "space_objects.json"))
	if err := w.Write(catalogFixture()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
}
