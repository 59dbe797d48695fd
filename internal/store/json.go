// Package store persists the normalized catalog: a JSON document for
// downstream consumers and an optional SQLite mirror for querying.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

// JSONWriter persists the whole catalog as an indented JSON array.
// Write failures are fatal to the build step: a half-written catalog means
// stale or missing data for every consumer of the file.
type JSONWriter struct {
	Path string
}

// NewJSONWriter writes the catalog to the given path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{Path: path}
}

// Write replaces the catalog file with the given objects. The document is
// written to a temp file first and renamed into place so readers never see
// a partial catalog.
func (w *JSONWriter) Write(objects []model.SpaceObject) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	// An empty catalog still serializes as [], not null.
	if objects == nil {
		objects = []model.SpaceObject{}
	}
	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	tmp := w.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("install catalog: %w", err)
	}
	return nil
}

// Read loads the previously written catalog, for commands that only need
// the latest snapshot.
func (w *JSONWriter) Read() ([]model.SpaceObject, error) {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var objects []model.SpaceObject
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return objects, nil
}
