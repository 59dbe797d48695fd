package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

// SQLiteStore mirrors the catalog into a SQLite database so operators can
// query it without parsing the JSON document. The catalog is replaced
// wholesale on every build, matching the JSON semantics.
type SQLiteStore struct {
	db *sql.DB
}

// No uniqueness constraint on id: the same catalog number may legitimately
// appear in two category feeds, and both entities are kept.
const schema = `
CREATE TABLE IF NOT EXISTS space_objects (
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	country     TEXT NOT NULL,
	launch_date TEXT NOT NULL,
	altitude_km REAL NOT NULL,
	inclination REAL NOT NULL,
	period_h    REAL NOT NULL,
	status      TEXT NOT NULL,
	risk_level  TEXT NOT NULL,
	last_update TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_space_objects_type ON space_objects(type);
CREATE INDEX IF NOT EXISTS idx_space_objects_risk ON space_objects(risk_level);
`

// OpenSQLite opens (and initialises) a catalog database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Replace swaps the stored catalog for the given objects inside a single
// transaction, so readers see either the old catalog or the new one.
func (s *SQLiteStore) Replace(ctx context.Context, objects []model.SpaceObject) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM space_objects`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO space_objects
			(id, name, type, country, launch_date, altitude_km, inclination, period_h, status, risk_level, last_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, obj := range objects {
		if _, err := stmt.ExecContext(ctx,
			obj.ID, obj.Name, string(obj.Type), obj.Country, obj.LaunchDate,
			obj.AltitudeKm, obj.Inclination, obj.PeriodHours,
			obj.Status, obj.RiskLevel, obj.LastUpdate.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert %q: %w", obj.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of stored catalog entities.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM space_objects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
