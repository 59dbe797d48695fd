package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_ReplaceAndCount(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Fatalf("fresh store has %d rows, want 0", n)
	}

	if err := s.Replace(ctx, catalogFixture()); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	n, err = s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("Count = %d after Replace, want 2", n)
	}

	// Replacement is wholesale, not additive.
	if err := s.Replace(ctx, catalogFixture()[:1]); err != nil {
		t.Fatalf("second Replace: %v", err)
	}
	n, err = s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("Count = %d after wholesale replacement, want 1", n)
	}
}

func TestSQLiteStore_ReplaceEmpty(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Replace(ctx, catalogFixture()); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace(ctx, nil); err != nil {
		t.Fatalf("Replace with empty catalog: %v", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("Count = %d after empty replacement, want 0", n)
	}
}

func TestSQLiteStore_DuplicateIDsAllowed(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// The same catalog number can appear in two category feeds.
	objects := catalogFixture()
	objects = append(objects, objects[0])

	ctx := context.Background()
	if err := s.Replace(ctx, objects); err != nil {
		t.Fatalf("Replace with duplicate id: %v", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("Count = %d, want 3 (duplicates kept)", n)
	}
}
