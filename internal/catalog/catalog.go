// Package catalog persists place records into an append-only JSON catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lepinkainen/foodmap/internal/place"
)

// Catalog is the full persisted collection of place records.
type Catalog struct {
	Places []place.Place `json:"places"`
}

// Store reads and rewrites the catalog file. Single-writer by assumption;
// concurrent runs against the same file must be serialized by the caller.
type Store struct {
	path string
}

// NewStore creates a store for the catalog at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the catalog file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted catalog. A missing file yields an empty catalog;
// a corrupt file is an error, never silently discarded.
func (s *Store) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Catalog{Places: []place.Place{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", s.path, err)
	}
	if cat.Places == nil {
		cat.Places = []place.Place{}
	}
	return &cat, nil
}

// Append adds a record to the end of the catalog and rewrites it atomically.
// Returns the new total count. There is no update or delete path.
func (s *Store) Append(p place.Place) (int, error) {
	cat, err := s.Load()
	if err != nil {
		return 0, err
	}

	cat.Places = append(cat.Places, p)

	if err := s.write(cat); err != nil {
		return 0, err
	}

	return len(cat.Places), nil
}

// write marshals the catalog to a temp file in the same directory and
// renames it over the target, so a reader never observes a partial document.
func (s *Store) write(cat *Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".places-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp catalog: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	return nil
}
