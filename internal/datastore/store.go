// Package datastore mirrors the catalog into a local SQLite database for
// Datasette browsing. The JSON catalog stays the source of truth; the mirror
// is rebuilt wholesale after every append.
package datastore

// Store defines the interface for the local SQLite mirror
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// Reset removes all rows from the specified table
	Reset(table string) error

	// BatchInsert inserts multiple records into the specified table
	BatchInsert(table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
