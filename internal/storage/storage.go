// Package storage provides the opaque key-value capability the snapshot
// layer persists through. Values are strings; the caller owns serialization.
package storage

import (
	"fmt"
)

// Driver identifies a storage backend driver.
type Driver string

const (
	// DriverMemory is the in-memory driver, used by tests.
	DriverMemory Driver = "memory"
	// DriverFile stores each key as a file under the base directory.
	DriverFile Driver = "file"
	// DriverSQLite stores keys in a single-table SQLite database.
	DriverSQLite Driver = "sqlite"
)

// Store is a synchronous key-value store.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)

	// Set writes the value for key, overwriting any prior value.
	Set(key, value string) error

	// Delete removes the key. Removing an absent key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}

// Open creates a Store for the given driver rooted at baseDir.
// baseDir is ignored by the memory driver.
func Open(driver Driver, baseDir string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(baseDir)
	case DriverSQLite:
		return NewSQLite(baseDir)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", driver)
	}
}
