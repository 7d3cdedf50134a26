// Package store provides the key-value persistence the ledger is saved to.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Store is a flat key-value store. Values are opaque blobs.
type Store interface {
	// Get returns the value stored under key, or def when the key has never
	// been written.
	Get(ctx context.Context, key string, def []byte) ([]byte, error)
	// Update overwrites the value stored under key.
	Update(ctx context.Context, key string, value []byte) error
	// Close releases the underlying resources.
	Close() error
}

// Supported driver names.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open selects a backend by driver name. An empty driver means bolt.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverBolt:
		return OpenBolt(path)
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected bolt|sqlite|memory)", ErrUnknownDriver, driver)
	}
}
