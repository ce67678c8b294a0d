// Package storage defines the Storage interface — the contract every
// menu item backend (MongoDB, SQLite, in-memory) must satisfy.
//
// Handlers depend only on this interface, so switching backends is a
// configuration change (storage.driver) and tests can run against the
// in-memory backend with no database at all.
package storage

import (
	"context"
	"errors"

	"github.com/Shadowrithik/Modify-data2/internal/types"
)

// Sentinel errors shared by every backend. Callers match them with
// errors.Is; backends wrap them with context.
var (
	// ErrNotFound means no menu item has the requested id.
	ErrNotFound = errors.New("menu item not found")

	// ErrInvalidID means the id is not in the backend's id format.
	ErrInvalidID = errors.New("invalid menu item id")
)

// Storage is the menu item store contract.
type Storage interface {
	// CreateMenuItem validates draft against the schema, inserts it and
	// returns the stored record with its generated id.
	CreateMenuItem(ctx context.Context, draft types.Draft) (types.MenuItem, error)

	// GetMenuItems returns every menu item in insertion order.
	// Returns an empty slice (not nil) when the store is empty.
	GetMenuItems(ctx context.Context) ([]types.MenuItem, error)

	// UpdateMenuItemByID casts fields onto the stored record, validates
	// the merged result and commits it. Returns ErrNotFound when no
	// record has id.
	UpdateMenuItemByID(ctx context.Context, id string, fields map[string]any) (types.MenuItem, error)

	// DeleteMenuItemByID removes a record permanently. Returns
	// ErrNotFound when no record has id.
	DeleteMenuItemByID(ctx context.Context, id string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's connections.
	Close(ctx context.Context) error
}
