// Package db declares the storage handle of bosdb.
package db

import (
	"context"

	"github.com/gnames/bosdb/pkg/config"
	"gorm.io/gorm"
)

// Operator is an explicitly opened and closed storage handle. It
// replaces a process-wide database session: every component that needs
// storage receives the operator, or its *gorm.DB, from the caller.
type Operator interface {
	// Connect opens the store described by the config. SQLite and
	// PostgreSQL are supported.
	Connect(ctx context.Context, cfg *config.Config) error

	// Close releases the connections. It is safe to call Close on an
	// operator that is not connected.
	Close() error

	// DB returns the GORM handle, or nil before Connect.
	DB() *gorm.DB

	// Driver returns the name of the connected backend.
	Driver() string

	// TableExists checks if a table exists in the store.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if any of the catalog tables exist.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all catalog tables.
	DropAllTables(ctx context.Context) error
}
