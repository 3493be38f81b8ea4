// Package ioschema implements bosdb.SchemaManager with GORM
// AutoMigrate. Creating the schema also seeds the default categories.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/config"
	"github.com/gnames/bosdb/pkg/db"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// DefaultCategories are created by Create when they are missing.
var DefaultCategories = []struct {
	Name, Note string
}{
	{"Herbs", "Various herbs."},
}

type manager struct {
	op  db.Operator
	cfg *config.Config
}

// NewManager creates a SchemaManager for a connected operator.
func NewManager(op db.Operator, cfg *config.Config) bosdb.SchemaManager {
	return &manager{op: op, cfg: cfg}
}

// Create creates missing tables, applies collation on PostgreSQL and
// seeds the default categories. Running it on an existing catalog
// changes nothing.
func (m *manager) Create(ctx context.Context) error {
	gdb, err := m.conn(ctx)
	if err != nil {
		return err
	}

	if err = schema.Migrate(gdb); err != nil {
		return CreateSchemaError(err)
	}

	if m.op.Driver() == "postgres" {
		if err = setCollation(gdb); err != nil {
			return err
		}
	}

	return m.seed(ctx)
}

func (m *manager) Migrate(ctx context.Context) error {
	gdb, err := m.conn(ctx)
	if err != nil {
		return err
	}
	if err = schema.Migrate(gdb); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

// Reset drops all catalog tables and creates an empty seeded schema.
func (m *manager) Reset(ctx context.Context) error {
	if _, err := m.conn(ctx); err != nil {
		return err
	}
	slog.Warn("Dropping all catalog tables")
	if err := m.op.DropAllTables(ctx); err != nil {
		return err
	}
	return m.Create(ctx)
}

func (m *manager) conn(ctx context.Context) (*gorm.DB, error) {
	gdb := m.op.DB()
	if gdb == nil {
		return nil, NotConnectedError()
	}
	return gdb.WithContext(ctx), nil
}

func (m *manager) seed(ctx context.Context) error {
	cat := iocatalog.New(m.op, m.cfg, nil)
	for _, v := range DefaultCategories {
		c, err := cat.EnsureCategory(ctx, v.Name, v.Note)
		if err != nil {
			return SeedError(v.Name, err)
		}
		slog.Debug("Category is ready", "id", c.ID, "name", c.Name)
	}
	return nil
}

func setCollation(gdb *gorm.DB) error {
	for _, v := range collatedColumns {
		if err := gdb.Exec(collationSQL(v.table, v.column)).Error; err != nil {
			return CollationError(v.table, v.column, err)
		}
	}
	return nil
}
