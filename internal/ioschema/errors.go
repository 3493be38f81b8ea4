package ioschema

import (
	"fmt"

	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when a schema operation runs before the
// store is connected.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

func CreateSchemaError(err error) error {
	msg := `Cannot create catalog schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Database file is read-only

<em>How to fix:</em>
  1. Check that the database user can create tables
  2. Check the path of the SQLite file`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

func MigrateSchemaError(err error) error {
	msg := `Cannot migrate catalog schema

<em>How to fix:</em>
  1. Back up the catalog
  2. Run <em>bosdb create --reset</em> and import the data again`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// SeedError is returned when a default category cannot be stored.
func SeedError(category string, err error) error {
	msg := "Cannot create default category <em>%s</em>"

	return &gn.Error{
		Code: errcode.SchemaSeedError,
		Msg:  msg,
		Vars: []any{category},
		Err:  fmt.Errorf("failed to seed category %s: %w", category, err),
	}
}

// CollationError is returned when "C" collation cannot be applied to a
// PostgreSQL column.
func CollationError(table, column string, err error) error {
	msg := `Cannot set collation on <em>%s.%s</em>

<em>How to fix:</em>
  1. Check database user has ALTER permissions
  2. Run <em>bosdb migrate</em> to create missing columns`

	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: []any{table, column},
		Err: fmt.Errorf(
			"failed to set collation on %s.%s: %w",
			table, column, err),
	}
}
