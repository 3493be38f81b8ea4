package iodb

import (
	"fmt"

	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for PostgreSQL connection failures.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Connection details:</em>
  Host: %s
  Port: %d
  Database: %s
  User: %s

<em>How to fix:</em>
  1. Check if PostgreSQL is running
  2. Verify the database <em>%s</em> exists
  3. Review database settings in the config file`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user, database},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteOpenError creates an error for a SQLite file that cannot be
// opened or created.
func SQLiteOpenError(path string, err error) error {
	msg := `Cannot open SQLite database <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory is writable
  2. Make sure the file is not a different kind of file`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// UnsupportedDriverError creates an error for an unknown backend.
func UnsupportedDriverError(driver string) error {
	msg := "Database driver <em>%s</em> is not supported"

	return &gn.Error{
		Code: errcode.DBUnsupportedDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unsupported driver %q", driver),
	}
}

// TableCheckError creates an error for table existence
// check failures.
func TableCheckError(err error) error {
	msg := "Cannot check database tables"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// NotConnectedError creates an error for operations
// attempted without a connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError creates an error for a failed check of a
// single table.
func TableExistsCheckError(tableName string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{tableName},
		Err: fmt.Errorf("failed to check table %s: %w",
			tableName, err),
	}
}

// DropTableError creates an error for table drop failures.
func DropTableError(tableName string, err error) error {
	msg := "Cannot drop table <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{tableName},
		Err: fmt.Errorf("failed to drop table %s: %w",
			tableName, err),
	}
}

// CloseError creates an error for connections that failed to close.
func CloseError(err error) error {
	msg := "Cannot close database connection"

	return &gn.Error{
		Code: errcode.DBCloseError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to close database: %w", err),
	}
}
