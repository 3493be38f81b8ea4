// Package iotesting provides shared test utilities for tests that
// need a real store. This is an internal package for test
// infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/bosdb/internal/iodb"
	"github.com/gnames/bosdb/pkg/config"
	"github.com/gnames/bosdb/pkg/db"
	"github.com/gnames/bosdb/pkg/schema"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration
	// tests. Tests never run against other databases.
	TestDatabaseName = "bosdb_test"

	// PostgresEnv enables PostgreSQL integration tests when set.
	PostgresEnv = "BOSDB_TEST_POSTGRES"
)

// GetTestConfig returns a configuration with a fresh SQLite file and
// home directory inside t.TempDir().
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDatabasePath(filepath.Join(home, "catalog.sqlite")),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// GetPostgresTestConfig returns a configuration for the PostgreSQL test
// database. It skips the test in short mode or when PostgresEnv is not
// set. Connection settings are taken from BOSDB_DATABASE_* variables
// when present.
func GetPostgresTestConfig(t *testing.T) *config.Config {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}
	if os.Getenv(PostgresEnv) == "" {
		t.Skipf("Skipping PostgreSQL integration test, %s is not set",
			PostgresEnv)
	}

	cfg := GetTestConfig(t)
	opts := []config.Option{
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if s := os.Getenv("BOSDB_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("BOSDB_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("BOSDB_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	cfg.Update(opts)
	return cfg
}

// OpenStore connects to the store of cfg and creates all tables. The
// operator is closed when the test finishes.
func OpenStore(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()

	op := iodb.New()
	if err := op.Connect(context.Background(), cfg); err != nil {
		t.Fatalf("Failed to connect to test store: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })

	if cfg.Database.Driver == "postgres" {
		if err := op.DropAllTables(context.Background()); err != nil {
			t.Fatalf("Failed to clean test database: %v", err)
		}
	}

	if err := schema.Migrate(op.DB()); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return op
}
