// Package iodb implements the storage handle using GORM. SQLite files
// are opened through the pure Go modernc driver, PostgreSQL through a
// pgxpool. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gnames/bosdb/pkg/config"
	"github.com/gnames/bosdb/pkg/db"
	"github.com/gnames/bosdb/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// sqlitePragmas turn on foreign keys for every pooled connection and
// make concurrent readers wait for the writer instead of failing.
const sqlitePragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

type operator struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
	driver string
}

// New creates a new database operator (without connecting).
func New() db.Operator {
	return &operator{}
}

// Connect opens the store selected by cfg.Database.Driver.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.Log.Level == "debug" {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var err error
	switch cfg.Database.Driver {
	case "", "sqlite":
		err = o.connectSQLite(ctx, cfg.SQLitePath(), gormCfg)
	case "postgres":
		err = o.connectPostgres(ctx, &cfg.Database, gormCfg)
	default:
		err = UnsupportedDriverError(cfg.Database.Driver)
	}
	if err != nil {
		return err
	}

	slog.Info("Connected to database", "driver", o.driver)
	return nil
}

func (o *operator) connectSQLite(
	ctx context.Context,
	path string,
	gormCfg *gorm.Config,
) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return SQLiteOpenError(path, err)
	}

	gormDB, err := gorm.Open(
		sqlite.Dialector{DriverName: "sqlite", DSN: path + sqlitePragmas},
		gormCfg,
	)
	if err != nil {
		return SQLiteOpenError(path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return SQLiteOpenError(path, err)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteOpenError(path, err)
	}

	o.db = gormDB
	o.sqlDB = sqlDB
	o.driver = "sqlite"
	return nil
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
	gormCfg *gorm.Config,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormCfg,
	)
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.db = gormDB
	o.sqlDB = sqlDB
	o.pool = pool
	o.driver = "postgres"
	return nil
}

// Close releases all database connections.
func (o *operator) Close() error {
	var err error
	if o.sqlDB != nil {
		err = o.sqlDB.Close()
	}
	if o.pool != nil {
		o.pool.Close()
	}
	o.db, o.sqlDB, o.pool = nil, nil, nil
	if err != nil {
		return CloseError(err)
	}
	return nil
}

// DB returns the GORM handle.
func (o *operator) DB() *gorm.DB {
	return o.db
}

func (o *operator) Driver() string {
	return o.driver
}

// TableExists checks if a table exists in the current
// database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	tables, err := o.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return slices.Contains(tables, tableName), nil
}

// HasTables checks if any of the catalog tables exists.
func (o *operator) HasTables(ctx context.Context) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	tables, err := o.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return false, TableCheckError(err)
	}
	for _, v := range schema.TableNames() {
		if slices.Contains(tables, v) {
			return true, nil
		}
	}
	return false, nil
}

// DropAllTables drops all catalog tables. Tables are dropped in the
// reverse order of their dependencies so that foreign keys never
// block the drop.
func (o *operator) DropAllTables(ctx context.Context) error {
	if o.db == nil {
		return NotConnectedError()
	}

	m := o.db.WithContext(ctx).Migrator()
	names := schema.TableNames()
	for i := len(names) - 1; i >= 0; i-- {
		if err := m.DropTable(names[i]); err != nil {
			return DropTableError(names[i], err)
		}
	}
	return nil
}
