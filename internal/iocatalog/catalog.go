// Package iocatalog implements bosdb.Catalog on top of GORM. Writes are
// serialized by a mutex and every write runs in a single transaction,
// reads run concurrently.
package iocatalog

import (
	"cmp"
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gnames/bosdb/internal/iodb"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/config"
	"github.com/gnames/bosdb/pkg/db"
	"github.com/gnames/bosdb/pkg/parserpool"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type store struct {
	op    db.Operator
	pool  parserpool.Pool
	maxID int64
	jobs  int

	// mu makes the store the single writer of the catalog.
	mu sync.Mutex
}

// New creates a catalog that uses the connected operator. The parser
// pool is optional, without it canonical forms of names are not
// computed.
func New(
	op db.Operator,
	cfg *config.Config,
	pool parserpool.Pool,
) bosdb.Catalog {
	def := config.New()
	res := &store{
		op:    op,
		pool:  pool,
		maxID: cmp.Or(max(cfg.Database.MaxID, 0), def.Database.MaxID),
		jobs:  cmp.Or(max(cfg.JobsNumber, 0), def.JobsNumber),
	}
	return res
}

func (s *store) conn(ctx context.Context) (*gorm.DB, error) {
	gdb := s.op.DB()
	if gdb == nil {
		return nil, iodb.NotConnectedError()
	}
	return gdb.WithContext(ctx), nil
}

// write runs fn in a transaction while holding the writer lock.
func (s *store) write(
	ctx context.Context,
	op string,
	fn func(tx *gorm.DB) error,
) error {
	gdb, err := s.conn(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return wrap(op, gdb.Transaction(fn))
}

func (s *store) canonical(name string) (string, string) {
	if s.pool == nil || name == "" {
		return "", ""
	}
	return s.pool.Canonical(name)
}

// wrap keeps catalog errors as they are and turns everything else into
// StorageError.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	return catalog.StorageError(op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// exists checks for a row with the given id in the table of model.
func exists(tx *gorm.DB, model any, id int64) (bool, error) {
	var n int64
	err := tx.Model(model).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// mustExist returns NotFoundError if there is no row with the id.
func mustExist(tx *gorm.DB, model any, table string, id int64) error {
	ok, err := exists(tx, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return catalog.NotFoundError(table, id)
	}
	return nil
}
