package iocatalog

import (
	"context"
	"slices"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// identityTables are the tables whose ids come from the allocator.
// Herbs share the identity of their base item.
var identityTables = []string{
	"categories",
	"items",
	"chemical_components",
	"effects",
	"references",
	"reference_info",
	"authors",
	"recipes",
	"recipe_steps",
	"vocabulary",
}

// Allocate returns the next identity of a table. It must be called
// inside the transaction that inserts the row, so a rolled back insert
// also rolls back the counter. Identities grow strictly and are never
// reused after deletes. When the counter reaches maxID it returns
// StorageExhaustedError.
func Allocate(tx *gorm.DB, table string, maxID int64) (int64, error) {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&schema.Identity{Name: table}).Error
	if err != nil {
		return 0, err
	}

	var idn schema.Identity
	if err = tx.Where("name = ?", table).Take(&idn).Error; err != nil {
		return 0, err
	}
	if idn.LastID >= maxID {
		return 0, catalog.StorageExhaustedError(table, maxID)
	}

	res := idn.LastID + 1
	err = tx.Model(&schema.Identity{}).
		Where("name = ?", table).
		Update("last_id", res).Error
	if err != nil {
		return 0, err
	}
	return res, nil
}

func (s *store) allocate(tx *gorm.DB, table string) (int64, error) {
	return Allocate(tx, table, s.maxID)
}

// Validate reports if a row with the id exists in the table.
func (s *store) Validate(
	ctx context.Context,
	table string,
	id int64,
) (bool, error) {
	if !slices.Contains(identityTables, table) {
		return false, catalog.ValidationError("table", "unknown table "+table)
	}
	if id <= 0 {
		return false, nil
	}

	gdb, err := s.conn(ctx)
	if err != nil {
		return false, err
	}

	var n int64
	err = gdb.Table(table).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, wrap("validate", err)
	}
	return n > 0, nil
}
