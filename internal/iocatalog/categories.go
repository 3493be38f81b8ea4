package iocatalog

import (
	"context"
	"errors"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

func (s *store) CreateCategory(
	ctx context.Context,
	name, note string,
) (catalog.Category, error) {
	var res catalog.Category
	name, err := catalog.RequireText("category name", name)
	if err != nil {
		return res, err
	}
	note = catalog.Clean(note)

	err = s.write(ctx, "create category", func(tx *gorm.DB) error {
		res, err = s.createCategory(tx, name, note)
		return err
	})
	return res, err
}

// EnsureCategory returns the category with the lowest id among the
// ones called name, or creates a new one.
func (s *store) EnsureCategory(
	ctx context.Context,
	name, note string,
) (catalog.Category, error) {
	var res catalog.Category
	name, err := catalog.RequireText("category name", name)
	if err != nil {
		return res, err
	}
	note = catalog.Clean(note)

	err = s.write(ctx, "ensure category", func(tx *gorm.DB) error {
		var row schema.Category
		err := tx.Where("name = ?", name).Order("id").Take(&row).Error
		if err == nil {
			res = categoryOut(row)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		res, err = s.createCategory(tx, name, note)
		return err
	})
	return res, err
}

func (s *store) createCategory(
	tx *gorm.DB,
	name, note string,
) (catalog.Category, error) {
	id, err := s.allocate(tx, "categories")
	if err != nil {
		return catalog.Category{}, err
	}
	row := schema.Category{ID: id, Name: name, Note: note}
	if err = tx.Create(&row).Error; err != nil {
		return catalog.Category{}, err
	}
	return categoryOut(row), nil
}

func (s *store) GetCategory(
	ctx context.Context,
	id int64,
) (catalog.Category, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return catalog.Category{}, err
	}

	var row schema.Category
	err = gdb.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Category{}, catalog.NotFoundError("categories", id)
	}
	if err != nil {
		return catalog.Category{}, wrap("get category", err)
	}
	return categoryOut(row), nil
}

func (s *store) ListCategories(
	ctx context.Context,
) ([]catalog.Category, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []schema.Category
	if err = gdb.Order("id").Find(&rows).Error; err != nil {
		return nil, wrap("list categories", err)
	}

	res := make([]catalog.Category, len(rows))
	for i := range rows {
		res[i] = categoryOut(rows[i])
	}
	return res, nil
}

func categoryOut(row schema.Category) catalog.Category {
	return catalog.Category{ID: row.ID, Name: row.Name, Note: row.Note}
}
