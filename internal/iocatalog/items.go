package iocatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// CreateHerb validates the herb, allocates an item id and inserts the
// base record and the herb record in one transaction.
func (s *store) CreateHerb(
	ctx context.Context,
	categoryID int64,
	h catalog.HerbAttrs,
) (catalog.Item, error) {
	var res catalog.Item
	h, err := s.prepareHerb(h)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "create herb", func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.Category{}, "categories", categoryID)
		if err != nil {
			return err
		}
		if err = checkReference(tx, h.ReferenceID); err != nil {
			return err
		}

		id, err := s.allocate(tx, "items")
		if err != nil {
			return err
		}
		base := schema.Item{
			ID:         id,
			CategoryID: categoryID,
			Kind:       string(catalog.KindHerb),
		}
		if err = tx.Create(&base).Error; err != nil {
			return err
		}
		herb := herbIn(id, h)
		if err = tx.Create(&herb).Error; err != nil {
			return err
		}

		res = catalog.Item{
			ID:         id,
			CategoryID: categoryID,
			Kind:       catalog.KindHerb,
			Attrs:      h,
		}
		return nil
	})
	return res, err
}

// UpdateHerb replaces all fields of an existing herb.
func (s *store) UpdateHerb(
	ctx context.Context,
	id int64,
	h catalog.HerbAttrs,
) (catalog.Item, error) {
	var res catalog.Item
	h, err := s.prepareHerb(h)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "update herb", func(tx *gorm.DB) error {
		base, err := s.herbBase(tx, id)
		if err != nil {
			return err
		}
		if err = checkReference(tx, h.ReferenceID); err != nil {
			return err
		}

		ok, err := exists(tx, &schema.Herb{}, id)
		if err != nil {
			return err
		}
		if !ok {
			slog.Error("Item without concrete record", "id", id)
			return catalog.CorruptDataError(id, "no herb record")
		}

		herb := herbIn(id, h)
		if err = tx.Save(&herb).Error; err != nil {
			return err
		}
		res = catalog.Item{
			ID:         id,
			CategoryID: base.CategoryID,
			Kind:       catalog.KindHerb,
			Attrs:      h,
		}
		return nil
	})
	return res, err
}

func (s *store) prepareHerb(h catalog.HerbAttrs) (catalog.HerbAttrs, error) {
	h = h.Normalize()
	if err := h.Validate(); err != nil {
		return h, err
	}
	h.Canonical, h.CanonicalID = s.canonical(h.Name)
	return h, nil
}

func checkReference(tx *gorm.DB, refID *int64) error {
	if refID == nil {
		return nil
	}
	return mustExist(tx, &schema.Reference{}, "references", *refID)
}

// baseItem reads a base record or returns NotFoundError.
func baseItem(tx *gorm.DB, id int64) (schema.Item, error) {
	var row schema.Item
	err := tx.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, catalog.NotFoundError("items", id)
	}
	return row, err
}

// herbBase reads a base record that must be a herb.
func (s *store) herbBase(tx *gorm.DB, id int64) (schema.Item, error) {
	row, err := baseItem(tx, id)
	if err != nil {
		return row, err
	}
	if row.Kind != string(catalog.KindHerb) {
		return row, catalog.ValidationError("herb id",
			fmt.Sprintf("item %d is a %s", id, row.Kind))
	}
	return row, nil
}

// GetItem reads the base record, dispatches on its kind and loads the
// concrete record.
func (s *store) GetItem(ctx context.Context, id int64) (catalog.Item, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return catalog.Item{}, err
	}

	row, err := baseItem(gdb, id)
	if err != nil {
		return catalog.Item{}, wrap("get item", err)
	}
	items, err := resolve(gdb, []schema.Item{row})
	if err != nil {
		return catalog.Item{}, wrap("get item", err)
	}
	return items[0], nil
}

func (s *store) ListItems(
	ctx context.Context,
	categoryID int64,
) ([]catalog.Item, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	err = mustExist(gdb, &schema.Category{}, "categories", categoryID)
	if err != nil {
		return nil, wrap("list items", err)
	}

	var rows []schema.Item
	err = gdb.Where("category_id = ?", categoryID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, wrap("list items", err)
	}

	res, err := resolve(gdb, rows)
	return res, wrap("list items", err)
}

// FindItems looks for herbs by name, alias and by canonical forms of
// both, so "Mentha piperita" finds a herb stored as "Mentha piperita L."
func (s *store) FindItems(
	ctx context.Context,
	name string,
) ([]catalog.Item, error) {
	name = catalog.Clean(name)
	if name == "" {
		return []catalog.Item{}, nil
	}
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	canonical, _ := s.canonical(name)
	if canonical == "" {
		canonical = name
	}

	var herbIDs []int64
	err = gdb.Model(&schema.Herb{}).
		Where("name = ? OR canonical = ?", name, canonical).
		Pluck("id", &herbIDs).Error
	if err != nil {
		return nil, wrap("find items", err)
	}

	var aliasIDs []int64
	err = gdb.Model(&schema.Alias{}).
		Where("alias = ? OR canonical = ?", name, canonical).
		Pluck("herb_id", &aliasIDs).Error
	if err != nil {
		return nil, wrap("find items", err)
	}

	ids := append(herbIDs, aliasIDs...)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}

	rows, err := loadIn[schema.Item](gdb, "id", ids, "id")
	if err != nil {
		return nil, wrap("find items", err)
	}
	res, err := resolve(gdb, rows)
	return res, wrap("find items", err)
}

// DeleteItem removes the concrete and the base record of an item that
// has no satellites. Satellites have to be detached first, otherwise
// ReferentialIntegrityError is returned and nothing changes.
func (s *store) DeleteItem(ctx context.Context, id int64) error {
	return s.write(ctx, "delete item", func(tx *gorm.DB) error {
		row, err := baseItem(tx, id)
		if err != nil {
			return err
		}
		_, ks, err := kindOf(row)
		if err != nil {
			return err
		}

		deps, err := dependents(tx, id)
		if err != nil {
			return err
		}
		if len(deps) > 0 {
			err = catalog.ReferentialIntegrityError("items", id,
				fmt.Errorf("attached %s", strings.Join(deps, ", ")))
			slog.Error("Item still has satellites",
				"id", id, "satellites", deps)
			return err
		}

		return deleteRecords(tx, id, ks)
	})
}

// PurgeItem deletes aliases, chemical components and effects of an
// item, detaches its citations and deletes the item, all in one
// transaction.
func (s *store) PurgeItem(ctx context.Context, id int64) error {
	return s.write(ctx, "purge item", func(tx *gorm.DB) error {
		row, err := baseItem(tx, id)
		if err != nil {
			return err
		}
		_, ks, err := kindOf(row)
		if err != nil {
			return err
		}

		err = tx.Where("herb_id = ?", id).Delete(&schema.Alias{}).Error
		if err != nil {
			return err
		}
		err = tx.Where("herb_id = ?", id).Delete(&schema.ChemicalComponent{}).Error
		if err != nil {
			return err
		}
		err = tx.Where("item_id = ?", id).Delete(&schema.Effect{}).Error
		if err != nil {
			return err
		}
		err = tx.Model(&schema.Reference{}).
			Where("item_id = ?", id).
			Update("item_id", nil).Error
		if err != nil {
			return err
		}

		return deleteRecords(tx, id, ks)
	})
}

// deleteRecords removes the concrete record and then the base record.
func deleteRecords(tx *gorm.DB, id int64, ks kindStore) error {
	err := tx.Where("id = ?", id).Delete(ks.model()).Error
	if err == nil {
		err = tx.Where("id = ?", id).Delete(&schema.Item{}).Error
	}
	if err != nil && isForeignKeyViolation(err) {
		slog.Error("Item is referenced by other rows", "id", id)
		return catalog.ReferentialIntegrityError("items", id, err)
	}
	return err
}

// dependents returns descriptions of satellites that point to an item.
func dependents(tx *gorm.DB, id int64) ([]string, error) {
	checks := []struct {
		name   string
		model  any
		column string
	}{
		{"aliases", &schema.Alias{}, "herb_id"},
		{"chemical components", &schema.ChemicalComponent{}, "herb_id"},
		{"effects", &schema.Effect{}, "item_id"},
		{"references", &schema.Reference{}, "item_id"},
	}

	var res []string
	for _, v := range checks {
		var n int64
		err := tx.Model(v.model).Where(v.column+" = ?", id).Count(&n).Error
		if err != nil {
			return nil, err
		}
		if n > 0 {
			res = append(res, fmt.Sprintf("%d %s", n, v.name))
		}
	}
	return res, nil
}
