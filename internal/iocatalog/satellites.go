package iocatalog

import (
	"context"
	"errors"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// AttachAlias adds an alias to a herb. Alias strings are unique in the
// whole catalog, an alias that is already taken returns
// DuplicateAliasError and the existing alias stays as it was.
func (s *store) AttachAlias(
	ctx context.Context,
	herbID int64,
	alias string,
) (catalog.Alias, error) {
	var res catalog.Alias
	alias, err := catalog.RequireText("alias", alias)
	if err != nil {
		return res, err
	}
	canonical, _ := s.canonical(alias)

	err = s.write(ctx, "attach alias", func(tx *gorm.DB) error {
		if _, err := s.herbBase(tx, herbID); err != nil {
			return err
		}

		var old schema.Alias
		err := tx.Where("alias = ?", alias).Take(&old).Error
		if err == nil {
			return catalog.DuplicateAliasError(alias, old.HerbID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := schema.Alias{Alias: alias, HerbID: herbID, Canonical: canonical}
		if err = tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return catalog.DuplicateAliasError(alias, herbID)
			}
			return err
		}
		res = aliasOut(row)
		return nil
	})
	return res, err
}

func (s *store) ListAliases(
	ctx context.Context,
	herbID int64,
) ([]catalog.Alias, error) {
	var rows []schema.Alias
	err := s.listFor(ctx, &rows, "herb_id", herbID, "alias")
	if err != nil {
		return nil, wrap("list aliases", err)
	}
	res := make([]catalog.Alias, len(rows))
	for i := range rows {
		res[i] = aliasOut(rows[i])
	}
	return res, nil
}

func (s *store) DetachAlias(ctx context.Context, alias string) error {
	alias = catalog.Clean(alias)
	return s.write(ctx, "detach alias", func(tx *gorm.DB) error {
		res := tx.Where("alias = ?", alias).Delete(&schema.Alias{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.NotFoundError("aliases", alias)
		}
		return nil
	})
}

func (s *store) AttachChemicalComponent(
	ctx context.Context,
	herbID int64,
	name, rank string,
) (catalog.ChemicalComponent, error) {
	var res catalog.ChemicalComponent
	name, err := catalog.RequireText("chemical component name", name)
	if err != nil {
		return res, err
	}
	rank = catalog.Clean(rank)

	err = s.write(ctx, "attach chemical component", func(tx *gorm.DB) error {
		if _, err := s.herbBase(tx, herbID); err != nil {
			return err
		}
		id, err := s.allocate(tx, "chemical_components")
		if err != nil {
			return err
		}
		row := schema.ChemicalComponent{
			ID:     id,
			HerbID: herbID,
			Name:   name,
			Rank:   rank,
		}
		if err = tx.Create(&row).Error; err != nil {
			return err
		}
		res = componentOut(row)
		return nil
	})
	return res, err
}

func (s *store) ListChemicalComponents(
	ctx context.Context,
	herbID int64,
) ([]catalog.ChemicalComponent, error) {
	var rows []schema.ChemicalComponent
	err := s.listFor(ctx, &rows, "herb_id", herbID, "id")
	if err != nil {
		return nil, wrap("list chemical components", err)
	}
	res := make([]catalog.ChemicalComponent, len(rows))
	for i := range rows {
		res[i] = componentOut(rows[i])
	}
	return res, nil
}

func (s *store) DetachChemicalComponent(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "chemical_components",
		&schema.ChemicalComponent{}, id)
}

func (s *store) AttachEffect(
	ctx context.Context,
	itemID int64,
	effect string,
) (catalog.Effect, error) {
	var res catalog.Effect
	effect, err := catalog.RequireText("effect", effect)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "attach effect", func(tx *gorm.DB) error {
		if _, err := baseItem(tx, itemID); err != nil {
			return err
		}
		id, err := s.allocate(tx, "effects")
		if err != nil {
			return err
		}
		row := schema.Effect{ID: id, ItemID: itemID, Effect: effect}
		if err = tx.Create(&row).Error; err != nil {
			return err
		}
		res = effectOut(row)
		return nil
	})
	return res, err
}

func (s *store) ListEffects(
	ctx context.Context,
	itemID int64,
) ([]catalog.Effect, error) {
	var rows []schema.Effect
	err := s.listFor(ctx, &rows, "item_id", itemID, "id")
	if err != nil {
		return nil, wrap("list effects", err)
	}
	res := make([]catalog.Effect, len(rows))
	for i := range rows {
		res[i] = effectOut(rows[i])
	}
	return res, nil
}

func (s *store) DetachEffect(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "effects", &schema.Effect{}, id)
}

// AttachReference creates a citation attached to an item.
func (s *store) AttachReference(
	ctx context.Context,
	itemID int64,
	location string,
) (catalog.Reference, error) {
	var res catalog.Reference
	location, err := catalog.RequireText("reference location", location)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "attach reference", func(tx *gorm.DB) error {
		if _, err := baseItem(tx, itemID); err != nil {
			return err
		}
		res, err = s.createReference(tx, &itemID, location)
		return err
	})
	return res, err
}

func (s *store) ListReferences(
	ctx context.Context,
	itemID int64,
) ([]catalog.Reference, error) {
	var rows []schema.Reference
	err := s.listFor(ctx, &rows, "item_id", itemID, "id")
	if err != nil {
		return nil, wrap("list references", err)
	}
	res := make([]catalog.Reference, len(rows))
	for i := range rows {
		res[i] = referenceOut(rows[i])
	}
	return res, nil
}

// DetachReference clears the item of an attached citation. The
// citation stays in the bibliography.
func (s *store) DetachReference(ctx context.Context, id int64) error {
	return s.write(ctx, "detach reference", func(tx *gorm.DB) error {
		res := tx.Model(&schema.Reference{}).
			Where("id = ? AND item_id IS NOT NULL", id).
			Update("item_id", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.NotFoundError("attached references", id)
		}
		return nil
	})
}

// listFor loads all rows of a satellite table that belong to an owner.
func (s *store) listFor(
	ctx context.Context,
	rows any,
	column string,
	ownerID int64,
	order string,
) error {
	gdb, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return gdb.Where(column+" = ?", ownerID).Order(order).Find(rows).Error
}

// deleteRow deletes a row by id or returns NotFoundError.
func (s *store) deleteRow(
	ctx context.Context,
	table string,
	model any,
	id int64,
) error {
	return s.write(ctx, "delete from "+table, func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.NotFoundError(table, id)
		}
		return nil
	})
}

func aliasOut(row schema.Alias) catalog.Alias {
	return catalog.Alias{
		Alias:     row.Alias,
		HerbID:    row.HerbID,
		Canonical: row.Canonical,
	}
}

func componentOut(row schema.ChemicalComponent) catalog.ChemicalComponent {
	return catalog.ChemicalComponent{
		ID:     row.ID,
		HerbID: row.HerbID,
		Name:   row.Name,
		Rank:   row.Rank,
	}
}

func effectOut(row schema.Effect) catalog.Effect {
	return catalog.Effect{ID: row.ID, ItemID: row.ItemID, Effect: row.Effect}
}

func referenceOut(row schema.Reference) catalog.Reference {
	return catalog.Reference{
		ID:       row.ID,
		ItemID:   row.ItemID,
		Location: row.Location,
	}
}
