package iocatalog

import (
	"context"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// CreateVocab adds a vocabulary term to a category. The citation is
// optional.
func (s *store) CreateVocab(
	ctx context.Context,
	categoryID int64,
	term, definition string,
	refID *int64,
) (catalog.Vocab, error) {
	var res catalog.Vocab
	term, err := catalog.RequireText("term", term)
	if err != nil {
		return res, err
	}
	definition = catalog.Clean(definition)
	if refID != nil && *refID <= 0 {
		refID = nil
	}

	err = s.write(ctx, "create vocabulary term", func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.Category{}, "categories", categoryID)
		if err != nil {
			return err
		}
		if err = checkReference(tx, refID); err != nil {
			return err
		}
		id, err := s.allocate(tx, "vocabulary")
		if err != nil {
			return err
		}
		row := schema.Vocab{
			ID:         id,
			CategoryID: categoryID,
			RefID:      refID,
			Term:       term,
			Definition: definition,
		}
		if err = tx.Create(&row).Error; err != nil {
			return err
		}
		res = catalog.Vocab{
			ID:         row.ID,
			CategoryID: row.CategoryID,
			RefID:      row.RefID,
			Term:       row.Term,
			Definition: row.Definition,
		}
		return nil
	})
	return res, err
}
