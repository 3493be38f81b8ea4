package iocatalog

import (
	"context"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// CreateReference creates a standalone citation.
func (s *store) CreateReference(
	ctx context.Context,
	location string,
) (catalog.Reference, error) {
	var res catalog.Reference
	location, err := catalog.RequireText("reference location", location)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "create reference", func(tx *gorm.DB) error {
		res, err = s.createReference(tx, nil, location)
		return err
	})
	return res, err
}

func (s *store) createReference(
	tx *gorm.DB,
	itemID *int64,
	location string,
) (catalog.Reference, error) {
	id, err := s.allocate(tx, "references")
	if err != nil {
		return catalog.Reference{}, err
	}
	row := schema.Reference{ID: id, ItemID: itemID, Location: location}
	if err = tx.Create(&row).Error; err != nil {
		return catalog.Reference{}, err
	}
	return referenceOut(row), nil
}

// AttachInfo adds bibliographic metadata to a citation. A citation
// may have more than one metadata record.
func (s *store) AttachInfo(
	ctx context.Context,
	refID int64,
	info catalog.ReferenceInfo,
) (catalog.ReferenceInfo, error) {
	var res catalog.ReferenceInfo
	row := schema.ReferenceInfo{
		RefID:    refID,
		Category: catalog.Clean(info.Category),
		Title:    catalog.Clean(info.Title),
		Subtitle: catalog.Clean(info.Subtitle),
		Year:     catalog.Clean(info.Year),
	}

	err := s.write(ctx, "attach reference info", func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.Reference{}, "references", refID)
		if err != nil {
			return err
		}
		if row.ID, err = s.allocate(tx, "reference_info"); err != nil {
			return err
		}
		if err = tx.Create(&row).Error; err != nil {
			return err
		}
		res = referenceInfoOut(row)
		return nil
	})
	return res, err
}

func (s *store) AddAuthor(
	ctx context.Context,
	infoID int64,
	name string,
) (catalog.Author, error) {
	var res catalog.Author
	name, err := catalog.RequireText("author name", name)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "add author", func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.ReferenceInfo{}, "reference_info", infoID)
		if err != nil {
			return err
		}
		id, err := s.allocate(tx, "authors")
		if err != nil {
			return err
		}
		row := schema.Author{ID: id, ReferenceInfoID: infoID, Name: name}
		if err = tx.Create(&row).Error; err != nil {
			return err
		}
		res = catalog.Author{
			ID:              row.ID,
			ReferenceInfoID: row.ReferenceInfoID,
			Name:            row.Name,
		}
		return nil
	})
	return res, err
}

func referenceInfoOut(row schema.ReferenceInfo) catalog.ReferenceInfo {
	return catalog.ReferenceInfo{
		ID:       row.ID,
		RefID:    row.RefID,
		Category: row.Category,
		Title:    row.Title,
		Subtitle: row.Subtitle,
		Year:     row.Year,
	}
}
