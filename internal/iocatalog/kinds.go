package iocatalog

import (
	"fmt"
	"log/slog"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// kindStore knows how to read and remove the concrete records of one
// kind of items.
type kindStore struct {
	// load returns concrete attributes for the given ids. Ids without a
	// concrete record are absent from the result.
	load func(tx *gorm.DB, ids []int64) (map[int64]catalog.Attributes, error)

	// model returns an empty concrete model for deletes.
	model func() any
}

var kindStores = map[catalog.Kind]kindStore{
	catalog.KindHerb: {
		load:  loadHerbs,
		model: func() any { return &schema.Herb{} },
	},
}

// kindOf resolves the discriminator of a base record.
func kindOf(row schema.Item) (catalog.Kind, kindStore, error) {
	kind, ok := catalog.ParseKind(row.Kind)
	if ks, found := kindStores[kind]; ok && found {
		return kind, ks, nil
	}
	err := catalog.CorruptDataError(row.ID,
		fmt.Sprintf("unknown kind %q", row.Kind))
	slog.Error("Unknown item kind", "id", row.ID, "kind", row.Kind)
	return "", kindStore{}, err
}

// resolve dispatches base records on their kinds and joins them with
// their concrete records. The order of rows is preserved.
func resolve(tx *gorm.DB, rows []schema.Item) ([]catalog.Item, error) {
	ids := make(map[catalog.Kind][]int64)
	for _, row := range rows {
		kind, _, err := kindOf(row)
		if err != nil {
			return nil, err
		}
		ids[kind] = append(ids[kind], row.ID)
	}

	attrs := make(map[int64]catalog.Attributes, len(rows))
	for kind, kindIDs := range ids {
		res, err := kindStores[kind].load(tx, kindIDs)
		if err != nil {
			return nil, err
		}
		for id, a := range res {
			attrs[id] = a
		}
	}

	res := make([]catalog.Item, len(rows))
	for i, row := range rows {
		a, ok := attrs[row.ID]
		if !ok {
			slog.Error("Item without concrete record",
				"id", row.ID, "kind", row.Kind)
			return nil, catalog.CorruptDataError(row.ID,
				fmt.Sprintf("no %s record", row.Kind))
		}
		res[i] = catalog.Item{
			ID:         row.ID,
			CategoryID: row.CategoryID,
			Kind:       catalog.Kind(row.Kind),
			Attrs:      a,
		}
	}
	return res, nil
}

func loadHerbs(
	tx *gorm.DB,
	ids []int64,
) (map[int64]catalog.Attributes, error) {
	rows, err := loadIn[schema.Herb](tx, "id", ids, "id")
	if err != nil {
		return nil, err
	}
	res := make(map[int64]catalog.Attributes, len(rows))
	for _, row := range rows {
		res[row.ID] = herbOut(row)
	}
	return res, nil
}

func herbIn(id int64, h catalog.HerbAttrs) schema.Herb {
	return schema.Herb{
		ID:           id,
		ReferenceID:  h.ReferenceID,
		Name:         h.Name,
		Canonical:    h.Canonical,
		CanonicalID:  h.CanonicalID,
		Appearance:   h.Appearance,
		Information:  h.Information,
		Consumable:   h.Consumable,
		Edible:       h.Edible,
		OpenPractice: h.OpenPractice,
		Reason:       h.Reason,
	}
}

func herbOut(row schema.Herb) catalog.HerbAttrs {
	return catalog.HerbAttrs{
		Name:         row.Name,
		ReferenceID:  row.ReferenceID,
		Canonical:    row.Canonical,
		CanonicalID:  row.CanonicalID,
		Appearance:   row.Appearance,
		Information:  row.Information,
		Consumable:   row.Consumable,
		Edible:       row.Edible,
		OpenPractice: row.OpenPractice,
		Reason:       row.Reason,
	}
}
