package iocatalog_test

import (
	"context"
	"testing"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/bosdb/pkg/schema"
	"github.com/gnames/gn"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHerb(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	attrs := catalog.HerbAttrs{
		Name:         "Mentha piperita L.",
		Appearance:   "Green leaves",
		Consumable:   boolPtr(true),
		Edible:       boolPtr(false),
		OpenPractice: true,
		Reason:       "common",
	}
	it, err := cat.CreateHerb(ctx, herbs.ID, attrs)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(int64(1), it.ID)
	assert.Equal(catalog.KindHerb, it.Kind)

	got, err := cat.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(it, got)

	h, ok := got.Herb()
	require.True(t, ok)
	assert.Equal("Mentha piperita L.", h.Name)
	assert.Equal("Mentha piperita", h.Canonical)
	assert.Equal(gnuuid.New("Mentha piperita").String(), h.CanonicalID)
	assert.Equal(boolPtr(true), h.Consumable)
	assert.Equal(boolPtr(false), h.Edible)
	assert.True(h.OpenPractice)
	assert.Nil(h.ReferenceID)

	t.Run("unknown tri-state stays unknown", func(t *testing.T) {
		it, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Sage"})
		require.NoError(t, err)
		got, err := cat.GetItem(ctx, it.ID)
		require.NoError(t, err)
		h, _ := got.Herb()
		assert.Nil(h.Consumable)
		assert.Nil(h.Edible)
		assert.False(h.OpenPractice)
	})
}

func TestCreateHerbErrors(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	missingRef := int64(7)
	tests := []struct {
		name       string
		categoryID int64
		attrs      catalog.HerbAttrs
		code       gn.ErrorCode
	}{
		{"empty name", herbs.ID, catalog.HerbAttrs{Name: " "},
			errcode.ValidationError},
		{"missing category", 99, catalog.HerbAttrs{Name: "Mint"},
			errcode.NotFoundError},
		{"missing reference", herbs.ID,
			catalog.HerbAttrs{Name: "Mint", ReferenceID: &missingRef},
			errcode.NotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cat.CreateHerb(ctx, tt.categoryID, tt.attrs)
			assert.Equal(t, tt.code, catalog.Code(err))
		})
	}

	t.Run("failed writes do not leave rows", func(t *testing.T) {
		items, err := cat.ListItems(ctx, herbs.ID)
		require.NoError(t, err)
		assert.Empty(t, items)

		it, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), it.ID)
	})

	t.Run("primary citation", func(t *testing.T) {
		ref, err := cat.CreateReference(ctx, "p. 12")
		require.NoError(t, err)
		it, err := cat.CreateHerb(ctx, herbs.ID,
			catalog.HerbAttrs{Name: "Thyme", ReferenceID: &ref.ID})
		require.NoError(t, err)
		h, _ := it.Herb()
		assert.Equal(t, ref.ID, *h.ReferenceID)
	})
}

func TestGetItemErrors(t *testing.T) {
	ctx := context.Background()
	cat, op := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	_, err = cat.GetItem(ctx, 1)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	gdb := op.DB()
	require.NoError(t, gdb.Create(&schema.Item{
		ID: 100, CategoryID: herbs.ID, Kind: "mineral",
	}).Error)
	require.NoError(t, gdb.Create(&schema.Item{
		ID: 101, CategoryID: herbs.ID, Kind: "herb",
	}).Error)

	t.Run("unknown kind", func(t *testing.T) {
		_, err := cat.GetItem(ctx, 100)
		assert.Equal(t, errcode.CorruptDataError, catalog.Code(err))
	})

	t.Run("missing concrete record", func(t *testing.T) {
		_, err := cat.GetItem(ctx, 101)
		assert.Equal(t, errcode.CorruptDataError, catalog.Code(err))
	})

	t.Run("listing fails too", func(t *testing.T) {
		_, err := cat.ListItems(ctx, herbs.ID)
		assert.Equal(t, errcode.CorruptDataError, catalog.Code(err))
	})
}

func TestUpdateHerb(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	it, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{
		Name:         "Mint",
		Consumable:   boolPtr(true),
		OpenPractice: true,
	})
	require.NoError(t, err)

	upd, err := cat.UpdateHerb(ctx, it.ID, catalog.HerbAttrs{
		Name:        "Salvia officinalis L.",
		Information: "Sage",
	})
	require.NoError(t, err)
	assert.Equal(t, herbs.ID, upd.CategoryID)

	got, err := cat.GetItem(ctx, it.ID)
	require.NoError(t, err)
	h, _ := got.Herb()
	assert.Equal(t, "Salvia officinalis L.", h.Name)
	assert.Equal(t, "Salvia officinalis", h.Canonical)
	assert.Equal(t, "Sage", h.Information)
	assert.Nil(t, h.Consumable)
	assert.False(t, h.OpenPractice)

	_, err = cat.UpdateHerb(ctx, 99, catalog.HerbAttrs{Name: "Mint"})
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	_, err = cat.UpdateHerb(ctx, it.ID, catalog.HerbAttrs{})
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	teas, err := cat.CreateCategory(ctx, "Teas", "")
	require.NoError(t, err)

	for _, v := range []string{"Mint", "Sage", "Thyme"} {
		_, err = cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: v})
		require.NoError(t, err)
	}
	_, err = cat.CreateHerb(ctx, teas.ID, catalog.HerbAttrs{Name: "Chamomile"})
	require.NoError(t, err)

	items, err := cat.ListItems(ctx, herbs.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, v := range []string{"Mint", "Sage", "Thyme"} {
		h, ok := items[i].Herb()
		require.True(t, ok)
		assert.Equal(t, v, h.Name)
		assert.Equal(t, int64(i+1), items[i].ID)
	}

	_, err = cat.ListItems(ctx, 42)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
}

func TestFindItems(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	mint, err := cat.CreateHerb(ctx, herbs.ID,
		catalog.HerbAttrs{Name: "Mentha piperita L."})
	require.NoError(t, err)
	_, err = cat.AttachAlias(ctx, mint.ID, "Peppermint")
	require.NoError(t, err)
	sage, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Sage"})
	require.NoError(t, err)
	_, err = cat.AttachAlias(ctx, sage.ID, "Salvia officinalis L.")
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		ids   []int64
	}{
		{"exact name", "Mentha piperita L.", []int64{mint.ID}},
		{"canonical form", "Mentha piperita", []int64{mint.ID}},
		{"other author", "Mentha piperita Huds.", []int64{mint.ID}},
		{"alias", "Peppermint", []int64{mint.ID}},
		{"alias canonical", "Salvia officinalis", []int64{sage.ID}},
		{"plain name", "Sage", []int64{sage.ID}},
		{"nothing", "Thyme", []int64{}},
		{"empty", "  ", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := cat.FindItems(ctx, tt.query)
			require.NoError(t, err)
			ids := make([]int64, len(items))
			for i := range items {
				ids[i] = items[i].ID
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	it, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
	require.NoError(t, err)
	alias, err := cat.AttachAlias(ctx, it.ID, "Mentha")
	require.NoError(t, err)
	comp, err := cat.AttachChemicalComponent(ctx, it.ID, "Menthol", "major")
	require.NoError(t, err)
	eff, err := cat.AttachEffect(ctx, it.ID, "Cooling")
	require.NoError(t, err)
	ref, err := cat.AttachReference(ctx, it.ID, "p. 5")
	require.NoError(t, err)

	err = cat.DeleteItem(ctx, it.ID)
	assert.Equal(t, errcode.ReferentialIntegrityError, catalog.Code(err))

	// nothing changed after the failed delete
	got, err := cat.GetItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)
	aliases, err := cat.ListAliases(ctx, it.ID)
	require.NoError(t, err)
	assert.Len(t, aliases, 1)

	require.NoError(t, cat.DetachAlias(ctx, alias.Alias))
	require.NoError(t, cat.DetachChemicalComponent(ctx, comp.ID))
	require.NoError(t, cat.DetachEffect(ctx, eff.ID))

	err = cat.DeleteItem(ctx, it.ID)
	assert.Equal(t, errcode.ReferentialIntegrityError, catalog.Code(err),
		"attached citation still blocks delete")

	require.NoError(t, cat.DetachReference(ctx, ref.ID))
	require.NoError(t, cat.DeleteItem(ctx, it.ID))

	_, err = cat.GetItem(ctx, it.ID)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	views, err := cat.GetItemsByCategory(ctx, herbs.ID)
	require.NoError(t, err)
	assert.Empty(t, views)

	effects, err := cat.ListEffects(ctx, it.ID)
	require.NoError(t, err)
	assert.NotNil(t, effects)
	assert.Empty(t, effects)

	err = cat.DeleteItem(ctx, it.ID)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	t.Run("ids are not reused", func(t *testing.T) {
		next, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Sage"})
		require.NoError(t, err)
		assert.Equal(t, it.ID+1, next.ID)
	})
}

func TestPurgeItem(t *testing.T) {
	ctx := context.Background()
	cat, op := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	it, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
	require.NoError(t, err)
	_, err = cat.AttachAlias(ctx, it.ID, "Mentha")
	require.NoError(t, err)
	_, err = cat.AttachChemicalComponent(ctx, it.ID, "Menthol", "")
	require.NoError(t, err)
	_, err = cat.AttachEffect(ctx, it.ID, "Cooling")
	require.NoError(t, err)
	ref, err := cat.AttachReference(ctx, it.ID, "p. 5")
	require.NoError(t, err)

	require.NoError(t, cat.PurgeItem(ctx, it.ID))

	_, err = cat.GetItem(ctx, it.ID)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	aliases, err := cat.ListAliases(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, aliases)
	comps, err := cat.ListChemicalComponents(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, comps)
	refs, err := cat.ListReferences(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)

	ok, err := cat.Validate(ctx, "references", ref.ID)
	require.NoError(t, err)
	assert.True(t, ok, "citation survives purge")

	var herbRows int64
	require.NoError(t, op.DB().Model(&schema.Herb{}).Count(&herbRows).Error)
	assert.Zero(t, herbRows)

	t.Run("alias is free again", func(t *testing.T) {
		other, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Spearmint"})
		require.NoError(t, err)
		_, err = cat.AttachAlias(ctx, other.ID, "Mentha")
		assert.NoError(t, err)
	})

	err = cat.PurgeItem(ctx, it.ID)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
}

func TestStoreRejectsBypassingDeletes(t *testing.T) {
	ctx := context.Background()
	cat, op := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	it, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
	require.NoError(t, err)
	_, err = cat.AttachEffect(ctx, it.ID, "Cooling")
	require.NoError(t, err)

	err = op.DB().Exec("DELETE FROM categories WHERE id = ?", herbs.ID).Error
	assert.Error(t, err)

	err = op.DB().Exec("DELETE FROM effects WHERE item_id = ?", it.ID).Error
	require.NoError(t, err)
	err = op.DB().Exec("DELETE FROM items WHERE id = ?", it.ID).Error
	assert.Error(t, err, "herb record still points to the item")
}
