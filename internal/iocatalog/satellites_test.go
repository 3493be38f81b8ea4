package iocatalog_test

import (
	"context"
	"testing"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliases(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	mint, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
	require.NoError(t, err)
	sage, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Sage"})
	require.NoError(t, err)

	a, err := cat.AttachAlias(ctx, mint.ID, " Mentha piperita L. ")
	require.NoError(t, err)
	assert.Equal(t, catalog.Alias{
		Alias:     "Mentha piperita L.",
		HerbID:    mint.ID,
		Canonical: "Mentha piperita",
	}, a)

	t.Run("duplicate alias", func(t *testing.T) {
		_, err := cat.AttachAlias(ctx, sage.ID, "Mentha piperita L.")
		assert.Equal(t, errcode.DuplicateAliasError, catalog.Code(err))

		_, err = cat.AttachAlias(ctx, mint.ID, "Mentha piperita L.")
		assert.Equal(t, errcode.DuplicateAliasError, catalog.Code(err))

		aliases, err := cat.ListAliases(ctx, mint.ID)
		require.NoError(t, err)
		assert.Equal(t, []catalog.Alias{a}, aliases)

		aliases, err = cat.ListAliases(ctx, sage.ID)
		require.NoError(t, err)
		assert.Empty(t, aliases)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := cat.AttachAlias(ctx, 99, "Salvia")
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

		_, err = cat.AttachAlias(ctx, sage.ID, "")
		assert.Equal(t, errcode.ValidationError, catalog.Code(err))

		err = cat.DetachAlias(ctx, "Salvia")
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	})

	t.Run("list is sorted", func(t *testing.T) {
		for _, v := range []string{"Salvia", "Garden sage", "Common sage"} {
			_, err := cat.AttachAlias(ctx, sage.ID, v)
			require.NoError(t, err)
		}
		aliases, err := cat.ListAliases(ctx, sage.ID)
		require.NoError(t, err)
		var names []string
		for _, v := range aliases {
			names = append(names, v.Alias)
		}
		assert.Equal(t, []string{"Common sage", "Garden sage", "Salvia"}, names)
	})

	t.Run("detach", func(t *testing.T) {
		require.NoError(t, cat.DetachAlias(ctx, "Salvia"))
		err := cat.DetachAlias(ctx, "Salvia")
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	})
}

func TestChemicalComponents(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	mint, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
	require.NoError(t, err)

	comps, err := cat.ListChemicalComponents(ctx, mint.ID)
	require.NoError(t, err)
	assert.NotNil(t, comps)
	assert.Empty(t, comps)

	c1, err := cat.AttachChemicalComponent(ctx, mint.ID, "Menthol", "major")
	require.NoError(t, err)
	c2, err := cat.AttachChemicalComponent(ctx, mint.ID, "Menthone", "")
	require.NoError(t, err)
	assert.Greater(t, c2.ID, c1.ID)

	comps, err = cat.ListChemicalComponents(ctx, mint.ID)
	require.NoError(t, err)
	assert.Equal(t, []catalog.ChemicalComponent{c1, c2}, comps)

	_, err = cat.AttachChemicalComponent(ctx, mint.ID, " ", "minor")
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))
	_, err = cat.AttachChemicalComponent(ctx, 99, "Menthol", "")
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	require.NoError(t, cat.DetachChemicalComponent(ctx, c1.ID))
	err = cat.DetachChemicalComponent(ctx, c1.ID)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
}

func TestEffectsAndReferences(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	mint, err := cat.CreateHerb(ctx, herbs.ID, catalog.HerbAttrs{Name: "Mint"})
	require.NoError(t, err)

	eff, err := cat.AttachEffect(ctx, mint.ID, "Cooling")
	require.NoError(t, err)
	effects, err := cat.ListEffects(ctx, mint.ID)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Effect{eff}, effects)

	_, err = cat.AttachEffect(ctx, 99, "Cooling")
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	_, err = cat.AttachEffect(ctx, mint.ID, "")
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))

	ref, err := cat.AttachReference(ctx, mint.ID, "p. 42")
	require.NoError(t, err)
	require.NotNil(t, ref.ItemID)
	assert.Equal(t, mint.ID, *ref.ItemID)

	refs, err := cat.ListReferences(ctx, mint.ID)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Reference{ref}, refs)

	_, err = cat.AttachReference(ctx, 99, "p. 1")
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	t.Run("detached citation stays in bibliography", func(t *testing.T) {
		require.NoError(t, cat.DetachReference(ctx, ref.ID))

		refs, err := cat.ListReferences(ctx, mint.ID)
		require.NoError(t, err)
		assert.Empty(t, refs)

		ok, err := cat.Validate(ctx, "references", ref.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		err = cat.DetachReference(ctx, ref.ID)
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	})

	t.Run("standalone citation cannot be detached", func(t *testing.T) {
		ref, err := cat.CreateReference(ctx, "Herbal, 1597")
		require.NoError(t, err)
		assert.Nil(t, ref.ItemID)
		err = cat.DetachReference(ctx, ref.ID)
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	})
}

func TestSatellitesNeedHerb(t *testing.T) {
	ctx := context.Background()
	cat, op := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	// an item of a kind without herb fields
	require.NoError(t, op.DB().Exec(
		"INSERT INTO items (id, category_id, kind) VALUES (?, ?, ?)",
		500, herbs.ID, "mineral",
	).Error)

	_, err = cat.AttachAlias(ctx, 500, "Quartz")
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))
	_, err = cat.AttachChemicalComponent(ctx, 500, "SiO2", "")
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))

	_, err = cat.AttachEffect(ctx, 500, "Calming")
	assert.NoError(t, err, "effects accept any kind")
}
