package iocatalog_test

import (
	"context"
	"testing"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipes(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	teas, err := cat.CreateCategory(ctx, "Teas", "")
	require.NoError(t, err)

	rec, err := cat.CreateRecipe(ctx, teas.ID, "Mint tea", "Simple infusion",
		[]catalog.RecipeStep{
			{StepNumber: 30, StepText: "Strain"},
			{StepNumber: 10, StepText: "Boil water"},
			{StepNumber: 20, StepText: "Steep leaves"},
		})
	require.NoError(t, err)
	require.Len(t, rec.Steps, 3)
	assert.Equal(t, "Boil water", rec.Steps[0].StepText)

	_, err = cat.AddRecipeStep(ctx, rec.ID, 15, "Warm the cup")
	require.NoError(t, err)
	_, err = cat.AddRecipeStep(ctx, rec.ID, 30, "Serve")
	require.NoError(t, err)

	views, err := cat.GetRecipesByCategory(ctx, teas.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mint tea", views[0].Name)
	assert.Equal(t, "Simple infusion", views[0].Information)
	assert.Equal(t, []catalog.StepView{
		{StepNumber: 10, StepText: "Boil water"},
		{StepNumber: 15, StepText: "Warm the cup"},
		{StepNumber: 20, StepText: "Steep leaves"},
		{StepNumber: 30, StepText: "Strain"},
		{StepNumber: 30, StepText: "Serve"},
	}, views[0].Steps)

	t.Run("recipe without steps", func(t *testing.T) {
		_, err := cat.CreateRecipe(ctx, teas.ID, "Cold brew", "", nil)
		require.NoError(t, err)
		views, err := cat.GetRecipesByCategory(ctx, teas.ID)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, []catalog.StepView{}, views[1].Steps)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := cat.CreateRecipe(ctx, 99, "Tea", "", nil)
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

		_, err = cat.CreateRecipe(ctx, teas.ID, "", "", nil)
		assert.Equal(t, errcode.ValidationError, catalog.Code(err))

		_, err = cat.CreateRecipe(ctx, teas.ID, "Tea", "",
			[]catalog.RecipeStep{{StepNumber: 1}})
		assert.Equal(t, errcode.ValidationError, catalog.Code(err))

		_, err = cat.AddRecipeStep(ctx, 99, 1, "Boil")
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

		_, err = cat.GetRecipesByCategory(ctx, 99)
		assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	})
}

func TestVocabulary(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	herbs, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	ref, err := cat.CreateReference(ctx, "Glossary, p. 3")
	require.NoError(t, err)

	v1, err := cat.CreateVocab(ctx, herbs.ID, "Infusion",
		"Steeping in hot water", &ref.ID)
	require.NoError(t, err)
	_, err = cat.CreateVocab(ctx, herbs.ID, "Decoction", "Boiling", nil)
	require.NoError(t, err)

	views, err := cat.GetVocabularyByCategory(ctx, herbs.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, catalog.VocabView{
		ID:         v1.ID,
		Term:       "Infusion",
		Definition: "Steeping in hot water",
		RefID:      &ref.ID,
	}, views[0])
	assert.Nil(t, views[1].RefID)

	missing := int64(99)
	_, err = cat.CreateVocab(ctx, herbs.ID, "Tincture", "", &missing)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))
	_, err = cat.CreateVocab(ctx, herbs.ID, "", "", nil)
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))
	_, err = cat.GetVocabularyByCategory(ctx, 99)
	assert.Equal(t, errcode.NotFoundError, catalog.Code(err))

	teas, err := cat.CreateCategory(ctx, "Teas", "")
	require.NoError(t, err)
	views, err = cat.GetVocabularyByCategory(ctx, teas.ID)
	require.NoError(t, err)
	assert.Equal(t, []catalog.VocabView{}, views)
}
