package iocatalog

import (
	"cmp"
	"context"
	"slices"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"gorm.io/gorm"
)

// CreateRecipe stores a recipe and its steps in one transaction.
// Steps are returned ordered by step number.
func (s *store) CreateRecipe(
	ctx context.Context,
	categoryID int64,
	name, information string,
	steps []catalog.RecipeStep,
) (catalog.Recipe, error) {
	var res catalog.Recipe
	name, err := catalog.RequireText("recipe name", name)
	if err != nil {
		return res, err
	}
	information = catalog.Clean(information)

	texts := make([]string, len(steps))
	for i, v := range steps {
		if texts[i], err = catalog.RequireText("step text", v.StepText); err != nil {
			return res, err
		}
	}

	err = s.write(ctx, "create recipe", func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.Category{}, "categories", categoryID)
		if err != nil {
			return err
		}
		id, err := s.allocate(tx, "recipes")
		if err != nil {
			return err
		}
		row := schema.Recipe{
			ID:          id,
			CategoryID:  categoryID,
			Name:        name,
			Information: information,
		}
		if err = tx.Create(&row).Error; err != nil {
			return err
		}

		res = catalog.Recipe{
			ID:          row.ID,
			CategoryID:  row.CategoryID,
			Name:        row.Name,
			Information: row.Information,
			Steps:       make([]catalog.RecipeStep, 0, len(steps)),
		}
		for i, v := range steps {
			step, err := s.addStep(tx, id, v.StepNumber, texts[i])
			if err != nil {
				return err
			}
			res.Steps = append(res.Steps, step)
		}
		sortSteps(res.Steps)
		return nil
	})
	return res, err
}

func (s *store) AddRecipeStep(
	ctx context.Context,
	recipeID int64,
	stepNumber int,
	text string,
) (catalog.RecipeStep, error) {
	var res catalog.RecipeStep
	text, err := catalog.RequireText("step text", text)
	if err != nil {
		return res, err
	}

	err = s.write(ctx, "add recipe step", func(tx *gorm.DB) error {
		err := mustExist(tx, &schema.Recipe{}, "recipes", recipeID)
		if err != nil {
			return err
		}
		res, err = s.addStep(tx, recipeID, stepNumber, text)
		return err
	})
	return res, err
}

func (s *store) addStep(
	tx *gorm.DB,
	recipeID int64,
	stepNumber int,
	text string,
) (catalog.RecipeStep, error) {
	id, err := s.allocate(tx, "recipe_steps")
	if err != nil {
		return catalog.RecipeStep{}, err
	}
	row := schema.RecipeStep{
		ID:         id,
		RecipeID:   recipeID,
		StepNumber: stepNumber,
		StepText:   text,
	}
	if err = tx.Create(&row).Error; err != nil {
		return catalog.RecipeStep{}, err
	}
	return catalog.RecipeStep{
		ID:         row.ID,
		RecipeID:   row.RecipeID,
		StepNumber: row.StepNumber,
		StepText:   row.StepText,
	}, nil
}

// sortSteps orders steps by step number, ties by id.
func sortSteps(steps []catalog.RecipeStep) {
	slices.SortFunc(steps, func(a, b catalog.RecipeStep) int {
		return cmp.Or(
			cmp.Compare(a.StepNumber, b.StepNumber),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
