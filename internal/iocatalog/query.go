package iocatalog

import (
	"context"
	"slices"

	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/schema"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func (s *store) GetCategories(
	ctx context.Context,
) ([]catalog.CategoryView, error) {
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]catalog.CategoryView, len(cats))
	for i, v := range cats {
		res[i] = catalog.CategoryView{ID: v.ID, Name: v.Name}
	}
	return res, nil
}

// GetItemsByCategory assembles views of all items in a category. Each
// satellite table is read with one query for the whole category, the
// queries run concurrently.
func (s *store) GetItemsByCategory(
	ctx context.Context,
	categoryID int64,
) ([]catalog.ItemView, error) {
	items, err := s.ListItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []catalog.ItemView{}, nil
	}

	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	var (
		aliases    []schema.Alias
		components []schema.ChemicalComponent
		refs       []schema.Reference
		effects    []schema.Effect
	)
	g, ctx := errgroup.WithContext(ctx)
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	g.Go(func() (err error) {
		aliases, err = loadIn[schema.Alias](gdb, "herb_id", ids, "alias")
		return err
	})
	g.Go(func() (err error) {
		components, err = loadIn[schema.ChemicalComponent](gdb, "herb_id", ids, "id")
		return err
	})
	g.Go(func() (err error) {
		refs, err = loadIn[schema.Reference](gdb, "item_id", ids, "id")
		return err
	})
	g.Go(func() (err error) {
		effects, err = loadIn[schema.Effect](gdb, "item_id", ids, "id")
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, wrap("get items by category", err)
	}

	views := make([]catalog.ItemView, len(items))
	idx := make(map[int64]*catalog.ItemView, len(items))
	for i := range items {
		views[i] = catalog.NewItemView(items[i])
		idx[items[i].ID] = &views[i]
	}
	for _, v := range aliases {
		view := idx[v.HerbID]
		view.Aliases = append(view.Aliases, catalog.AliasView{Alias: v.Alias})
	}
	for _, v := range components {
		view := idx[v.HerbID]
		view.ChemicalComponents = append(view.ChemicalComponents,
			catalog.ComponentView{Name: v.Name, Rank: v.Rank})
	}
	for _, v := range refs {
		view := idx[*v.ItemID]
		view.References = append(view.References,
			catalog.ReferenceView{RefID: v.ID, Location: v.Location})
	}
	for _, v := range effects {
		view := idx[v.ItemID]
		view.Effects = append(view.Effects,
			catalog.EffectView{Effect: v.Effect})
	}
	return views, nil
}

// idsPerQuery keeps IN lists far below the bound parameter limits of
// SQLite (32766) and PostgreSQL (65535).
const idsPerQuery = 1000

// loadIn reads rows whose column value is one of ids. Ids are sent in
// chunks, rows of one owner always come from the same chunk, so their
// order is kept.
func loadIn[T any](
	gdb *gorm.DB,
	column string,
	ids []int64,
	order string,
) ([]T, error) {
	var res []T
	for chunk := range slices.Chunk(ids, idsPerQuery) {
		var rows []T
		err := gdb.Where(column+" IN ?", chunk).Order(order).Find(&rows).Error
		if err != nil {
			return nil, err
		}
		res = append(res, rows...)
	}
	return res, nil
}

func (s *store) GetVocabularyByCategory(
	ctx context.Context,
	categoryID int64,
) ([]catalog.VocabView, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	err = mustExist(gdb, &schema.Category{}, "categories", categoryID)
	if err != nil {
		return nil, wrap("get vocabulary", err)
	}

	var rows []schema.Vocab
	err = gdb.Where("category_id = ?", categoryID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, wrap("get vocabulary", err)
	}

	res := make([]catalog.VocabView, len(rows))
	for i, v := range rows {
		res[i] = catalog.VocabView{
			ID:         v.ID,
			Term:       v.Term,
			Definition: v.Definition,
			RefID:      v.RefID,
		}
	}
	return res, nil
}

// GetRecipesByCategory returns recipes with steps ordered by step
// number, steps with the same number are ordered by id.
func (s *store) GetRecipesByCategory(
	ctx context.Context,
	categoryID int64,
) ([]catalog.RecipeView, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	err = mustExist(gdb, &schema.Category{}, "categories", categoryID)
	if err != nil {
		return nil, wrap("get recipes", err)
	}

	var recipes []schema.Recipe
	err = gdb.Where("category_id = ?", categoryID).Order("id").Find(&recipes).Error
	if err != nil {
		return nil, wrap("get recipes", err)
	}
	if len(recipes) == 0 {
		return []catalog.RecipeView{}, nil
	}

	ids := make([]int64, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	steps, err := loadIn[schema.RecipeStep](gdb, "recipe_id", ids, "step_number, id")
	if err != nil {
		return nil, wrap("get recipes", err)
	}

	res := make([]catalog.RecipeView, len(recipes))
	idx := make(map[int64]*catalog.RecipeView, len(recipes))
	for i, v := range recipes {
		res[i] = catalog.RecipeView{
			ID:          v.ID,
			Name:        v.Name,
			Information: v.Information,
			Steps:       []catalog.StepView{},
		}
		idx[v.ID] = &res[i]
	}
	for _, v := range steps {
		view := idx[v.RecipeID]
		view.Steps = append(view.Steps,
			catalog.StepView{StepNumber: v.StepNumber, StepText: v.StepText})
	}
	return res, nil
}

// GetAllReferenceInfo returns all bibliographic records with their
// authors ordered by id.
func (s *store) GetAllReferenceInfo(
	ctx context.Context,
) ([]catalog.ReferenceInfoView, error) {
	gdb, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var infos []schema.ReferenceInfo
	if err = gdb.Order("id").Find(&infos).Error; err != nil {
		return nil, wrap("get references", err)
	}
	if len(infos) == 0 {
		return []catalog.ReferenceInfoView{}, nil
	}

	ids := make([]int64, len(infos))
	for i := range infos {
		ids[i] = infos[i].ID
	}
	authors, err := loadIn[schema.Author](gdb, "reference_info_id", ids, "id")
	if err != nil {
		return nil, wrap("get references", err)
	}

	res := make([]catalog.ReferenceInfoView, len(infos))
	idx := make(map[int64]*catalog.ReferenceInfoView, len(infos))
	for i, v := range infos {
		res[i] = catalog.ReferenceInfoView{
			ID:       v.ID,
			Category: v.Category,
			Title:    v.Title,
			Subtitle: v.Subtitle,
			Year:     v.Year,
			Authors:  []catalog.AuthorView{},
		}
		idx[v.ID] = &res[i]
	}
	for _, v := range authors {
		view := idx[v.ReferenceInfoID]
		view.Authors = append(view.Authors, catalog.AuthorView{Name: v.Name})
	}
	return res, nil
}
