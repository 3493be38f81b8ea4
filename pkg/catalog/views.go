package catalog

// CategoryView is the listing projection of a category.
type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemView is an item with its concrete fields flattened and all its
// satellites nested. Satellite slices are never nil, so they marshal
// to empty JSON arrays.
type ItemView struct {
	ID         int64 `json:"id"`
	CategoryID int64 `json:"category_id"`
	Kind       Kind  `json:"kind"`

	*HerbAttrs

	Aliases            []AliasView     `json:"aliases"`
	ChemicalComponents []ComponentView `json:"chemical_components"`
	References         []ReferenceView `json:"references"`
	Effects            []EffectView    `json:"effects"`
}

type AliasView struct {
	Alias string `json:"alias"`
}

type ComponentView struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
}

type ReferenceView struct {
	RefID    int64  `json:"refID"`
	Location string `json:"location"`
}

type EffectView struct {
	Effect string `json:"effect"`
}

// VocabView is the listing projection of a vocabulary term.
type VocabView struct {
	ID         int64  `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	RefID      *int64 `json:"ref_id"`
}

// RecipeView is a recipe with steps ordered by step number.
type RecipeView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Information string     `json:"information"`
	Steps       []StepView `json:"steps"`
}

type StepView struct {
	StepNumber int    `json:"step_number"`
	StepText   string `json:"step_text"`
}

// ReferenceInfoView is bibliographic metadata with nested authors.
type ReferenceInfoView struct {
	ID       int64        `json:"id"`
	Category string       `json:"category"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Year     string       `json:"year"`
	Authors  []AuthorView `json:"authors"`
}

type AuthorView struct {
	Name string `json:"name"`
}

// NewItemView creates a view of an item with empty satellite lists.
func NewItemView(it Item) ItemView {
	res := ItemView{
		ID:                 it.ID,
		CategoryID:         it.CategoryID,
		Kind:               it.Kind,
		Aliases:            []AliasView{},
		ChemicalComponents: []ComponentView{},
		References:         []ReferenceView{},
		Effects:            []EffectView{},
	}
	if h, ok := it.Herb(); ok {
		res.HerbAttrs = &h
	}
	return res
}
