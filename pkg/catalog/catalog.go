// Package catalog contains the entities of the bosdb catalog and the
// kind registry that maps a base item discriminator to its concrete
// attribute set. This is a pure package, storage lives in
// internal/iocatalog.
package catalog

import "slices"

// Kind is the discriminator of a base item.
type Kind string

// KindHerb marks items with herb attributes.
const KindHerb Kind = "herb"

// kindTables registers every concrete kind with the table that keeps
// its fields. A discriminator that is not in this map is corrupt data.
var kindTables = map[Kind]string{
	KindHerb: "herbs",
}

// ParseKind returns the registered Kind for a stored discriminator.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := kindTables[k]
	return k, ok
}

// Table returns the name of the table with kind-specific fields.
func (k Kind) Table() string {
	return kindTables[k]
}

// Kinds returns all registered kinds sorted alphabetically.
func Kinds() []Kind {
	res := make([]Kind, 0, len(kindTables))
	for k := range kindTables {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Attributes is a set of kind-specific fields of an item.
type Attributes interface {
	Kind() Kind
}

// HerbAttrs are the fields of a herb.
type HerbAttrs struct {
	// Name of the herb, required.
	Name string `json:"name"`

	// ReferenceID is an optional primary citation, distinct from the
	// citations attached to the item as satellites.
	ReferenceID *int64 `json:"id_reference"`

	// Canonical is the botanical canonical form of Name. It is computed
	// on write and is empty when Name is not a scientific name.
	Canonical string `json:"canonical,omitempty"`

	// CanonicalID is UUID v5 of Canonical.
	CanonicalID string `json:"canonical_id,omitempty"`

	Appearance  string `json:"appearance"`
	Information string `json:"information"`

	// Consumable and Edible are tri-state, nil means unknown.
	Consumable *bool `json:"consumable"`
	Edible     *bool `json:"edible"`

	OpenPractice bool   `json:"open_practice"`
	Reason       string `json:"reason"`
}

// Kind implements Attributes.
func (HerbAttrs) Kind() Kind {
	return KindHerb
}

// Item is a base item together with its concrete attributes.
type Item struct {
	ID         int64      `json:"id"`
	CategoryID int64      `json:"category_id"`
	Kind       Kind       `json:"kind"`
	Attrs      Attributes `json:"-"`
}

// Herb returns herb attributes of the item, if the item is a herb.
func (it Item) Herb() (HerbAttrs, bool) {
	switch a := it.Attrs.(type) {
	case HerbAttrs:
		return a, true
	case *HerbAttrs:
		if a != nil {
			return *a, true
		}
	}
	return HerbAttrs{}, false
}

// Category is a top-level grouping.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// Alias is an alternative name of a herb, unique across the catalog.
type Alias struct {
	Alias     string `json:"alias"`
	HerbID    int64  `json:"herb_id"`
	Canonical string `json:"canonical,omitempty"`
}

// ChemicalComponent is a constituent of a herb.
type ChemicalComponent struct {
	ID     int64  `json:"id"`
	HerbID int64  `json:"herb_id"`
	Name   string `json:"name"`
	Rank   string `json:"rank"`
}

// Effect is an effect of an item of any kind.
type Effect struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"item_id"`
	Effect string `json:"effect"`
}

// Reference is a citation. ItemID is nil for citations that are not
// attached to an item.
type Reference struct {
	ID       int64  `json:"id"`
	ItemID   *int64 `json:"item_id"`
	Location string `json:"location"`
}

// ReferenceInfo is bibliographic metadata of a citation.
type ReferenceInfo struct {
	ID       int64  `json:"id"`
	RefID    int64  `json:"ref_id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Year     string `json:"year"`
}

// Author of a bibliographic record.
type Author struct {
	ID              int64  `json:"id"`
	ReferenceInfoID int64  `json:"reference_info_id"`
	Name            string `json:"name"`
}

// Recipe is a category-scoped recipe with its steps.
type Recipe struct {
	ID          int64        `json:"id"`
	CategoryID  int64        `json:"category_id"`
	Name        string       `json:"name"`
	Information string       `json:"information"`
	Steps       []RecipeStep `json:"steps"`
}

// RecipeStep is a step of a recipe.
type RecipeStep struct {
	ID         int64  `json:"id"`
	RecipeID   int64  `json:"recipe_id"`
	StepNumber int    `json:"step_number"`
	StepText   string `json:"step_text"`
}

// Vocab is a category-scoped vocabulary term.
type Vocab struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	RefID      *int64 `json:"ref_id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}
