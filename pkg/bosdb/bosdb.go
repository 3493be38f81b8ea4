// Package bosdb declares the contracts of the catalog store. Impure
// implementations live in internal/ packages, consumers (CLI, HTTP,
// import) depend only on these interfaces.
package bosdb

import (
	"context"

	"github.com/gnames/bosdb/pkg/catalog"
)

// SchemaManager creates and updates the catalog schema.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates all tables that do not exist yet and seeds the
	// default categories.
	Create(ctx context.Context) error

	// Migrate updates existing tables to the current models.
	Migrate(ctx context.Context) error

	// Reset drops all tables and creates them again. Callers must get
	// an explicit confirmation before calling it.
	Reset(ctx context.Context) error
}

// Categories manages the category registry.
type Categories interface {
	// CreateCategory adds a new category. The name cannot be blank.
	CreateCategory(ctx context.Context, name, note string) (catalog.Category, error)

	// EnsureCategory returns the first category with the given name,
	// creating it if it does not exist.
	EnsureCategory(ctx context.Context, name, note string) (catalog.Category, error)

	// GetCategory returns a category or NotFoundError.
	GetCategory(ctx context.Context, id int64) (catalog.Category, error)

	// ListCategories returns all categories ordered by id.
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

// Items manages polymorphic items. Every write is a single
// transaction, so a base record never exists without its concrete
// record.
type Items interface {
	CreateHerb(ctx context.Context, categoryID int64, h catalog.HerbAttrs) (catalog.Item, error)
	UpdateHerb(ctx context.Context, id int64, h catalog.HerbAttrs) (catalog.Item, error)

	// GetItem reads the base record and dispatches on its kind.
	// Unknown kinds and missing concrete records are CorruptDataError.
	GetItem(ctx context.Context, id int64) (catalog.Item, error)

	// ListItems returns items of all kinds in a category ordered by id.
	ListItems(ctx context.Context, categoryID int64) ([]catalog.Item, error)

	// FindItems returns items whose name, alias or their canonical
	// forms match the given name.
	FindItems(ctx context.Context, name string) ([]catalog.Item, error)

	// DeleteItem removes an item that has no satellites left. It
	// returns ReferentialIntegrityError otherwise.
	DeleteItem(ctx context.Context, id int64) error

	// PurgeItem removes satellites of an item and the item itself in
	// one transaction. Attached citations are detached, not deleted.
	PurgeItem(ctx context.Context, id int64) error
}

// Satellites manages one-to-many attachments of items.
type Satellites interface {
	AttachAlias(ctx context.Context, herbID int64, alias string) (catalog.Alias, error)
	ListAliases(ctx context.Context, herbID int64) ([]catalog.Alias, error)
	DetachAlias(ctx context.Context, alias string) error

	AttachChemicalComponent(ctx context.Context, herbID int64, name, rank string) (catalog.ChemicalComponent, error)
	ListChemicalComponents(ctx context.Context, herbID int64) ([]catalog.ChemicalComponent, error)
	DetachChemicalComponent(ctx context.Context, id int64) error

	AttachEffect(ctx context.Context, itemID int64, effect string) (catalog.Effect, error)
	ListEffects(ctx context.Context, itemID int64) ([]catalog.Effect, error)
	DetachEffect(ctx context.Context, id int64) error

	AttachReference(ctx context.Context, itemID int64, location string) (catalog.Reference, error)
	ListReferences(ctx context.Context, itemID int64) ([]catalog.Reference, error)
	DetachReference(ctx context.Context, id int64) error
}

// Bibliography manages citations, their metadata and authors.
type Bibliography interface {
	CreateReference(ctx context.Context, location string) (catalog.Reference, error)
	AttachInfo(ctx context.Context, refID int64, info catalog.ReferenceInfo) (catalog.ReferenceInfo, error)
	AddAuthor(ctx context.Context, infoID int64, name string) (catalog.Author, error)
}

// Recipes manages category-scoped recipes.
type Recipes interface {
	// CreateRecipe stores a recipe together with its steps.
	CreateRecipe(ctx context.Context, categoryID int64, name, information string, steps []catalog.RecipeStep) (catalog.Recipe, error)
	AddRecipeStep(ctx context.Context, recipeID int64, stepNumber int, text string) (catalog.RecipeStep, error)
}

// Vocabulary manages category-scoped vocabulary terms.
type Vocabulary interface {
	CreateVocab(ctx context.Context, categoryID int64, term, definition string, refID *int64) (catalog.Vocab, error)
}

// Query is the read-only façade used by the HTTP API.
type Query interface {
	GetCategories(ctx context.Context) ([]catalog.CategoryView, error)

	// GetItemsByCategory returns NotFoundError only if the category
	// does not exist.
	GetItemsByCategory(ctx context.Context, categoryID int64) ([]catalog.ItemView, error)
	GetVocabularyByCategory(ctx context.Context, categoryID int64) ([]catalog.VocabView, error)
	GetRecipesByCategory(ctx context.Context, categoryID int64) ([]catalog.RecipeView, error)
	GetAllReferenceInfo(ctx context.Context) ([]catalog.ReferenceInfoView, error)
}

// Catalog is the complete read/write contract of the store.
type Catalog interface {
	Categories
	Items
	Satellites
	Bibliography
	Recipes
	Vocabulary
	Query
	Maintenance

	// Validate reports if a row with the id exists in the table.
	Validate(ctx context.Context, table string, id int64) (bool, error)
}

// Maintenance keeps derived data and storage in good shape.
type Maintenance interface {
	// Reparse recomputes canonical forms of herb names and aliases with
	// the current name parser. Only changed rows are written.
	Reparse(ctx context.Context) (ReparseStats, error)

	// Vacuum reclaims unused storage and refreshes planner statistics.
	Vacuum(ctx context.Context) error
}

// ReparseStats summarizes a finished reparse.
type ReparseStats struct {
	Herbs   int
	Aliases int
	Updated int
}

// ImportStats summarizes a finished import.
type ImportStats struct {
	Categories int
	Items      int
	Satellites int
	References int
	Recipes    int
	Vocabulary int
}

// Importer loads catalog records from a file.
type Importer interface {
	Import(ctx context.Context, path string) (ImportStats, error)
}
