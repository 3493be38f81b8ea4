package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
// GORM orders the creation by foreign key dependencies, the order here
// only matters for readability.
func AllModels() []any {
	return []any{
		&Identity{},
		&Category{},
		&Item{},
		&Reference{},
		&Herb{},
		&Alias{},
		&ChemicalComponent{},
		&Effect{},
		&ReferenceInfo{},
		&Author{},
		&Recipe{},
		&RecipeStep{},
		&Vocab{},
	}
}

// TableNames returns the names of all tables of the catalog.
func TableNames() []string {
	return []string{
		"identities",
		"categories",
		"items",
		"references",
		"herbs",
		"aliases",
		"chemical_components",
		"effects",
		"reference_info",
		"authors",
		"recipes",
		"recipe_steps",
		"vocabulary",
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
