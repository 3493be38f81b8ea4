// Package schema provides database schema models for bosdb.
// Every table except aliases and identities carries an allocator-issued
// integer id; cross-table links are explicit foreign keys declared
// through belongs-to associations so that AutoMigrate creates the
// constraints.
package schema

// Identity keeps the last identity handed out for a table.
type Identity struct {
	// Name is the table the counter belongs to.
	Name string `gorm:"primaryKey"`

	// LastID is the largest id allocated so far. Ids are never reused,
	// even after rows are deleted.
	LastID int64 `gorm:"not null;default:0"`
}

// Category is a top-level grouping of items, recipes and vocabulary.
type Category struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false"`

	// Name of the category, for example "Herbs".
	Name string `gorm:"not null"`

	// Note is an optional description.
	Note string
}

// Item is the base record of every catalog item. Kind is the
// discriminator that selects the table with kind-specific fields.
type Item struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64  `gorm:"not null;index"`
	Kind       string `gorm:"not null;index"`

	Category *Category `gorm:"constraint:OnDelete:RESTRICT"`

	// Herb is declared on this side so that the constraint is placed on
	// herbs.id and points to items.id.
	Herb *Herb `gorm:"foreignKey:ID;references:ID;constraint:OnDelete:RESTRICT"`
}

// Herb holds herb-specific fields. Its ID is the ID of the base Item.
type Herb struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false"`

	// ReferenceID is an optional primary citation of the herb.
	ReferenceID *int64 `gorm:"index"`

	// Name as given by the author of the record.
	Name string `gorm:"not null;index"`

	// Canonical is the botanical canonical form of Name, empty if Name
	// is not a scientific name.
	Canonical string `gorm:"index"`

	// CanonicalID is UUID v5 of Canonical.
	CanonicalID string

	Appearance  string
	Information string

	// Consumable and Edible are tri-state: NULL means unknown.
	Consumable *bool
	Edible     *bool

	OpenPractice bool `gorm:"not null;default:false"`

	// Reason explains restricted or open status.
	Reason string

	Reference *Reference `gorm:"foreignKey:ReferenceID;constraint:OnDelete:RESTRICT"`
}

// Alias is an alternative name of a herb. Alias strings are unique
// across the whole catalog.
type Alias struct {
	Alias  string `gorm:"primaryKey"`
	HerbID int64  `gorm:"not null;index"`

	// Canonical is the botanical canonical form of the alias, if any.
	Canonical string `gorm:"index"`

	Herb *Herb `gorm:"constraint:OnDelete:RESTRICT"`
}

// TableName sets the table name for aliases.
func (Alias) TableName() string {
	return "aliases"
}

// ChemicalComponent is a chemical constituent of a herb.
type ChemicalComponent struct {
	ID     int64 `gorm:"primaryKey;autoIncrement:false"`
	HerbID int64 `gorm:"not null;index"`
	Name   string
	Rank   string

	Herb *Herb `gorm:"constraint:OnDelete:RESTRICT"`
}

// Effect describes an effect of an item of any kind.
type Effect struct {
	ID     int64 `gorm:"primaryKey;autoIncrement:false"`
	ItemID int64 `gorm:"not null;index"`
	Effect string

	Item *Item `gorm:"constraint:OnDelete:RESTRICT"`
}

// Reference is a citation. ItemID is set when the citation is attached
// to an item as a satellite, standalone citations leave it NULL.
type Reference struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false"`
	ItemID   *int64 `gorm:"index"`
	Location string

	Item *Item `gorm:"constraint:OnDelete:RESTRICT"`
}

// ReferenceInfo keeps bibliographic metadata of a citation.
type ReferenceInfo struct {
	ID       int64 `gorm:"primaryKey;autoIncrement:false"`
	RefID    int64 `gorm:"not null;index"`
	Category string
	Title    string
	Subtitle string
	Year     string

	Reference *Reference `gorm:"foreignKey:RefID;constraint:OnDelete:RESTRICT"`
}

// TableName sets the table name for reference metadata.
func (ReferenceInfo) TableName() string {
	return "reference_info"
}

// Author is an author of a bibliographic record.
type Author struct {
	ID              int64 `gorm:"primaryKey;autoIncrement:false"`
	ReferenceInfoID int64 `gorm:"not null;index"`
	Name            string

	ReferenceInfo *ReferenceInfo `gorm:"constraint:OnDelete:RESTRICT"`
}

// Recipe is a category-scoped recipe.
type Recipe struct {
	ID          int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID  int64 `gorm:"not null;index"`
	Name        string
	Information string

	Category *Category `gorm:"constraint:OnDelete:RESTRICT"`
}

// RecipeStep is one step of a recipe. StepNumber defines display order
// and does not have to be contiguous.
type RecipeStep struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	RecipeID   int64 `gorm:"not null;index"`
	StepNumber int
	StepText   string

	Recipe *Recipe `gorm:"constraint:OnDelete:RESTRICT"`
}

// Vocab is a category-scoped vocabulary term.
type Vocab struct {
	ID         int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"not null;index"`
	RefID      *int64
	Term       string
	Definition string

	Category  *Category  `gorm:"constraint:OnDelete:RESTRICT"`
	Reference *Reference `gorm:"foreignKey:RefID;constraint:OnDelete:RESTRICT"`
}

// TableName sets the table name for vocabulary terms.
func (Vocab) TableName() string {
	return "vocabulary"
}
