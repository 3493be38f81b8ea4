package ioimport

// catalogFile is the layout of a YAML catalog file. References are
// declared once and referred to by key from herbs and vocabulary.
type catalogFile struct {
	References []referenceRec `yaml:"references"`
	Categories []categoryRec  `yaml:"categories"`
}

type referenceRec struct {
	Key      string    `yaml:"key"`
	Location string    `yaml:"location"`
	Info     []infoRec `yaml:"info"`
}

type infoRec struct {
	Category string   `yaml:"category"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Year     string   `yaml:"year"`
	Authors  []string `yaml:"authors"`
}

type categoryRec struct {
	Name       string      `yaml:"name"`
	Note       string      `yaml:"note"`
	Herbs      []herbRec   `yaml:"herbs"`
	Recipes    []recipeRec `yaml:"recipes"`
	Vocabulary []vocabRec  `yaml:"vocabulary"`
}

type herbRec struct {
	Name         string `yaml:"name"`
	Reference    string `yaml:"reference"`
	Appearance   string `yaml:"appearance"`
	Information  string `yaml:"information"`
	Consumable   *bool  `yaml:"consumable"`
	Edible       *bool  `yaml:"edible"`
	OpenPractice bool   `yaml:"open_practice"`
	Reason       string `yaml:"reason"`

	Aliases            []string       `yaml:"aliases"`
	ChemicalComponents []componentRec `yaml:"chemical_components"`
	Effects            []string       `yaml:"effects"`
	Citations          []string       `yaml:"citations"`
}

type componentRec struct {
	Name string `yaml:"name"`
	Rank string `yaml:"rank"`
}

type recipeRec struct {
	Name        string    `yaml:"name"`
	Information string    `yaml:"information"`
	Steps       []stepRec `yaml:"steps"`
}

type stepRec struct {
	Number int    `yaml:"number"`
	Text   string `yaml:"text"`
}

type vocabRec struct {
	Term       string `yaml:"term"`
	Definition string `yaml:"definition"`
	Reference  string `yaml:"reference"`
}

// size is the number of top-level records, used for progress.
func (f catalogFile) size() int {
	res := len(f.References)
	for _, c := range f.Categories {
		res += 1 + len(c.Herbs) + len(c.Recipes) + len(c.Vocabulary)
	}
	return res
}
