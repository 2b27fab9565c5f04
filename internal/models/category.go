package models

// Category is a three-tier category assignment, from broad domain (Tier1)
// through subcategory (Tier2) down to the specific label (Tier3).
type Category struct {
	Tier1 string `yaml:"tier1" csv:"category_tier1"`
	Tier2 string `yaml:"tier2" csv:"category_tier2"`
	Tier3 string `yaml:"tier3" csv:"category_tier3"`
}

// Default categories produced by the engine itself.
var (
	// CategoryUncategorized is the terminal fallback when no detection method,
	// rule, or AI classification produced a result.
	CategoryUncategorized = Category{
		Tier1: "Uncategorized",
		Tier2: "Needs Review",
		Tier3: "Unknown Transaction",
	}

	// CategoryInternalTransfer is the default category for transfers between
	// the user's own accounts. Overridable via configuration.
	CategoryInternalTransfer = Category{
		Tier1: "Transfers",
		Tier2: "Internal Transfer",
		Tier3: "Between Own Accounts",
	}
)

// IsZero returns true when no tier is set.
func (c Category) IsZero() bool {
	return c.Tier1 == "" && c.Tier2 == "" && c.Tier3 == ""
}

// String renders the category as "Tier1 > Tier2 > Tier3".
func (c Category) String() string {
	return c.Tier1 + " > " + c.Tier2 + " > " + c.Tier3
}

// Tier2Group is a subcategory together with its leaf labels.
type Tier2Group struct {
	Tier2 string   `yaml:"tier2"`
	Tier3 []string `yaml:"tier3"`
}

// Tier1Group is a broad category together with its subcategories.
type Tier1Group struct {
	Tier1 string       `yaml:"tier1"`
	Tier2 []Tier2Group `yaml:"tier2_categories"`
}

// Taxonomy is the ordered three-level category forest. Order is preserved
// from the source so prompt context stays stable between reloads.
type Taxonomy []Tier1Group
