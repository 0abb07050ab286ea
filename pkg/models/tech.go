package models

// TechCategory classifies a detected technology.
type TechCategory string

// String implements fmt.Stringer for toon serialization.
func (c TechCategory) String() string {
	return string(c)
}

const (
	CategoryFramework      TechCategory = "framework"
	CategoryLibrary        TechCategory = "library"
	CategoryLanguage       TechCategory = "language"
	CategoryTool           TechCategory = "tool"
	CategoryDatabase       TechCategory = "database"
	CategoryService        TechCategory = "service"
	CategoryBuild          TechCategory = "build"
	CategoryTesting        TechCategory = "testing"
	CategoryStyling        TechCategory = "styling"
	CategoryInfrastructure TechCategory = "infrastructure"
	CategoryCICD           TechCategory = "cicd"
)

// TechCategories returns every valid category in a stable order.
func TechCategories() []TechCategory {
	return []TechCategory{
		CategoryFramework,
		CategoryLibrary,
		CategoryLanguage,
		CategoryTool,
		CategoryDatabase,
		CategoryService,
		CategoryBuild,
		CategoryTesting,
		CategoryStyling,
		CategoryInfrastructure,
		CategoryCICD,
	}
}

// ValidTechCategory reports whether c is one of the enumerated categories.
func ValidTechCategory(c TechCategory) bool {
	for _, v := range TechCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// TechStackItem represents one detected technology.
type TechStackItem struct {
	Name        string       `json:"name" toon:"name"`
	Category    TechCategory `json:"category" toon:"category"`
	Version     string       `json:"version,omitempty" toon:"version,omitempty"`
	Description string       `json:"description" toon:"description"`
	Confidence  float64      `json:"confidence" toon:"confidence"`
	Usage       string       `json:"usage,omitempty" toon:"usage,omitempty"`
}

// Key returns the (name, category) identity used for deduplication.
// No two items in a final result share a key.
func (t TechStackItem) Key() string {
	return t.Name + "/" + string(t.Category)
}
