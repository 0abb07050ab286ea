package models

// Scope classifies where a dependency is declared.
type Scope string

// String implements fmt.Stringer for toon serialization.
func (s Scope) String() string {
	return string(s)
}

const (
	ScopeProduction  Scope = "production"
	ScopeDevelopment Scope = "development"
	ScopeOptional    Scope = "optional"
)

// DependencyRecord is one declared dependency, derived once from
// manifest parsing and never mutated afterwards.
type DependencyRecord struct {
	Name        string `json:"name" toon:"name"`
	Version     string `json:"version" toon:"version"`
	Scope       Scope  `json:"scope" toon:"scope"`
	Ecosystem   string `json:"ecosystem,omitempty" toon:"ecosystem,omitempty"`
	Description string `json:"description,omitempty" toon:"description,omitempty"`
}
