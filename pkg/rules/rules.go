// Package rules holds the data tables driving every detector: technology
// signatures, README section patterns, security and performance scan
// patterns, debt markers and layout conventions. Tables are plain data
// injected into analyzers, never package-level mutable state; new
// ecosystems are added by appending rows, not by branching logic.
package rules

import (
	"regexp"
	"sort"

	"assay/pkg/models"
)

// TechRule describes one detectable technology.
type TechRule struct {
	Name        string              `json:"name" koanf:"name"`
	Category    models.TechCategory `json:"category" koanf:"category"`
	Description string              `json:"description" koanf:"description"`
	Confidence  float64             `json:"confidence" koanf:"confidence"`
}

// SectionRule recognizes one canonical README section.
type SectionRule struct {
	Name    string
	Heading *regexp.Regexp // matched against heading lines
	Body    *regexp.Regexp // matched against the whole document, optional
}

// ScanRule is one line-oriented unsafe-pattern rule.
type ScanRule struct {
	Type        string
	Pattern     *regexp.Regexp
	Allow       *regexp.Regexp // hits also matching Allow are skipped
	Severity    models.Severity
	Description string
	Remediation string
	Exts        []string // applicable file extensions, empty means any
}

// Applies reports whether the rule covers a file with the given extension.
func (r ScanRule) Applies(ext string) bool {
	if len(r.Exts) == 0 {
		return true
	}
	for _, e := range r.Exts {
		if e == ext {
			return true
		}
	}
	return false
}

// MarkerRule maps one debt comment marker to a debt category.
type MarkerRule struct {
	Marker   string
	Category string // debt category the marker feeds
	Severity models.Severity
}

// LayoutRules lists canonical directory-name conventions.
type LayoutRules struct {
	SourceDirs []string
	TestDirs   []string
	DocsDirs   []string
}

// ArchRule detects one architecture pattern from directory evidence.
type ArchRule struct {
	Name        string
	Dirs        []string
	MinMatches  int
	Confidence  int
	Description string
}

// StyleRules names the framework sets the insights analyzer ranks when
// inferring an architecture style.
type StyleRules struct {
	Fullstack []string
	SPA       []string
	API       []string
}

// Table aggregates every rule set. A Table must not be mutated after
// construction; Merge returns a new table so concurrent pipeline runs
// never observe cross-run mutation.
type Table struct {
	Tech        map[string]TechRule
	Sections    []SectionRule
	Security    []ScanRule
	Performance []ScanRule
	Markers     []MarkerRule
	Layout      LayoutRules
	Patterns    []ArchRule
	Styles      StyleRules
}

// Default returns the built-in rule corpus.
func Default() *Table {
	return &Table{
		Tech:        defaultTech(),
		Sections:    defaultSections(),
		Security:    defaultSecurity(),
		Performance: defaultPerformance(),
		Markers:     defaultMarkers(),
		Layout:      defaultLayout(),
		Patterns:    defaultPatterns(),
		Styles:      defaultStyles(),
	}
}

// TechByKey looks up a technology rule by its ecosystem-qualified key,
// e.g. "npm:react" or "file:Dockerfile".
func (t *Table) TechByKey(key string) (TechRule, bool) {
	r, ok := t.Tech[key]
	return r, ok
}

// TechKeys returns every tech rule key in sorted order.
func (t *Table) TechKeys() []string {
	keys := make([]string, 0, len(t.Tech))
	for k := range t.Tech {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new table with custom tech rules layered over the
// receiver. The receiver is left untouched.
func (t *Table) Merge(custom map[string]TechRule) *Table {
	merged := *t
	merged.Tech = make(map[string]TechRule, len(t.Tech)+len(custom))
	for k, v := range t.Tech {
		merged.Tech[k] = v
	}
	for k, v := range custom {
		v.Confidence = models.ClampConfidence(v.Confidence)
		merged.Tech[k] = v
	}
	return &merged
}
