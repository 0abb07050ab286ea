package techstack

import "assay/pkg/models"

// Report is the technology stack sub-report.
type Report struct {
	Items     []models.TechStackItem `json:"items" toon:"items"`
	Languages []string               `json:"languages" toon:"languages"`
	Summary   Summary                `json:"summary" toon:"summary"`
}

// Summary aggregates detection counts.
type Summary struct {
	Total      int            `json:"total" toon:"total"`
	ByCategory map[string]int `json:"by_category" toon:"by_category"`
}

// NewSummary creates a summary with initialized maps.
func NewSummary() Summary {
	return Summary{ByCategory: make(map[string]int)}
}

// Default returns the degraded report used when no manifest artifact is
// present: an empty item set, never nil.
func Default() *Report {
	return &Report{
		Items:     []models.TechStackItem{},
		Languages: []string{},
		Summary:   NewSummary(),
	}
}
