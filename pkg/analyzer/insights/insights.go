// Package insights composes the sibling sub-reports into architecture
// and quality assessments. It performs no scanning of its own.
package insights

import (
	"context"
	"fmt"
	"sort"

	"assay/pkg/analyzer/debt"
	"assay/pkg/analyzer/deps"
	"assay/pkg/analyzer/performance"
	"assay/pkg/analyzer/readme"
	"assay/pkg/analyzer/score"
	"assay/pkg/analyzer/security"
	"assay/pkg/analyzer/structure"
	"assay/pkg/analyzer/techstack"
	"assay/pkg/models"
	"assay/pkg/rules"
)

// Architecture styles, in detection precedence order.
const (
	StyleContainerOrchestrated = "container-orchestrated"
	StyleFullstack             = "fullstack"
	StyleSPA                   = "spa"
	StyleAPIService            = "api-service"
	StyleGeneric               = "generic"
)

// Inputs carries the sibling sub-reports the insights analyzer
// composes. Nil fields degrade to their documented defaults.
type Inputs struct {
	TechStack   *techstack.Report
	Structure   *structure.Report
	Security    *security.Report
	Performance *performance.Report
	Deps        *deps.Report
	Readme      *readme.Report
	Debt        *debt.Report
}

// Assessment is one graded dimension with the drivers behind it.
type Assessment struct {
	Grade   string   `json:"grade" toon:"grade"`
	Score   int      `json:"score" toon:"score"`
	Drivers []string `json:"drivers" toon:"drivers"`
}

// Report is the architecture insights sub-report.
type Report struct {
	Style           string     `json:"style" toon:"style"`
	StyleConfidence int        `json:"style_confidence" toon:"style_confidence"`
	Scalability     Assessment `json:"scalability" toon:"scalability"`
	Security        Assessment `json:"security" toon:"security"`
	Performance     Assessment `json:"performance" toon:"performance"`
	Recommendations []string   `json:"recommendations" toon:"recommendations"`
}

// Default returns the degraded report: generic style with empty
// assessments.
func Default() *Report {
	return &Report{
		Style:           StyleGeneric,
		Scalability:     Assessment{Drivers: []string{}},
		Security:        Assessment{Drivers: []string{}},
		Performance:     Assessment{Drivers: []string{}},
		Recommendations: []string{},
	}
}

// Analyzer derives insights from sibling outputs.
type Analyzer struct {
	rules *rules.Table
}

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithRules sets the style rule table.
func WithRules(t *rules.Table) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.rules = t
		}
	}
}

// New creates an insights analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{rules: rules.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// Analyze composes the sibling sub-reports. Pure and deterministic:
// equal inputs always produce an equal report.
func (a *Analyzer) Analyze(ctx context.Context, in Inputs) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}

	report := Default()
	report.Style, report.StyleConfidence = a.classifyStyle(in.TechStack)
	report.Scalability = scalability(in.Structure)
	report.Security = scanAssessment(securityScan(in.Security))
	report.Performance = scanAssessment(performanceScan(in.Performance))
	report.Recommendations = recommendations(in)
	return report, nil
}

// classifyStyle picks the architecture style with fixed precedence:
// container orchestration beats fullstack beats SPA beats API service.
func (a *Analyzer) classifyStyle(tech *techstack.Report) (string, int) {
	if tech == nil {
		return StyleGeneric, 0
	}
	byName := map[string]models.TechStackItem{}
	for _, item := range tech.Items {
		byName[item.Name] = item
	}

	for _, name := range []string{"Docker Compose", "Helm", "Kubernetes"} {
		if item, ok := byName[name]; ok {
			return StyleContainerOrchestrated, int(item.Confidence * 100)
		}
	}
	for _, name := range a.rules.Styles.Fullstack {
		if item, ok := byName[name]; ok {
			return StyleFullstack, int(item.Confidence * 100)
		}
	}
	for _, name := range a.rules.Styles.SPA {
		if item, ok := byName[name]; ok {
			return StyleSPA, int(item.Confidence * 100)
		}
	}
	for _, name := range a.rules.Styles.API {
		if item, ok := byName[name]; ok {
			return StyleAPIService, int(item.Confidence * 100)
		}
	}
	return StyleGeneric, 0
}

func scalability(s *structure.Report) Assessment {
	if s == nil {
		return Assessment{Drivers: []string{}}
	}
	drivers := []string{}
	for _, p := range s.Patterns {
		drivers = append(drivers, p.Name)
	}
	score := s.Organization.Value
	return Assessment{Grade: Grade(score), Score: score, Drivers: drivers}
}

func securityScan(r *security.Report) (models.CategoryScore, map[string]int) {
	if r == nil {
		return models.NewCategoryScore(100), nil
	}
	return r.Score, r.Summary.ByType
}

func performanceScan(r *performance.Report) (models.CategoryScore, map[string]int) {
	if r == nil {
		return models.NewCategoryScore(100), nil
	}
	return r.Score, r.Summary.ByType
}

func scanAssessment(score models.CategoryScore, byType map[string]int) Assessment {
	drivers := make([]string, 0, len(byType))
	for typ := range byType {
		drivers = append(drivers, typ)
	}
	sort.Strings(drivers)
	return Assessment{Grade: Grade(score.Value), Score: score.Value, Drivers: drivers}
}

func recommendations(in Inputs) []string {
	recs := []string{}
	if in.Readme != nil {
		switch in.Readme.Quality {
		case readme.TierMissing:
			recs = append(recs, "add a README describing installation and usage")
		case readme.TierPoor, readme.TierBasic:
			recs = append(recs, "expand the README with usage examples and an API section")
		}
	}
	if in.Deps != nil {
		for _, script := range in.Deps.MissingScripts {
			recs = append(recs, fmt.Sprintf("declare a %q script in package.json", script))
		}
		if len(in.Deps.Duplicates) > 0 {
			recs = append(recs, "align duplicate dependency declarations on one version")
		}
	}
	if in.Debt != nil {
		for _, c := range in.Debt.Categories {
			if c.Severity == models.SeverityCritical || c.Severity == models.SeverityHigh {
				recs = append(recs, fmt.Sprintf("address %s debt (%d findings, %s)", c.Name, c.Count, c.Severity))
			}
		}
	}
	if in.Structure != nil && !in.Structure.HasTestDir {
		recs = append(recs, "introduce a test directory with automated tests")
	}
	return recs
}

// Grade maps a 0-100 score onto a letter grade, matching the scale the
// score aggregator uses.
func Grade(v int) string {
	return score.Grade(v)
}
