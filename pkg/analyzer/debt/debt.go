// Package debt aggregates technical debt signals: comment markers from
// source samples plus findings contributed by the sibling analyzers.
package debt

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"assay/pkg/analyzer/deps"
	"assay/pkg/analyzer/readme"
	"assay/pkg/analyzer/scan"
	"assay/pkg/analyzer/structure"
	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// manySourceFiles is the file count above which an absent test dir is
// high rather than medium severity.
const manySourceFiles = 20

// Inputs carries the sibling outputs the debt analyzer composes with
// its own marker scan.
type Inputs struct {
	Security    []models.Finding
	Performance []models.Finding
	Deps        *deps.Report
	Readme      *readme.Report
	Structure   *structure.Report
}

// Category is one debt category present in the repository.
type Category struct {
	Name     string           `json:"name" toon:"name"`
	Severity models.Severity  `json:"severity" toon:"severity"`
	Count    int              `json:"count" toon:"count"`
	Findings []models.Finding `json:"findings" toon:"findings"`
}

// Report is the technical debt sub-report.
type Report struct {
	Categories       []Category           `json:"categories" toon:"categories"`
	OverallLevel     models.Severity      `json:"overall_level" toon:"overall_level"`
	MaintenanceScore models.CategoryScore `json:"maintenance_score" toon:"maintenance_score"`
	Markers          []models.Finding     `json:"markers" toon:"markers"`
	DistinctLines    map[string]int       `json:"distinct_lines" toon:"distinct_lines"`
}

// Default returns the degraded report for an empty snapshot: no
// categories, full maintenance score.
func Default() *Report {
	return &Report{
		Categories:       []Category{},
		OverallLevel:     models.SeverityLow,
		MaintenanceScore: models.NewCategoryScore(100),
		Markers:          []models.Finding{},
		DistinctLines:    map[string]int{},
	}
}

type markerPattern struct {
	regex *regexp.Regexp
	rule  rules.MarkerRule
}

// Analyzer scans for debt markers and folds sibling signals into
// categorized debt.
type Analyzer struct {
	patterns []markerPattern
}

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithRules sets the marker rule table.
func WithRules(t *rules.Table) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.patterns = compileMarkers(t.Markers)
		}
	}
}

// New creates a debt analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{patterns: compileMarkers(rules.Default().Markers)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func compileMarkers(markers []rules.MarkerRule) []markerPattern {
	patterns := make([]markerPattern, 0, len(markers))
	for _, m := range markers {
		patterns = append(patterns, markerPattern{
			regex: regexp.MustCompile(`\b` + m.Marker + `\b`),
			rule:  m,
		})
	}
	return patterns
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// Analyze scans source artifacts for debt markers and merges the prior
// findings into the fixed category set.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.Snapshot, in Inputs) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}

	report := Default()
	byCategory := map[string][]models.Finding{}

	report.Markers = a.scanMarkers(snap)
	for _, f := range report.Markers {
		cat := markerCategory(a.patterns, f)
		byCategory[cat] = append(byCategory[cat], f)
	}

	for _, f := range in.Security {
		byCategory[rules.DebtSecurity] = append(byCategory[rules.DebtSecurity], f)
	}
	for _, f := range in.Performance {
		byCategory[rules.DebtPerformance] = append(byCategory[rules.DebtPerformance], f)
	}
	if in.Deps != nil {
		for _, dup := range in.Deps.Duplicates {
			byCategory[rules.DebtOutdatedDeps] = append(byCategory[rules.DebtOutdatedDeps], models.NewFinding(
				"duplicate-dependency",
				models.SeverityMedium,
				models.Location{Path: "package.json"},
				fmt.Sprintf("%s declared in %s with versions %s",
					dup.Name, strings.Join(dup.Scopes, " and "), strings.Join(dup.Versions, ", ")),
				"align the declarations on one version range",
			))
		}
	}
	if f, ok := documentationDebt(in.Readme); ok {
		byCategory[rules.DebtDocumentation] = append(byCategory[rules.DebtDocumentation], f)
	}
	if f, ok := missingTestsDebt(in.Structure, snap); ok {
		byCategory[rules.DebtMissingTests] = append(byCategory[rules.DebtMissingTests], f)
	}

	for _, name := range categoryOrder() {
		findings := byCategory[name]
		if len(findings) == 0 {
			continue
		}
		scan.Sort(findings)
		sev := models.SeverityLow
		for _, f := range findings {
			sev = models.MaxSeverity(sev, f.Severity)
		}
		report.Categories = append(report.Categories, Category{
			Name:     name,
			Severity: sev,
			Count:    len(findings),
			Findings: findings,
		})
	}

	report.OverallLevel = overallLevel(report.Categories)
	report.MaintenanceScore = maintenanceScore(report.Categories)
	report.DistinctLines = distinctLines(report.Categories)
	return report, nil
}

func categoryOrder() []string {
	return []string{
		rules.DebtCodeSmells,
		rules.DebtOutdatedDeps,
		rules.DebtMissingTests,
		rules.DebtDocumentation,
		rules.DebtSecurity,
		rules.DebtPerformance,
	}
}

var commentPrefixes = []string{"//", "#", "/*", "*", "<!--", "--"}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return strings.Contains(trimmed, "//") || strings.Contains(trimmed, "*/")
}

// scanMarkers finds debt comment markers in source artifacts. One
// finding per line at most; the first matching marker wins.
func (a *Analyzer) scanMarkers(snap *snapshot.Snapshot) []models.Finding {
	findings := []models.Finding{}
	for _, art := range snap.ArtifactsOfKind(snapshot.KindSource) {
		if art.Content == nil {
			continue
		}
		lineNum := 0
		scanner := bufio.NewScanner(bytes.NewReader(art.Content))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			if !isCommentLine(line) {
				continue
			}
			for _, pat := range a.patterns {
				if !pat.regex.MatchString(line) {
					continue
				}
				findings = append(findings, models.NewFinding(
					strings.ToLower(pat.rule.Marker),
					pat.rule.Severity,
					models.Location{Path: art.Path, Line: lineNum},
					strings.TrimSpace(line),
					"",
				))
				break
			}
		}
	}
	scan.Sort(findings)
	return findings
}

// markerCategory maps a marker finding back to its debt category.
func markerCategory(patterns []markerPattern, f models.Finding) string {
	for _, pat := range patterns {
		if strings.EqualFold(pat.rule.Marker, f.Type) {
			return pat.rule.Category
		}
	}
	return rules.DebtCodeSmells
}

// documentationDebt derives a finding from the README quality tier.
func documentationDebt(r *readme.Report) (models.Finding, bool) {
	if r == nil {
		return models.Finding{}, false
	}
	var sev models.Severity
	var desc string
	switch r.Quality {
	case readme.TierMissing:
		sev, desc = models.SeverityHigh, "no README present"
	case readme.TierPoor:
		sev, desc = models.SeverityMedium, "README lacks sections and detail"
	case readme.TierBasic:
		sev, desc = models.SeverityLow, "README covers only the basics"
	default:
		return models.Finding{}, false
	}
	return models.NewFinding(
		"documentation-gap",
		sev,
		models.Location{Path: "README.md"},
		desc,
		"document installation, usage and API sections",
	), true
}

// missingTestsDebt derives a finding when the tree has no test
// directory. Larger codebases escalate to high severity.
func missingTestsDebt(s *structure.Report, snap *snapshot.Snapshot) (models.Finding, bool) {
	if s == nil || s.HasTestDir {
		return models.Finding{}, false
	}
	sourceFiles := len(snap.ArtifactsOfKind(snapshot.KindSource))
	sev := models.SeverityMedium
	if sourceFiles > manySourceFiles {
		sev = models.SeverityHigh
	}
	return models.NewFinding(
		"missing-tests",
		sev,
		models.Location{Path: "."},
		fmt.Sprintf("no test directory found across %d source files", sourceFiles),
		"add a test suite under a canonical test directory",
	), true
}

// overallLevel classifies the repository debt level from the category
// severities.
func overallLevel(categories []Category) models.Severity {
	high := 0
	for _, c := range categories {
		switch c.Severity {
		case models.SeverityCritical:
			return models.SeverityCritical
		case models.SeverityHigh:
			high++
		}
	}
	if high > 2 {
		return models.SeverityHigh
	}
	if len(categories) > 3 {
		return models.SeverityMedium
	}
	return models.SeverityLow
}

// severity penalties per present category
const (
	penaltyCritical = 30
	penaltyHigh     = 20
	penaltyMedium   = 10
	penaltyLow      = 5
)

func maintenanceScore(categories []Category) models.CategoryScore {
	score := models.NewCategoryScore(100)
	total := 0
	for _, c := range categories {
		p := penaltyLow
		switch c.Severity {
		case models.SeverityCritical:
			p = penaltyCritical
		case models.SeverityHigh:
			p = penaltyHigh
		case models.SeverityMedium:
			p = penaltyMedium
		}
		score.SetComponent(c.Name, -p)
		total += p
	}
	score.Value = models.Clamp(100-total, 0, 100)
	return score
}

// distinctLines counts the distinct flagged lines per file across all
// categories, so overlapping findings are not double counted.
func distinctLines(categories []Category) map[string]int {
	bitmaps := map[string]*roaring.Bitmap{}
	for _, c := range categories {
		for _, f := range c.Findings {
			if f.Location.Line <= 0 {
				continue
			}
			bm, ok := bitmaps[f.Location.Path]
			if !ok {
				bm = roaring.New()
				bitmaps[f.Location.Path] = bm
			}
			bm.Add(uint32(f.Location.Line))
		}
	}
	out := make(map[string]int, len(bitmaps))
	for path, bm := range bitmaps {
		out[path] = int(bm.GetCardinality())
	}
	return out
}
