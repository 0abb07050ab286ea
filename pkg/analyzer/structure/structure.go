// Package structure evaluates repository layout: organization score,
// architecture patterns from directory evidence and tree shape
// statistics.
package structure

import (
	"context"
	"sort"
	"strings"

	"assay/pkg/analyzer"
	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
	"assay/pkg/stats"
)

// Report is the code structure sub-report.
type Report struct {
	Organization models.CategoryScore `json:"organization" toon:"organization"`
	HasSourceDir bool                 `json:"has_source_dir" toon:"has_source_dir"`
	HasTestDir   bool                 `json:"has_test_dir" toon:"has_test_dir"`
	HasDocsDir   bool                 `json:"has_docs_dir" toon:"has_docs_dir"`
	RootFiles    int                  `json:"root_files" toon:"root_files"`
	Patterns     []Pattern            `json:"patterns" toon:"patterns"`
	Stats        TreeStats            `json:"stats" toon:"stats"`
}

// Pattern is one detected architecture pattern with its evidence.
type Pattern struct {
	Name        string   `json:"name" toon:"name"`
	Confidence  int      `json:"confidence" toon:"confidence"`
	Description string   `json:"description" toon:"description"`
	Evidence    []string `json:"evidence" toon:"evidence"`
}

// TreeStats describes the shape of the file tree. Descriptive only; it
// never feeds the organization score.
type TreeStats struct {
	MaxDepth          int     `json:"max_depth" toon:"max_depth"`
	Dirs              int     `json:"dirs" toon:"dirs"`
	Files             int     `json:"files" toon:"files"`
	MeanFilesPerDir   float64 `json:"mean_files_per_dir" toon:"mean_files_per_dir"`
	StdDevFilesPerDir float64 `json:"stddev_files_per_dir" toon:"stddev_files_per_dir"`
}

// Default returns the degraded report for an empty tree: the base
// organization score with no bonuses.
func Default() *Report {
	score := models.NewCategoryScore(baseScore)
	score.SetComponent("base", baseScore)
	return &Report{Organization: score, Patterns: []Pattern{}}
}

const (
	baseScore     = 50
	sourceBonus   = 20
	testBonus     = 15
	docsBonus     = 10
	tidyRootBonus = 5
	tidyRootLimit = 10
)

// Analyzer evaluates repository layout.
type Analyzer struct {
	rules *rules.Table
}

var _ analyzer.SnapshotAnalyzer[*Report] = (*Analyzer)(nil)

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithRules sets the layout and pattern rule table.
func WithRules(t *rules.Table) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.rules = t
		}
	}
}

// New creates a structure analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{rules: rules.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// Analyze scores the tree layout. Only tree entries are consulted;
// no artifact content is read.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.Snapshot) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}
	if len(snap.Tree()) == 0 {
		return Default(), nil
	}

	report := Default()
	report.HasSourceDir = hasAnyDir(snap, a.rules.Layout.SourceDirs)
	report.HasTestDir = hasAnyDir(snap, a.rules.Layout.TestDirs)
	report.HasDocsDir = hasAnyDir(snap, a.rules.Layout.DocsDirs)
	for _, e := range snap.TopLevel() {
		if e.Type == snapshot.EntryFile {
			report.RootFiles++
		}
	}

	score := baseScore
	if report.HasSourceDir {
		score += sourceBonus
		report.Organization.SetComponent("source_dir", sourceBonus)
	}
	if report.HasTestDir {
		score += testBonus
		report.Organization.SetComponent("test_dir", testBonus)
	}
	if report.HasDocsDir {
		score += docsBonus
		report.Organization.SetComponent("docs_dir", docsBonus)
	}
	if report.RootFiles < tidyRootLimit {
		score += tidyRootBonus
		report.Organization.SetComponent("tidy_root", tidyRootBonus)
	}
	report.Organization.Value = models.Clamp(score, 0, 100)

	report.Patterns = a.matchPatterns(snap)
	report.Stats = treeStats(snap)
	return report, nil
}

func hasAnyDir(snap *snapshot.Snapshot, names []string) bool {
	for _, name := range names {
		if snap.HasDir(name) {
			return true
		}
	}
	return false
}

// matchPatterns applies the architecture rules against the directory
// names present anywhere in the tree.
func (a *Analyzer) matchPatterns(snap *snapshot.Snapshot) []Pattern {
	patterns := []Pattern{}
	for _, rule := range a.rules.Patterns {
		var evidence []string
		for _, dir := range rule.Dirs {
			if snap.HasDir(dir) {
				evidence = append(evidence, dir+"/")
			}
		}
		if len(evidence) < rule.MinMatches {
			continue
		}
		patterns = append(patterns, Pattern{
			Name:        rule.Name,
			Confidence:  models.Clamp(rule.Confidence, 0, 100),
			Description: rule.Description,
			Evidence:    evidence,
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Confidence != patterns[j].Confidence {
			return patterns[i].Confidence > patterns[j].Confidence
		}
		return patterns[i].Name < patterns[j].Name
	})
	return patterns
}

func treeStats(snap *snapshot.Snapshot) TreeStats {
	ts := TreeStats{}
	perDir := map[string]float64{}
	for _, e := range snap.Tree() {
		depth := strings.Count(e.Path, "/") + 1
		if depth > ts.MaxDepth {
			ts.MaxDepth = depth
		}
		switch e.Type {
		case snapshot.EntryDir:
			ts.Dirs++
		case snapshot.EntryFile:
			ts.Files++
			dir := "."
			if i := strings.LastIndex(e.Path, "/"); i >= 0 {
				dir = e.Path[:i]
			}
			perDir[dir]++
		}
	}
	counts := make([]float64, 0, len(perDir))
	for _, dir := range sortedDirs(perDir) {
		counts = append(counts, perDir[dir])
	}
	ts.MeanFilesPerDir = stats.Mean(counts)
	ts.StdDevFilesPerDir = stats.StdDev(counts)
	return ts
}

func sortedDirs(perDir map[string]float64) []string {
	dirs := make([]string, 0, len(perDir))
	for d := range perDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}
