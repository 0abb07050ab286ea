// Package performance flags likely bottlenecks in source samples:
// blocking I/O, sequential awaits, unbounded reads and tight polling.
package performance

import (
	"context"

	"assay/pkg/analyzer"
	"assay/pkg/analyzer/scan"
	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// Report is the performance sub-report.
type Report struct {
	Score    models.CategoryScore `json:"score" toon:"score"`
	Findings []models.Finding     `json:"findings" toon:"findings"`
	Summary  scan.Summary         `json:"summary" toon:"summary"`
}

// Default returns the degraded report used when no source artifacts
// are present.
func Default() *Report {
	return &Report{
		Score:    models.NewCategoryScore(100),
		Findings: []models.Finding{},
		Summary:  scan.Summarize(nil),
	}
}

// Analyzer scans source artifacts for performance hazards.
type Analyzer struct {
	rules *rules.Table
}

var _ analyzer.SnapshotAnalyzer[*Report] = (*Analyzer)(nil)

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithRules sets the scan rule table.
func WithRules(t *rules.Table) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.rules = t
		}
	}
}

// New creates a performance analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{rules: rules.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// Analyze runs the performance rule set over every source artifact.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.Snapshot) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}
	findings := scan.Run(ctx, snap, a.rules.Performance)
	return &Report{
		Score:    scan.Score(findings),
		Findings: findings,
		Summary:  scan.Summarize(findings),
	}, nil
}
