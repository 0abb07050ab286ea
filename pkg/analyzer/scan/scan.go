// Package scan is the shared line-oriented pattern engine behind the
// security and performance analyzers.
package scan

import (
	"bufio"
	"bytes"
	"context"
	"path"
	"sort"

	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// maxLineLength skips minified or generated lines that would produce
// noise findings.
const maxLineLength = 2000

// Run applies the rule set to every source artifact, line by line.
// Artifacts are visited in sorted path order and the result is sorted,
// so equal snapshots always yield identical finding lists.
func Run(ctx context.Context, snap *snapshot.Snapshot, ruleSet []rules.ScanRule) []models.Finding {
	findings := []models.Finding{}
	for _, art := range snap.ArtifactsOfKind(snapshot.KindSource) {
		if ctx.Err() != nil {
			break
		}
		if art.Content == nil {
			continue
		}
		findings = append(findings, scanFile(art.Path, art.Content, ruleSet)...)
	}
	Sort(findings)
	return findings
}

func scanFile(filePath string, content []byte, ruleSet []rules.ScanRule) []models.Finding {
	ext := path.Ext(filePath)
	var applicable []rules.ScanRule
	for _, r := range ruleSet {
		if r.Applies(ext) {
			applicable = append(applicable, r)
		}
	}
	if len(applicable) == 0 {
		return nil
	}

	var findings []models.Finding
	lineNum := 0
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) > maxLineLength {
			continue
		}
		for _, r := range applicable {
			if !r.Pattern.MatchString(line) {
				continue
			}
			if r.Allow != nil && r.Allow.MatchString(line) {
				continue
			}
			findings = append(findings, models.NewFinding(
				r.Type,
				r.Severity,
				models.Location{Path: filePath, Line: lineNum},
				r.Description,
				r.Remediation,
			))
		}
	}
	return findings
}

// Sort orders findings by severity (highest first), then path, line
// and type.
func Sort(findings []models.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Weight() != b.Severity.Weight() {
			return a.Severity.Weight() > b.Severity.Weight()
		}
		if a.Location.Path != b.Location.Path {
			return a.Location.Path < b.Location.Path
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		return a.Type < b.Type
	})
}

// Summary aggregates a finding list.
type Summary struct {
	Total      int            `json:"total" toon:"total"`
	ByType     map[string]int `json:"by_type" toon:"by_type"`
	BySeverity map[string]int `json:"by_severity" toon:"by_severity"`
}

// Summarize builds counts over a finding list. Maps are always
// initialized.
func Summarize(findings []models.Finding) Summary {
	s := Summary{
		Total:      len(findings),
		ByType:     make(map[string]int),
		BySeverity: make(map[string]int),
	}
	for _, f := range findings {
		s.ByType[f.Type]++
		s.BySeverity[string(f.Severity)]++
	}
	return s
}

// severity penalties applied per finding
const (
	penaltyCritical = 25
	penaltyHigh     = 15
	penaltyMedium   = 10
	penaltyLow      = 5
)

// Penalty returns the per-finding score deduction for a severity.
func Penalty(sev models.Severity) int {
	switch sev {
	case models.SeverityCritical:
		return penaltyCritical
	case models.SeverityHigh:
		return penaltyHigh
	case models.SeverityMedium:
		return penaltyMedium
	default:
		return penaltyLow
	}
}

// Score converts a finding list into a 0-100 category score: 100 minus
// the summed severity penalties, floored at zero. Per-severity
// deductions are recorded as components.
func Score(findings []models.Finding) models.CategoryScore {
	score := models.NewCategoryScore(100)
	deductions := map[string]int{}
	total := 0
	for _, f := range findings {
		p := Penalty(f.Severity)
		deductions[string(f.Severity)] += p
		total += p
	}
	for sev, d := range deductions {
		score.SetComponent(sev, -d)
	}
	score.Value = models.Clamp(100-total, 0, 100)
	return score
}
