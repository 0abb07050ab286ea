// Package readme scores README documentation quality from section
// coverage, length and markdown structure.
package readme

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strings"

	"assay/pkg/analyzer"
	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// Quality tiers, ordered best to worst.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierBasic     = "basic"
	TierPoor      = "poor"
	TierMissing   = "missing"
)

// Report is the README sub-report.
type Report struct {
	Present        bool            `json:"present" toon:"present"`
	Path           string          `json:"path,omitempty" toon:"path,omitempty"`
	Quality        string          `json:"quality" toon:"quality"`
	Score          int             `json:"score" toon:"score"`
	Sections       map[string]bool `json:"sections" toon:"sections"`
	WordCount      int             `json:"word_count" toon:"word_count"`
	Headings       int             `json:"headings" toon:"headings"`
	ListItems      int             `json:"list_items" toon:"list_items"`
	CodeBlocks     int             `json:"code_blocks" toon:"code_blocks"`
	StructureScore int             `json:"structure_score" toon:"structure_score"`
}

// Default returns the degraded report used when no README is present.
func Default() *Report {
	return &Report{Quality: TierMissing, Sections: map[string]bool{}}
}

// Analyzer scores README quality.
type Analyzer struct {
	rules *rules.Table
}

var _ analyzer.SnapshotAnalyzer[*Report] = (*Analyzer)(nil)

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithRules sets the section rule table.
func WithRules(t *rules.Table) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.rules = t
		}
	}
}

// New creates a README analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{rules: rules.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// Analyze scores the first README artifact found, in filename priority
// order.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.Snapshot) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}

	var content []byte
	var found string
	for _, name := range snapshot.ReadmeNames() {
		if data := snap.Artifact(name); data != nil {
			content, found = data, name
			break
		}
	}
	if content == nil {
		return Default(), nil
	}

	report := &Report{Present: true, Path: found, Sections: map[string]bool{}}
	a.countStructure(content, report)
	a.matchSections(content, report)

	// Structure: headings weigh 10, list items 2, fenced blocks 5,
	// capped at 100.
	report.StructureScore = models.Clamp(report.Headings*10+report.ListItems*2+report.CodeBlocks*5, 0, 100)

	sectionCount := 0
	for _, present := range report.Sections {
		if present {
			sectionCount++
		}
	}
	sectionScore := models.Clamp(sectionCount*20, 0, 100)
	wordScore := models.Clamp(report.WordCount/10, 0, 100)

	// Blend against the maximum attainable 100 + 50 + 30.
	blend := float64(sectionScore) + 0.5*float64(wordScore) + 0.3*float64(report.StructureScore)
	report.Score = models.Clamp(int(blend/180*100+0.5), 0, 100)

	switch {
	case report.Score >= 80:
		report.Quality = TierExcellent
	case report.Score >= 60:
		report.Quality = TierGood
	case report.Score >= 30:
		report.Quality = TierBasic
	default:
		report.Quality = TierPoor
	}
	return report, nil
}

var (
	atxHeading    = regexp.MustCompile(`^#{1,6}\s+\S`)
	setextHeading = regexp.MustCompile(`^(={3,}|-{3,})\s*$`)
	listItem      = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\S`)
	fenceLine     = regexp.MustCompile("^\\s*(```|~~~)")
)

// countStructure walks the document line by line, counting headings,
// list items, fenced code blocks and words. Lines inside fences count
// toward nothing but the block itself.
func (a *Analyzer) countStructure(content []byte, report *Report) {
	inFence := false
	prevText := false

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if fenceLine.MatchString(line) {
			if !inFence {
				report.CodeBlocks++
			}
			inFence = !inFence
			prevText = false
			continue
		}
		if inFence {
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case atxHeading.MatchString(trimmed):
			report.Headings++
			prevText = false
		case setextHeading.MatchString(trimmed) && prevText:
			report.Headings++
			prevText = false
		case listItem.MatchString(line):
			report.ListItems++
			report.WordCount += len(strings.Fields(trimmed))
			prevText = false
		default:
			report.WordCount += len(strings.Fields(trimmed))
			prevText = trimmed != ""
		}
	}
}

// matchSections applies the section rules: heading patterns against
// heading lines, body patterns against the whole document.
func (a *Analyzer) matchSections(content []byte, report *Report) {
	var headings []string
	inFence := false
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if fenceLine.MatchString(line) {
			inFence = !inFence
			continue
		}
		if !inFence && atxHeading.MatchString(line) {
			headings = append(headings, strings.TrimLeft(line, "# "))
		}
	}

	doc := string(content)
	for _, rule := range a.rules.Sections {
		present := false
		if rule.Heading != nil {
			for _, h := range headings {
				if rule.Heading.MatchString(h) {
					present = true
					break
				}
			}
		}
		if !present && rule.Body != nil {
			present = rule.Body.MatchString(doc)
		}
		report.Sections[rule.Name] = present
	}
}
