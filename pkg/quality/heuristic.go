package quality

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strings"

	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

var testFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`_test\.go$`),
	regexp.MustCompile(`(?:^|/)test_[^/]*\.py$`),
	regexp.MustCompile(`\.(?:test|spec)\.[jt]sx?$`),
	regexp.MustCompile(`(?:^|/)(?:tests?|__tests__|spec)/`),
	regexp.MustCompile(`Test\.java$`),
	regexp.MustCompile(`_spec\.rb$`),
}

// Heuristic estimates quality metrics from the snapshot itself. Every
// formula is deterministic and documented on the method that computes
// it; the provider never consults anything outside the snapshot.
type Heuristic struct {
	rules *rules.Table
}

// HeuristicOption configures a Heuristic.
type HeuristicOption func(*Heuristic)

// WithRules sets the marker rule table used for smell counting.
func WithRules(t *rules.Table) HeuristicOption {
	return func(h *Heuristic) {
		if t != nil {
			h.rules = t
		}
	}
}

// NewHeuristic creates the built-in estimator.
func NewHeuristic(opts ...HeuristicOption) *Heuristic {
	h := &Heuristic{rules: rules.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements Provider.
func (h *Heuristic) Name() string { return "heuristic" }

// Estimate implements Provider. An empty snapshot is unavailable.
func (h *Heuristic) Estimate(ctx context.Context, snap *snapshot.Snapshot) (Metrics, error) {
	if snap == nil || snap.Empty() {
		return Metrics{}, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		TestCoverage:          h.testCoverage(snap),
		DocumentationCoverage: h.documentationCoverage(snap),
		SmellCount:            h.smellCount(snap),
	}
	m.CyclomaticComplexity, m.DuplicationLevel = h.sizeProxies(snap)

	// Maintainability folds the other signals: complexity and
	// duplication subtract, smells subtract 3 points each.
	m.MaintainabilityIndex = models.ClampFloat(
		100-m.CyclomaticComplexity*2-m.DuplicationLevel*0.3-float64(m.SmellCount)*3, 0, 100)
	return m.Clamp(), nil
}

// testCoverage proxies coverage with the test-file share of the tree:
// ratio of test-pattern files to all files, doubled (a healthy repo
// has roughly one test file per two source files), capped at 100.
func (h *Heuristic) testCoverage(snap *snapshot.Snapshot) float64 {
	files := snap.Files()
	if len(files) == 0 {
		return 0
	}
	testFiles := 0
	for _, f := range files {
		for _, pat := range testFilePatterns {
			if pat.MatchString(f.Path) {
				testFiles++
				break
			}
		}
	}
	return models.ClampFloat(float64(testFiles)/float64(len(files))*200, 0, 100)
}

// documentationCoverage combines README presence (30), a docs
// directory (30) and comment density in the source samples (comment
// lines per total lines, scaled onto the remaining 40).
func (h *Heuristic) documentationCoverage(snap *snapshot.Snapshot) float64 {
	score := 0.0
	for _, name := range snapshot.ReadmeNames() {
		if snap.Has(name) {
			score += 30
			break
		}
	}
	for _, dir := range h.rules.Layout.DocsDirs {
		if snap.HasDir(dir) {
			score += 30
			break
		}
	}

	totalLines, commentLines := 0, 0
	for _, art := range snap.ArtifactsOfKind(snapshot.KindSource) {
		scanner := bufio.NewScanner(bytes.NewReader(art.Content))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			totalLines++
			if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") ||
				strings.HasPrefix(line, "*") || strings.HasPrefix(line, "/*") {
				commentLines++
			}
		}
	}
	if totalLines > 0 {
		// 15% comment density saturates the component.
		density := float64(commentLines) / float64(totalLines)
		score += models.ClampFloat(density/0.15, 0, 1) * 40
	}
	return models.ClampFloat(score, 0, 100)
}

// sizeProxies derives complexity and duplication stand-ins from the
// source size distribution: mean lines per sampled file over 40 lines
// per notional function approximates cyclomatic complexity, and the
// share of files over 400 lines feeds the duplication proxy (large
// files correlate with copy-paste growth).
func (h *Heuristic) sizeProxies(snap *snapshot.Snapshot) (cyclomatic, duplication float64) {
	arts := snap.ArtifactsOfKind(snapshot.KindSource)
	if len(arts) == 0 {
		return 1, 0
	}
	totalLines := 0
	large := 0
	for _, art := range arts {
		lines := bytes.Count(art.Content, []byte("\n")) + 1
		totalLines += lines
		if lines > 400 {
			large++
		}
	}
	mean := float64(totalLines) / float64(len(arts))
	cyclomatic = models.ClampFloat(mean/40, 1, 30)
	duplication = models.ClampFloat(float64(large)/float64(len(arts))*50, 0, 100)
	return cyclomatic, duplication
}

// smellCount counts debt marker lines across the source samples,
// capped at 20 so a marker-heavy repo cannot zero the composite on
// its own.
func (h *Heuristic) smellCount(snap *snapshot.Snapshot) int {
	count := 0
	for _, art := range snap.ArtifactsOfKind(snapshot.KindSource) {
		scanner := bufio.NewScanner(bytes.NewReader(art.Content))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			for _, m := range h.rules.Markers {
				if strings.Contains(line, m.Marker) {
					count++
					break
				}
			}
		}
	}
	if count > 20 {
		count = 20
	}
	return count
}
