// Package techstack detects the technologies a repository uses from
// its manifests, container files and tree layout.
package techstack

import (
	"context"
	"path"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"assay/pkg/analyzer"
	"assay/pkg/models"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// Analyzer detects technologies from manifest and tree evidence.
type Analyzer struct {
	rules   *rules.Table
	workers int
}

var _ analyzer.SnapshotAnalyzer[*Report] = (*Analyzer)(nil)

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithRules sets the rule table used for detection.
func WithRules(t *rules.Table) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.rules = t
		}
	}
}

// WithWorkers sets the maximum number of concurrent detectors.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// New creates a tech stack analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		rules:   rules.Default(),
		workers: runtime.NumCPU() * 2,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases resources held by the analyzer.
func (a *Analyzer) Close() {}

// detector routes one manifest artifact to its ecosystem detector.
type detectorFunc func(data []byte, t *rules.Table) []models.TechStackItem

// detectorFor picks the detector for a manifest filename, or nil when
// the file carries no technology signal.
func detectorFor(base string) detectorFunc {
	switch base {
	case "package.json":
		return detectNPM
	case "requirements.txt":
		return detectRequirements
	case "pyproject.toml":
		return detectPyProject
	case "Cargo.toml":
		return detectCargo
	case "go.mod":
		return detectGoMod
	case "pom.xml":
		return detectPOM
	case "composer.json":
		return detectComposer
	case "Gemfile":
		return detectGemfile
	case "Dockerfile":
		return detectDockerfile
	case "docker-compose.yml", "docker-compose.yaml":
		return detectCompose
	}
	return nil
}

// Analyze runs every applicable detector concurrently and merges their
// findings. The result is independent of detector completion order.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.Snapshot) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return Default(), err
	}

	type job struct {
		data []byte
		fn   detectorFunc
	}
	var jobs []job
	for _, art := range snap.ArtifactsOfKind(snapshot.KindManifest) {
		if art.Content == nil {
			continue
		}
		if fn := detectorFor(path.Base(art.Path)); fn != nil {
			jobs = append(jobs, job{data: art.Content, fn: fn})
		}
	}

	// Fixed result slots keep the merge input stable regardless of
	// which goroutine finishes first.
	results := make([][]models.TechStackItem, len(jobs)+1)
	p := pool.New().WithMaxGoroutines(a.workers)
	for i, j := range jobs {
		p.Go(func() {
			results[i] = j.fn(j.data, a.rules)
		})
	}
	p.Go(func() {
		results[len(jobs)] = detectFiles(snap.Tree(), a.rules)
	})
	p.Wait()

	var all []models.TechStackItem
	for _, r := range results {
		all = append(all, r...)
	}

	items := Dedupe(all)
	report := &Report{
		Items:     items,
		Languages: languages(items),
		Summary:   NewSummary(),
	}
	report.Summary.Total = len(items)
	for _, item := range items {
		report.Summary.ByCategory[string(item.Category)]++
	}
	return report, nil
}

// Dedupe merges detections that share a (name, category) identity,
// keeping the highest confidence. Ties are broken deterministically:
// a non-empty version wins over an empty one, then the lexically
// smaller version, so the merge is commutative and idempotent.
func Dedupe(items []models.TechStackItem) []models.TechStackItem {
	best := make(map[string]models.TechStackItem, len(items))
	for _, item := range items {
		key := item.Key()
		cur, ok := best[key]
		if !ok || prefer(item, cur) {
			best[key] = item
		}
	}
	out := make([]models.TechStackItem, 0, len(best))
	for _, item := range best {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// prefer reports whether a should replace b for the same identity.
func prefer(a, b models.TechStackItem) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if (a.Version != "") != (b.Version != "") {
		return a.Version != ""
	}
	if a.Version != b.Version {
		return a.Version < b.Version
	}
	return a.Usage < b.Usage
}

// languages extracts the detected language names, already sorted since
// the item set is.
func languages(items []models.TechStackItem) []string {
	langs := []string{}
	for _, item := range items {
		if item.Category == models.CategoryLanguage {
			langs = append(langs, item.Name)
		}
	}
	return langs
}
