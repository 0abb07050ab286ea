// Package pipeline orchestrates the category analyzers over one
// immutable snapshot and assembles the analysis result.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"

	"assay/pkg/analyzer"
	"assay/pkg/analyzer/debt"
	"assay/pkg/analyzer/deps"
	"assay/pkg/analyzer/insights"
	"assay/pkg/analyzer/performance"
	"assay/pkg/analyzer/readme"
	"assay/pkg/analyzer/score"
	"assay/pkg/analyzer/security"
	"assay/pkg/analyzer/structure"
	"assay/pkg/analyzer/techstack"
	"assay/pkg/quality"
	"assay/pkg/report"
	"assay/pkg/rules"
	"assay/pkg/snapshot"
)

// Analysis phases reported by PhaseError.
const (
	PhaseFetch   = "fetch"
	PhaseAnalyze = "analyze"
	PhaseNarrate = "narrate"
)

// PhaseError attributes a failure to one phase of an analysis run, so
// callers can tell a snapshot problem from an analysis or narration one.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Fetch loads a snapshot from src and tags any failure with the fetch
// phase, so callers can tell a collaborator problem from an analysis
// one.
func Fetch(ctx context.Context, src snapshot.ContentSource, opts ...snapshot.LoadOption) (*snapshot.Snapshot, error) {
	snap, err := snapshot.Load(ctx, src, opts...)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseFetch, Err: err}
	}
	return snap, nil
}

// Orchestrator runs every category analyzer over a snapshot and folds
// the sub-reports into one result. Each Run is a fresh invocation with
// a fresh result object; the orchestrator itself carries no per-run
// state and is safe for sequential reuse.
type Orchestrator struct {
	rules    *rules.Table
	provider quality.Provider
	weights  score.Weights
	tracker  *analyzer.Tracker
	clock    func() time.Time
	log      *logrus.Logger

	tech      *techstack.Analyzer
	deps      *deps.Analyzer
	readme    *readme.Analyzer
	structure *structure.Analyzer
	security  *security.Analyzer
	perf      *performance.Analyzer
	debt      *debt.Analyzer
	insights  *insights.Analyzer
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithRules sets the rule table shared by every analyzer.
func WithRules(t *rules.Table) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.rules = t
		}
	}
}

// WithQuality sets the quality signal provider. Defaults to a chain
// holding the snapshot heuristic.
func WithQuality(p quality.Provider) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.provider = p
		}
	}
}

// WithWeights sets the score aggregation weights.
func WithWeights(w score.Weights) Option {
	return func(o *Orchestrator) { o.weights = w }
}

// WithProgress attaches a progress tracker ticked once per stage.
func WithProgress(t *analyzer.Tracker) Option {
	return func(o *Orchestrator) { o.tracker = t }
}

// WithClock injects the time source used for metadata stamps.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger for degradation warnings.
func WithLogger(log *logrus.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// Stages is the number of progress ticks one Run emits.
const Stages = 10

// New creates an orchestrator with its analyzer set.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		rules:   rules.Default(),
		weights: score.DefaultWeights(),
		clock:   time.Now,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.provider == nil {
		o.provider = quality.NewChain(quality.NewHeuristic(quality.WithRules(o.rules)))
	}

	o.tech = techstack.New(techstack.WithRules(o.rules))
	o.deps = deps.New()
	o.readme = readme.New(readme.WithRules(o.rules))
	o.structure = structure.New(structure.WithRules(o.rules))
	o.security = security.New(security.WithRules(o.rules))
	o.perf = performance.New(performance.WithRules(o.rules))
	o.debt = debt.New(debt.WithRules(o.rules))
	o.insights = insights.New(insights.WithRules(o.rules))
	return o
}

// Close releases the analyzers.
func (o *Orchestrator) Close() {
	o.tech.Close()
	o.deps.Close()
	o.readme.Close()
	o.structure.Close()
	o.security.Close()
	o.perf.Close()
	o.debt.Close()
	o.insights.Close()
}

// Run analyzes the snapshot and returns the assembled result. The
// snapshot-only analyzers fan out concurrently and join at a barrier;
// debt, insights and score run afterwards because they consume sibling
// outputs. A failed analyzer degrades to its default sub-report and
// never aborts siblings. If ctx is cancelled before the barrier
// completes the partial result is discarded.
func (o *Orchestrator) Run(ctx context.Context, snap *snapshot.Snapshot) (*report.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PhaseError{Phase: PhaseAnalyze, Err: err}
	}
	start := o.clock()
	if o.tracker != nil {
		o.tracker.SetTotal(Stages)
	}

	var (
		techR   *techstack.Report
		depsR   *deps.Report
		readmeR *readme.Report
		structR *structure.Report
		secR    *security.Report
		perfR   *performance.Report
		metrics quality.Metrics
		qualErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		techR = degrade(o, "techstack", techstack.Default, func() (*techstack.Report, error) {
			return o.tech.Analyze(ctx, snap)
		})
	})
	wg.Go(func() {
		depsR = degrade(o, "dependencies", deps.Default, func() (*deps.Report, error) {
			return o.deps.Analyze(ctx, snap)
		})
	})
	wg.Go(func() {
		readmeR = degrade(o, "readme", readme.Default, func() (*readme.Report, error) {
			return o.readme.Analyze(ctx, snap)
		})
	})
	wg.Go(func() {
		structR = degrade(o, "structure", structure.Default, func() (*structure.Report, error) {
			return o.structure.Analyze(ctx, snap)
		})
	})
	wg.Go(func() {
		secR = degrade(o, "security", security.Default, func() (*security.Report, error) {
			return o.security.Analyze(ctx, snap)
		})
	})
	wg.Go(func() {
		perfR = degrade(o, "performance", performance.Default, func() (*performance.Report, error) {
			return o.perf.Analyze(ctx, snap)
		})
	})
	wg.Go(func() {
		metrics, qualErr = o.provider.Estimate(ctx, snap)
	})
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &PhaseError{Phase: PhaseAnalyze, Err: err}
	}
	o.tick("techstack", "dependencies", "readme", "structure", "security", "performance")

	if qualErr != nil {
		o.log.WithError(qualErr).Warn("quality providers exhausted, using default metrics")
		metrics = quality.DefaultMetrics()
	}
	o.tick("quality")

	debtR := degrade(o, "debt", debt.Default, func() (*debt.Report, error) {
		return o.debt.Analyze(ctx, snap, debt.Inputs{
			Security:    secR.Findings,
			Performance: perfR.Findings,
			Deps:        depsR,
			Readme:      readmeR,
			Structure:   structR,
		})
	})
	o.tick("debt")

	insightsR := degrade(o, "insights", insights.Default, func() (*insights.Report, error) {
		return o.insights.Analyze(ctx, insights.Inputs{
			TechStack:   techR,
			Structure:   structR,
			Security:    secR,
			Performance: perfR,
			Deps:        depsR,
			Readme:      readmeR,
			Debt:        debtR,
		})
	})
	o.tick("insights")

	merged := mergeEvidence(metrics, readmeR, debtR)
	scoreR := score.Aggregate(score.Inputs{
		Maintainability:       float64(debtR.MaintenanceScore.Value),
		CyclomaticComplexity:  merged.CyclomaticComplexity,
		DuplicationLevel:      merged.DuplicationLevel,
		DocumentationCoverage: merged.DocumentationCoverage,
		TestCoverage:          merged.TestCoverage,
		SmellCount:            merged.SmellCount,
	}, o.weights)
	o.tick("score")

	result := &report.AnalysisResult{
		Metadata: report.Metadata{
			ID:             uuid.NewString(),
			GeneratedAt:    start.UTC(),
			DurationMS:     o.clock().Sub(start).Milliseconds(),
			SnapshotDigest: fmt.Sprintf("%016x", snap.Digest()),
			ArtifactCount:  len(snap.Artifacts()),
			SignalCoverage: signalCoverage(snap),
		},
		TechStack:    *techR,
		Dependencies: *depsR,
		Readme:       *readmeR,
		Structure:    *structR,
		Security:     *secR,
		Performance:  *perfR,
		Debt:         *debtR,
		Insights:     *insightsR,
		Quality:      merged,
		Score:        scoreR,
	}
	report.Normalize(result, o.log)
	return result, nil
}

// degrade runs one analyzer and substitutes the documented default
// sub-report on failure, logging the cause.
func degrade[T any](o *Orchestrator, name string, def func() T, run func() (T, error)) T {
	r, err := run()
	if err != nil {
		o.log.WithError(err).WithField("analyzer", name).Warn("analyzer degraded to default")
		return def()
	}
	return r
}

func (o *Orchestrator) tick(stages ...string) {
	if o.tracker == nil {
		return
	}
	for _, s := range stages {
		o.tracker.Tick(s)
	}
}

// mergeEvidence folds direct analyzer evidence into the provider
// metrics: the README score is documentation evidence, debt markers are
// smell evidence. Each signal takes the stronger of the two sources.
func mergeEvidence(m quality.Metrics, readmeR *readme.Report, debtR *debt.Report) quality.Metrics {
	m.DocumentationCoverage = math.Max(m.DocumentationCoverage, float64(readmeR.Score))
	if markers := len(debtR.Markers); markers > m.SmellCount {
		m.SmellCount = markers
	}
	return m.Clamp()
}

// signalCoverage is the fraction of artifact families present in the
// snapshot: manifests, README, tree listing and source samples. Zero
// marks an empty snapshot, distinguishing "no signal" from bad signal.
func signalCoverage(snap *snapshot.Snapshot) float64 {
	if snap.Empty() {
		return 0
	}
	present := 0
	if len(snap.ArtifactsOfKind(snapshot.KindManifest)) > 0 {
		present++
	}
	if len(snap.ArtifactsOfKind(snapshot.KindReadme)) > 0 {
		present++
	}
	if len(snap.Tree()) > 0 {
		present++
	}
	if len(snap.ArtifactsOfKind(snapshot.KindSource)) > 0 {
		present++
	}
	return float64(present) / 4
}
