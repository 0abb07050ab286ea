// Package quality supplies the code quality signals the score
// aggregator consumes. Signals come from pluggable providers tried in
// order, so an external measurement source can replace the built-in
// heuristic without touching the pipeline.
package quality

import (
	"context"
	"errors"
	"fmt"

	"assay/pkg/models"
	"assay/pkg/snapshot"
)

// ErrUnavailable is returned by a provider that cannot estimate from
// the given snapshot. The chain moves on to the next provider.
var ErrUnavailable = errors.New("quality: provider unavailable for snapshot")

// ErrNoProvider is returned by a chain whose providers were all
// exhausted.
var ErrNoProvider = errors.New("quality: no provider produced metrics")

// Metrics are the quality signals consumed by the score aggregator.
// All float fields are on [0, 100] except CyclomaticComplexity, which
// is an average per-function estimate.
type Metrics struct {
	MaintainabilityIndex  float64 `json:"maintainability_index" toon:"maintainability_index" koanf:"maintainability_index"`
	CyclomaticComplexity  float64 `json:"cyclomatic_complexity" toon:"cyclomatic_complexity" koanf:"cyclomatic_complexity"`
	DuplicationLevel      float64 `json:"duplication_level" toon:"duplication_level" koanf:"duplication_level"`
	DocumentationCoverage float64 `json:"documentation_coverage" toon:"documentation_coverage" koanf:"documentation_coverage"`
	TestCoverage          float64 `json:"test_coverage" toon:"test_coverage" koanf:"test_coverage"`
	SmellCount            int     `json:"smell_count" toon:"smell_count" koanf:"smell_count"`
}

// Clamp bounds every field to its documented range.
func (m Metrics) Clamp() Metrics {
	m.MaintainabilityIndex = models.ClampFloat(m.MaintainabilityIndex, 0, 100)
	m.CyclomaticComplexity = models.ClampFloat(m.CyclomaticComplexity, 0, 100)
	m.DuplicationLevel = models.ClampFloat(m.DuplicationLevel, 0, 100)
	m.DocumentationCoverage = models.ClampFloat(m.DocumentationCoverage, 0, 100)
	m.TestCoverage = models.ClampFloat(m.TestCoverage, 0, 100)
	if m.SmellCount < 0 {
		m.SmellCount = 0
	}
	return m
}

// DefaultMetrics returns the neutral fallback used when every provider
// is exhausted.
func DefaultMetrics() Metrics {
	return Metrics{
		MaintainabilityIndex:  70,
		CyclomaticComplexity:  5,
		DuplicationLevel:      10,
		DocumentationCoverage: 50,
		TestCoverage:          50,
	}
}

// Provider estimates quality metrics for a snapshot.
type Provider interface {
	// Name identifies the provider in logs and reports.
	Name() string

	// Estimate produces metrics for the snapshot. ErrUnavailable
	// means the provider cannot serve this snapshot and the next
	// provider should be tried.
	Estimate(ctx context.Context, snap *snapshot.Snapshot) (Metrics, error)
}

// Chain tries providers in order and returns the first success.
type Chain struct {
	providers []Provider
}

// NewChain builds a provider chain. Order is significance order: the
// first provider that succeeds wins.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Name implements Provider.
func (c *Chain) Name() string { return "chain" }

// Estimate implements Provider. An exhausted chain returns
// ErrNoProvider wrapping the last provider error.
func (c *Chain) Estimate(ctx context.Context, snap *snapshot.Snapshot) (Metrics, error) {
	var lastErr error
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return Metrics{}, err
		}
		m, err := p.Estimate(ctx, snap)
		if err == nil {
			return m.Clamp(), nil
		}
		lastErr = fmt.Errorf("%s: %w", p.Name(), err)
	}
	if lastErr != nil {
		return Metrics{}, fmt.Errorf("%w: %w", ErrNoProvider, lastErr)
	}
	return Metrics{}, ErrNoProvider
}

// Static serves fixed metrics, typically from configuration or test
// fixtures.
type Static struct {
	metrics Metrics
}

// NewStatic creates a provider that always returns m.
func NewStatic(m Metrics) *Static {
	return &Static{metrics: m.Clamp()}
}

// Name implements Provider.
func (s *Static) Name() string { return "static" }

// Estimate implements Provider.
func (s *Static) Estimate(ctx context.Context, snap *snapshot.Snapshot) (Metrics, error) {
	return s.metrics, nil
}
