// Package score aggregates the category signals into the composite
// quality score.
package score

import (
	"math"

	"assay/pkg/models"
)

// Weights defines the contribution of each component to the composite
// score. DefaultWeights sums to 1.0; custom weights are normalized by
// their own sum so partial overrides stay proportional.
type Weights struct {
	Maintainability float64 `json:"maintainability" koanf:"maintainability"`
	Complexity      float64 `json:"complexity" koanf:"complexity"`
	Duplication     float64 `json:"duplication" koanf:"duplication"`
	Documentation   float64 `json:"documentation" koanf:"documentation"`
	TestCoverage    float64 `json:"test_coverage" koanf:"test_coverage"`
	Smells          float64 `json:"smells" koanf:"smells"`
}

// DefaultWeights returns the standard weights (sum 1.0).
func DefaultWeights() Weights {
	return Weights{
		Maintainability: 0.25,
		Complexity:      0.20,
		Duplication:     0.15,
		Documentation:   0.15,
		TestCoverage:    0.15,
		Smells:          0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Maintainability + w.Complexity + w.Duplication +
		w.Documentation + w.TestCoverage + w.Smells
}

// Inputs carries the signals the aggregator blends: maintainability
// from the debt analysis, the rest from the quality providers merged
// with analyzer evidence.
type Inputs struct {
	Maintainability       float64
	CyclomaticComplexity  float64
	DuplicationLevel      float64
	DocumentationCoverage float64
	TestCoverage          float64
	SmellCount            int
}

// Result is the composite score with its component breakdown.
type Result struct {
	Overall    models.CategoryScore `json:"overall" toon:"overall"`
	Grade      string               `json:"grade" toon:"grade"`
	Weights    Weights              `json:"weights" toon:"weights"`
	Components Components           `json:"components" toon:"components"`
}

// Components holds the normalized 0-100 component scores.
type Components struct {
	Maintainability int `json:"maintainability" toon:"maintainability"`
	Complexity      int `json:"complexity" toon:"complexity"`
	Duplication     int `json:"duplication" toon:"duplication"`
	Documentation   int `json:"documentation" toon:"documentation"`
	TestCoverage    int `json:"test_coverage" toon:"test_coverage"`
	Smells          int `json:"smells" toon:"smells"`
}

// Aggregate blends the inputs into the composite score. Every
// intermediate is clamped to [0,100]; the overall value is the
// weighted sum rounded to the nearest integer and clamped.
func Aggregate(in Inputs, w Weights) Result {
	if w.Sum() <= 0 {
		w = DefaultWeights()
	}

	complexityPenalty := math.Min(100, in.CyclomaticComplexity*10)
	smellPenalty := math.Min(100, float64(in.SmellCount)*10)

	c := Components{
		Maintainability: clampRound(in.Maintainability),
		Complexity:      clampRound(100 - complexityPenalty),
		Duplication:     clampRound(100 - in.DuplicationLevel),
		Documentation:   clampRound(in.DocumentationCoverage),
		TestCoverage:    clampRound(in.TestCoverage),
		Smells:          clampRound(100 - smellPenalty),
	}

	weighted := (float64(c.Maintainability)*w.Maintainability +
		float64(c.Complexity)*w.Complexity +
		float64(c.Duplication)*w.Duplication +
		float64(c.Documentation)*w.Documentation +
		float64(c.TestCoverage)*w.TestCoverage +
		float64(c.Smells)*w.Smells) / w.Sum()

	overall := models.NewCategoryScore(clampRound(weighted))
	overall.SetComponent("maintainability", c.Maintainability)
	overall.SetComponent("complexity", c.Complexity)
	overall.SetComponent("duplication", c.Duplication)
	overall.SetComponent("documentation", c.Documentation)
	overall.SetComponent("test_coverage", c.TestCoverage)
	overall.SetComponent("smells", c.Smells)

	return Result{
		Overall:    overall,
		Grade:      Grade(overall.Value),
		Weights:    w,
		Components: c,
	}
}

func clampRound(v float64) int {
	return models.Clamp(int(math.Round(v)), 0, 100)
}

// Grade maps a 0-100 score onto a letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
