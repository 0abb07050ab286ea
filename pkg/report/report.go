// Package report defines the analysis result model: the single value
// every renderer, tool surface and narrative generator consumes.
package report

import (
	"time"

	"github.com/sirupsen/logrus"

	"assay/pkg/analyzer/debt"
	"assay/pkg/analyzer/deps"
	"assay/pkg/analyzer/insights"
	"assay/pkg/analyzer/performance"
	"assay/pkg/analyzer/readme"
	"assay/pkg/analyzer/score"
	"assay/pkg/analyzer/security"
	"assay/pkg/analyzer/structure"
	"assay/pkg/analyzer/techstack"
	"assay/pkg/models"
	"assay/pkg/quality"
)

// Metadata identifies one analysis run.
type Metadata struct {
	ID             string    `json:"id" toon:"id"`
	GeneratedAt    time.Time `json:"generated_at" toon:"generated_at"`
	DurationMS     int64     `json:"duration_ms" toon:"duration_ms"`
	SnapshotDigest string    `json:"snapshot_digest" toon:"snapshot_digest"`
	ArtifactCount  int       `json:"artifact_count" toon:"artifact_count"`
	SignalCoverage float64   `json:"signal_coverage" toon:"signal_coverage"`
	Version        string    `json:"version,omitempty" toon:"version,omitempty"`
}

// AnalysisResult is the complete output of one pipeline run. Every
// sub-report is owned by value; results never share mutable state with
// the pipeline that produced them.
type AnalysisResult struct {
	Metadata     Metadata           `json:"metadata" toon:"metadata"`
	TechStack    techstack.Report   `json:"tech_stack" toon:"tech_stack"`
	Dependencies deps.Report        `json:"dependencies" toon:"dependencies"`
	Readme       readme.Report      `json:"readme" toon:"readme"`
	Structure    structure.Report   `json:"structure" toon:"structure"`
	Security     security.Report    `json:"security" toon:"security"`
	Performance  performance.Report `json:"performance" toon:"performance"`
	Debt         debt.Report        `json:"debt" toon:"debt"`
	Insights     insights.Report    `json:"insights" toon:"insights"`
	Quality      quality.Metrics    `json:"quality" toon:"quality"`
	Score        score.Result       `json:"score" toon:"score"`
}

// Normalize clamps every score to [0,100] and every confidence to
// [0,1] at the result boundary. An out-of-range value indicates a
// defect in an analyzer, so each clamp is logged as an error before it
// is repaired; callers never observe a value out of range.
func Normalize(r *AnalysisResult, log *logrus.Logger) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	clampScore := func(field string, s *models.CategoryScore) {
		if s.Value < 0 || s.Value > 100 {
			log.WithFields(logrus.Fields{"field": field, "value": s.Value}).
				Error("score out of range, clamping")
			s.Value = models.Clamp(s.Value, 0, 100)
		}
	}
	clampInt := func(field string, v *int) {
		if *v < 0 || *v > 100 {
			log.WithFields(logrus.Fields{"field": field, "value": *v}).
				Error("score out of range, clamping")
			*v = models.Clamp(*v, 0, 100)
		}
	}

	clampScore("structure.organization", &r.Structure.Organization)
	clampScore("security.score", &r.Security.Score)
	clampScore("performance.score", &r.Performance.Score)
	clampScore("debt.maintenance_score", &r.Debt.MaintenanceScore)
	clampScore("score.overall", &r.Score.Overall)
	clampInt("readme.score", &r.Readme.Score)
	clampInt("readme.structure_score", &r.Readme.StructureScore)
	clampInt("insights.scalability.score", &r.Insights.Scalability.Score)
	clampInt("insights.security.score", &r.Insights.Security.Score)
	clampInt("insights.performance.score", &r.Insights.Performance.Score)

	for i := range r.TechStack.Items {
		item := &r.TechStack.Items[i]
		if item.Confidence < 0 || item.Confidence > 1 {
			log.WithFields(logrus.Fields{"item": item.Name, "confidence": item.Confidence}).
				Error("confidence out of range, clamping")
			item.Confidence = models.ClampConfidence(item.Confidence)
		}
	}
	if r.Insights.StyleConfidence < 0 || r.Insights.StyleConfidence > 100 {
		log.WithFields(logrus.Fields{"field": "insights.style_confidence", "value": r.Insights.StyleConfidence}).
			Error("confidence out of range, clamping")
		r.Insights.StyleConfidence = models.Clamp(r.Insights.StyleConfidence, 0, 100)
	}
	if r.Metadata.SignalCoverage < 0 || r.Metadata.SignalCoverage > 1 {
		log.WithFields(logrus.Fields{"field": "metadata.signal_coverage", "value": r.Metadata.SignalCoverage}).
			Error("coverage out of range, clamping")
		r.Metadata.SignalCoverage = models.ClampConfidence(r.Metadata.SignalCoverage)
	}
	r.Quality = r.Quality.Clamp()
}
