package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
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

func defaultResult() *AnalysisResult {
	return &AnalysisResult{
		Metadata: Metadata{
			ID:             "11111111-2222-3333-4444-555555555555",
			GeneratedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			DurationMS:     42,
			SnapshotDigest: "c0ffee",
			ArtifactCount:  3,
			SignalCoverage: 0.75,
			Version:        "dev",
		},
		TechStack:    *techstack.Default(),
		Dependencies: *deps.Default(),
		Readme:       *readme.Default(),
		Structure:    *structure.Default(),
		Security:     *security.Default(),
		Performance:  *performance.Default(),
		Debt:         *debt.Default(),
		Insights:     *insights.Default(),
		Quality:      quality.DefaultMetrics(),
		Score:        score.Aggregate(score.Inputs{Maintainability: 100}, score.DefaultWeights()),
	}
}

func TestNormalizeClampsOutOfRange(t *testing.T) {
	r := defaultResult()
	r.Security.Score.Value = 180
	r.Readme.Score = -5
	r.TechStack.Items = []models.TechStackItem{
		{Name: "React", Category: models.CategoryFramework, Confidence: 1.7},
	}
	r.Metadata.SignalCoverage = 2

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	Normalize(r, log)

	if r.Security.Score.Value != 100 {
		t.Errorf("Security.Score = %d, want 100", r.Security.Score.Value)
	}
	if r.Readme.Score != 0 {
		t.Errorf("Readme.Score = %d, want 0", r.Readme.Score)
	}
	if r.TechStack.Items[0].Confidence != 1 {
		t.Errorf("Confidence = %v, want 1", r.TechStack.Items[0].Confidence)
	}
	if r.Metadata.SignalCoverage != 1 {
		t.Errorf("SignalCoverage = %v, want 1", r.Metadata.SignalCoverage)
	}
	if !strings.Contains(buf.String(), "clamping") {
		t.Error("expected clamp events to be logged")
	}
}

func TestNormalizeInRangeIsQuiet(t *testing.T) {
	r := defaultResult()
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	Normalize(r, log)

	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestValidateJSONAcceptsNormalizedResult(t *testing.T) {
	r := defaultResult()
	Normalize(r, nil)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := ValidateJSON(data); err != nil {
		t.Errorf("ValidateJSON() error = %v", err)
	}
}

func TestValidateJSONRejectsBadSeverity(t *testing.T) {
	r := defaultResult()
	r.Debt.OverallLevel = models.Severity("urgent")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := ValidateJSON(data); err == nil {
		t.Error("ValidateJSON() = nil, want error for unknown severity")
	}
}

func TestValidateJSONRejectsMissingSection(t *testing.T) {
	if err := ValidateJSON([]byte(`{"metadata":{}}`)); err == nil {
		t.Error("ValidateJSON() = nil, want error for missing sections")
	}
}

func TestValidateJSONRejectsMalformedDocument(t *testing.T) {
	if err := ValidateJSON([]byte(`{not json`)); err == nil {
		t.Error("ValidateJSON() = nil, want parse error")
	}
}
