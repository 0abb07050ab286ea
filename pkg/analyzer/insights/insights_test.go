package insights

import (
	"context"
	"strings"
	"testing"

	"assay/pkg/analyzer/debt"
	"assay/pkg/analyzer/deps"
	"assay/pkg/analyzer/readme"
	"assay/pkg/analyzer/scan"
	"assay/pkg/analyzer/security"
	"assay/pkg/analyzer/structure"
	"assay/pkg/analyzer/techstack"
	"assay/pkg/models"
	"assay/pkg/rules"
)

func analyze(t *testing.T, in Inputs) *Report {
	t.Helper()
	a := New()
	defer a.Close()
	report, err := a.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return report
}

func stack(names ...string) *techstack.Report {
	table := rules.Default()
	r := techstack.Default()
	for _, name := range names {
		for _, rule := range table.Tech {
			if rule.Name == name {
				r.Items = append(r.Items, models.TechStackItem{
					Name: rule.Name, Category: rule.Category, Confidence: rule.Confidence,
				})
				break
			}
		}
	}
	return r
}

func TestStylePrecedence(t *testing.T) {
	cases := []struct {
		name  string
		techs []string
		want  string
	}{
		{"container beats fullstack", []string{"Docker Compose", "Next.js", "React"}, StyleContainerOrchestrated},
		{"fullstack beats spa", []string{"Next.js", "React"}, StyleFullstack},
		{"spa beats api", []string{"React", "Express"}, StyleSPA},
		{"api alone", []string{"Express"}, StyleAPIService},
		{"nothing", nil, StyleGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := analyze(t, Inputs{TechStack: stack(tc.techs...)})
			if report.Style != tc.want {
				t.Errorf("Style = %q, want %q", report.Style, tc.want)
			}
			if tc.want != StyleGeneric && report.StyleConfidence <= 0 {
				t.Errorf("StyleConfidence = %d, want > 0", report.StyleConfidence)
			}
		})
	}
}

func TestAssessmentsFromScans(t *testing.T) {
	findings := []models.Finding{
		models.NewFinding("eval-usage", models.SeverityCritical, models.Location{Path: "a.js", Line: 1}, "d", ""),
	}
	in := Inputs{
		Security: &security.Report{
			Score:    scan.Score(findings),
			Findings: findings,
			Summary:  scan.Summarize(findings),
		},
	}
	report := analyze(t, in)
	if report.Security.Score != 75 {
		t.Errorf("Security.Score = %d, want 75", report.Security.Score)
	}
	if report.Security.Grade != "C" {
		t.Errorf("Security.Grade = %q, want C", report.Security.Grade)
	}
	if len(report.Security.Drivers) != 1 || report.Security.Drivers[0] != "eval-usage" {
		t.Errorf("Drivers = %v", report.Security.Drivers)
	}
	// Missing performance report degrades to a clean assessment.
	if report.Performance.Score != 100 || report.Performance.Grade != "A" {
		t.Errorf("Performance = %+v, want clean", report.Performance)
	}
}

func TestScalabilityFromStructure(t *testing.T) {
	s := &structure.Report{
		Organization: models.NewCategoryScore(85),
		Patterns: []structure.Pattern{
			{Name: "component-based", Confidence: 80},
			{Name: "mvc", Confidence: 75},
		},
		HasTestDir: true,
	}
	report := analyze(t, Inputs{Structure: s})
	if report.Scalability.Score != 85 || report.Scalability.Grade != "B" {
		t.Errorf("Scalability = %+v, want score 85 grade B", report.Scalability)
	}
	if len(report.Scalability.Drivers) != 2 {
		t.Errorf("Drivers = %v, want two patterns", report.Scalability.Drivers)
	}
}

func TestRecommendations(t *testing.T) {
	in := Inputs{
		Readme: &readme.Report{Quality: readme.TierPoor},
		Deps: &deps.Report{
			MissingScripts: []string{"lint"},
			Duplicates:     []deps.Duplicate{{Name: "lodash"}},
		},
		Debt: &debt.Report{
			Categories: []debt.Category{
				{Name: rules.DebtSecurity, Severity: models.SeverityHigh, Count: 2},
				{Name: rules.DebtCodeSmells, Severity: models.SeverityLow, Count: 5},
			},
		},
		Structure: &structure.Report{HasTestDir: false},
	}
	report := analyze(t, in)

	joined := strings.Join(report.Recommendations, "\n")
	for _, want := range []string{"README", "lint", "duplicate", "security debt", "test directory"} {
		if !strings.Contains(joined, want) {
			t.Errorf("recommendations missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "code-smells debt") {
		t.Error("low severity debt should not drive a recommendation")
	}
}

func TestDefaultDegraded(t *testing.T) {
	report := analyze(t, Inputs{})
	if report.Style != StyleGeneric {
		t.Errorf("Style = %q, want generic", report.Style)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want none", report.Recommendations)
	}
}

func TestGrades(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {80, "B"}, {79, "C"}, {70, "C"}, {69, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got := Grade(tc.score); got != tc.want {
			t.Errorf("Grade(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
