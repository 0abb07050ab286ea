package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"assay/pkg/models"
	"assay/pkg/report"
)

// maxFindingRows caps the findings table in text and markdown output;
// the full set is always present in json and toon.
const maxFindingRows = 15

// ResultView renders an analysis result in every supported format.
type ResultView struct {
	Result *report.AnalysisResult
}

// NewResultView wraps a result for formatting.
func NewResultView(r *report.AnalysisResult) *ResultView {
	return &ResultView{Result: r}
}

func (v *ResultView) RenderData() any {
	return v.Result
}

func (v *ResultView) RenderText(w io.Writer, colored bool) error {
	return v.report().RenderText(w, colored)
}

func (v *ResultView) RenderMarkdown(w io.Writer) error {
	return v.report().RenderMarkdown(w)
}

func (v *ResultView) report() *Report {
	r := v.Result
	sections := []Renderable{
		v.overviewSection(),
		v.techStackTable(),
		v.dependencySection(),
		v.readmeSection(),
	}
	if rows := v.findingRows(); len(rows) > 0 {
		sections = append(sections, NewTable("Findings",
			[]string{"Severity", "Type", "Location", "Description"}, rows, nil, nil))
	}
	sections = append(sections, v.debtSection(), v.scoreTable())
	if len(r.Insights.Recommendations) > 0 {
		sections = append(sections, v.recommendationSection())
	}

	return &Report{
		Title:    "Repository Analysis",
		Sections: sections,
		Data:     r,
	}
}

func (v *ResultView) overviewSection() *Section {
	r := v.Result
	var b strings.Builder
	fmt.Fprintf(&b, "Overall: %d (%s)\n", r.Score.Overall.Value, r.Score.Grade)
	fmt.Fprintf(&b, "Style: %s\n", r.Insights.Style)
	fmt.Fprintf(&b, "Debt level: %s\n", r.Debt.OverallLevel)
	fmt.Fprintf(&b, "Artifacts: %d (signal coverage %.0f%%)",
		r.Metadata.ArtifactCount, r.Metadata.SignalCoverage*100)
	return &Section{Title: "Overview", Content: b.String()}
}

func (v *ResultView) techStackTable() *Table {
	items := v.Result.TechStack.Items
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			string(item.Category),
			item.Version,
			fmt.Sprintf("%.0f%%", item.Confidence*100),
		})
	}
	footer := []string{fmt.Sprintf("%d technologies", v.Result.TechStack.Summary.Total), "", "", ""}
	return NewTable("Tech Stack", []string{"Name", "Category", "Version", "Confidence"}, rows, footer, nil)
}

func (v *ResultView) dependencySection() *Section {
	d := v.Result.Dependencies
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d (production %d, development %d, optional %d)\n",
		d.Total, d.Production, d.Development, d.Optional)
	if len(d.Duplicates) > 0 {
		names := make([]string, len(d.Duplicates))
		for i, dup := range d.Duplicates {
			names[i] = dup.Name
		}
		fmt.Fprintf(&b, "Duplicates: %s\n", strings.Join(names, ", "))
	}
	if len(d.MissingScripts) > 0 {
		fmt.Fprintf(&b, "Missing scripts: %s\n", strings.Join(d.MissingScripts, ", "))
	}
	fmt.Fprintf(&b, "Healthy: %v", d.Healthy)
	return &Section{Title: "Dependencies", Content: b.String()}
}

func (v *ResultView) readmeSection() *Section {
	r := v.Result.Readme
	if !r.Present {
		return &Section{Title: "README", Content: "No README found."}
	}
	present := make([]string, 0, len(r.Sections))
	for name, ok := range r.Sections {
		if ok {
			present = append(present, name)
		}
	}
	sort.Strings(present)

	var b strings.Builder
	fmt.Fprintf(&b, "Quality: %s (score %d)\n", r.Quality, r.Score)
	fmt.Fprintf(&b, "Words: %d, headings: %d, code blocks: %d\n", r.WordCount, r.Headings, r.CodeBlocks)
	fmt.Fprintf(&b, "Sections: %s", strings.Join(present, ", "))
	return &Section{Title: "README", Content: b.String()}
}

// findingRows merges security and performance findings, worst first.
func (v *ResultView) findingRows() [][]string {
	findings := make([]models.Finding, 0,
		len(v.Result.Security.Findings)+len(v.Result.Performance.Findings))
	findings = append(findings, v.Result.Security.Findings...)
	findings = append(findings, v.Result.Performance.Findings...)
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Weight() > findings[j].Severity.Weight()
	})
	if len(findings) > maxFindingRows {
		findings = findings[:maxFindingRows]
	}

	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		loc := f.Location.Path
		if f.Location.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, f.Location.Line)
		}
		rows = append(rows, []string{string(f.Severity), f.Type, loc, f.Description})
	}
	return rows
}

func (v *ResultView) debtSection() *Section {
	d := v.Result.Debt
	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s, maintenance score: %d\n", d.OverallLevel, d.MaintenanceScore.Value)
	if len(d.Categories) == 0 {
		b.WriteString("No debt categories flagged.")
	} else {
		parts := make([]string, len(d.Categories))
		for i, c := range d.Categories {
			parts[i] = fmt.Sprintf("%s (%s, %d)", c.Name, c.Severity, c.Count)
		}
		fmt.Fprintf(&b, "Categories: %s", strings.Join(parts, ", "))
	}
	return &Section{Title: "Technical Debt", Content: b.String()}
}

func (v *ResultView) scoreTable() *Table {
	c := v.Result.Score.Components
	rows := [][]string{
		{"Maintainability", fmt.Sprintf("%d", c.Maintainability)},
		{"Complexity", fmt.Sprintf("%d", c.Complexity)},
		{"Duplication", fmt.Sprintf("%d", c.Duplication)},
		{"Documentation", fmt.Sprintf("%d", c.Documentation)},
		{"Test coverage", fmt.Sprintf("%d", c.TestCoverage)},
		{"Smells", fmt.Sprintf("%d", c.Smells)},
	}
	footer := []string{"Overall", fmt.Sprintf("%d (%s)", v.Result.Score.Overall.Value, v.Result.Score.Grade)}
	return NewTable("Score", []string{"Component", "Value"}, rows, footer, nil)
}

func (v *ResultView) recommendationSection() *Section {
	var b strings.Builder
	for i, rec := range v.Result.Insights.Recommendations {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s", rec)
	}
	return &Section{Title: "Recommendations", Content: b.String()}
}
