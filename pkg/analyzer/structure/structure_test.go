package structure

import (
	"context"
	"math"
	"testing"

	"assay/pkg/snapshot"
)

func analyze(t *testing.T, tree []snapshot.TreeEntry) *Report {
	t.Helper()
	a := New()
	defer a.Close()
	report, err := a.Analyze(context.Background(), snapshot.New(nil, tree))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return report
}

func TestOrganizationScoreFull(t *testing.T) {
	tree := []snapshot.TreeEntry{
		{Path: "src", Type: snapshot.EntryDir},
		{Path: "src/index.ts", Type: snapshot.EntryFile},
		{Path: "tests", Type: snapshot.EntryDir},
		{Path: "tests/index.test.ts", Type: snapshot.EntryFile},
		{Path: "docs", Type: snapshot.EntryDir},
		{Path: "docs/guide.md", Type: snapshot.EntryFile},
		{Path: "package.json", Type: snapshot.EntryFile},
		{Path: "README.md", Type: snapshot.EntryFile},
	}
	report := analyze(t, tree)
	// 50 + 20 + 15 + 10 + 5
	if report.Organization.Value != 100 {
		t.Errorf("Organization = %d, want 100", report.Organization.Value)
	}
	if !report.HasSourceDir || !report.HasTestDir || !report.HasDocsDir {
		t.Errorf("dirs = %v/%v/%v, want all true", report.HasSourceDir, report.HasTestDir, report.HasDocsDir)
	}
	if report.RootFiles != 2 {
		t.Errorf("RootFiles = %d, want 2", report.RootFiles)
	}
}

func TestOrganizationScoreComponents(t *testing.T) {
	tree := []snapshot.TreeEntry{
		{Path: "src", Type: snapshot.EntryDir},
		{Path: "src/main.go", Type: snapshot.EntryFile},
		{Path: "main.go", Type: snapshot.EntryFile},
	}
	report := analyze(t, tree)
	// 50 + 20 + 5
	if report.Organization.Value != 75 {
		t.Errorf("Organization = %d, want 75", report.Organization.Value)
	}
	if report.Organization.Components["source_dir"] != 20 {
		t.Errorf("source_dir component = %d, want 20", report.Organization.Components["source_dir"])
	}
	if _, ok := report.Organization.Components["test_dir"]; ok {
		t.Error("test_dir component present without a test dir")
	}
}

func TestMessyRootNoBonus(t *testing.T) {
	tree := make([]snapshot.TreeEntry, 0, 12)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		tree = append(tree, snapshot.TreeEntry{Path: name + ".txt", Type: snapshot.EntryFile})
	}
	report := analyze(t, tree)
	if report.Organization.Value != 50 {
		t.Errorf("Organization = %d, want 50", report.Organization.Value)
	}
}

func TestEmptyTreeDefault(t *testing.T) {
	report := analyze(t, nil)
	if report.Organization.Value != 50 {
		t.Errorf("Organization = %d, want base 50", report.Organization.Value)
	}
	if len(report.Patterns) != 0 {
		t.Errorf("Patterns = %+v, want empty", report.Patterns)
	}
	if report.Stats.Files != 0 || report.Stats.MaxDepth != 0 {
		t.Errorf("Stats = %+v, want zero", report.Stats)
	}
}

func TestArchitecturePatterns(t *testing.T) {
	tree := []snapshot.TreeEntry{
		{Path: "src", Type: snapshot.EntryDir},
		{Path: "src/components", Type: snapshot.EntryDir},
		{Path: "src/components/App.tsx", Type: snapshot.EntryFile},
		{Path: "src/models", Type: snapshot.EntryDir},
		{Path: "src/controllers", Type: snapshot.EntryDir},
	}
	report := analyze(t, tree)

	found := map[string][]string{}
	for _, p := range report.Patterns {
		found[p.Name] = p.Evidence
	}
	if _, ok := found["component-based"]; !ok {
		t.Errorf("component-based not detected: %+v", report.Patterns)
	}
	if ev, ok := found["mvc"]; !ok || len(ev) != 2 {
		t.Errorf("mvc evidence = %v, want two dirs", ev)
	}
	for i := 1; i < len(report.Patterns); i++ {
		if report.Patterns[i-1].Confidence < report.Patterns[i].Confidence {
			t.Errorf("patterns not sorted by confidence: %+v", report.Patterns)
		}
	}
}

func TestTreeStats(t *testing.T) {
	tree := []snapshot.TreeEntry{
		{Path: "src", Type: snapshot.EntryDir},
		{Path: "src/a.go", Type: snapshot.EntryFile},
		{Path: "src/b.go", Type: snapshot.EntryFile},
		{Path: "src/deep", Type: snapshot.EntryDir},
		{Path: "src/deep/c.go", Type: snapshot.EntryFile},
		{Path: "main.go", Type: snapshot.EntryFile},
	}
	report := analyze(t, tree)
	s := report.Stats
	if s.Files != 4 || s.Dirs != 2 {
		t.Errorf("Files/Dirs = %d/%d, want 4/2", s.Files, s.Dirs)
	}
	if s.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", s.MaxDepth)
	}
	// Files per dir: root 1, src 2, src/deep 1.
	if math.Abs(s.MeanFilesPerDir-4.0/3.0) > 1e-9 {
		t.Errorf("MeanFilesPerDir = %v, want 4/3", s.MeanFilesPerDir)
	}
	if s.StdDevFilesPerDir <= 0 {
		t.Errorf("StdDevFilesPerDir = %v, want > 0", s.StdDevFilesPerDir)
	}
}
