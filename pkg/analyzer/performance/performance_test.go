package performance

import (
	"context"
	"testing"

	"assay/pkg/snapshot"
)

func TestAnalyzeFindings(t *testing.T) {
	content := `const data = readFileSync("config.json")
for (const item of items) { await process(item) }
setInterval(poll, 50)
`
	snap := snapshot.New([]snapshot.Artifact{
		{Path: "src/worker.js", Content: []byte(content), Kind: snapshot.KindSource},
	}, nil)

	a := New()
	defer a.Close()
	report, err := a.Analyze(context.Background(), snap)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	types := map[string]bool{}
	for _, f := range report.Findings {
		types[f.Type] = true
	}
	for _, want := range []string{"sync-io", "await-in-loop", "tight-poll"} {
		if !types[want] {
			t.Errorf("missing %q finding: %+v", want, report.Findings)
		}
	}
	// high 15 + medium 10 + medium 10
	if report.Score.Value != 65 {
		t.Errorf("Score = %d, want 65", report.Score.Value)
	}
}

func TestAnalyzeGoUnboundedRead(t *testing.T) {
	snap := snapshot.New([]snapshot.Artifact{
		{Path: "main.go", Content: []byte("data, _ := io.ReadAll(resp.Body)\n"), Kind: snapshot.KindSource},
	}, nil)
	a := New()
	defer a.Close()
	report, err := a.Analyze(context.Background(), snap)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(report.Findings) != 1 || report.Findings[0].Type != "unbounded-read" {
		t.Errorf("Findings = %+v, want one unbounded-read", report.Findings)
	}
	if report.Score.Value != 95 {
		t.Errorf("Score = %d, want 95", report.Score.Value)
	}
}

func TestAnalyzeNoSource(t *testing.T) {
	a := New()
	defer a.Close()
	report, err := a.Analyze(context.Background(), snapshot.New(nil, nil))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Score.Value != 100 || len(report.Findings) != 0 {
		t.Errorf("degraded report = %+v, want clean", report)
	}
}
