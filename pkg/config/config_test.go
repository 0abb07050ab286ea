package config

import (
	"os"
	"path/filepath"
	"testing"

	"assay/pkg/models"
	"assay/pkg/rules"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %s, want text", cfg.Format)
	}
	if cfg.MaxFileSize != 512*1024 {
		t.Errorf("MaxFileSize = %d, want 524288", cfg.MaxFileSize)
	}
	if len(cfg.Exclude) == 0 {
		t.Error("Exclude should have default values")
	}
	if sum := cfg.Weights.Sum(); sum < 0.999 || sum > 1.001 {
		t.Errorf("Weights.Sum() = %v, want 1.0", sum)
	}
	if cfg.Quality.Provider != "heuristic" {
		t.Errorf("Quality.Provider = %s, want heuristic", cfg.Quality.Provider)
	}
	if cfg.Narrative.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Narrative.APIKeyEnv = %s, want OPENAI_API_KEY", cfg.Narrative.APIKeyEnv)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "assay.toml", `
format = "json"
exclude = ["target", "*.generated.go"]

[weights]
maintainability = 0.5
complexity = 0.5

[quality]
provider = "static"

[quality.static]
maintainability_index = 85
test_coverage = 90

[narrative]
model = "gpt-4o"
max_tokens = 4000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %s, want json", cfg.Format)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "target" {
		t.Errorf("Exclude = %v, want [target *.generated.go]", cfg.Exclude)
	}
	if cfg.Weights.Maintainability != 0.5 || cfg.Weights.Complexity != 0.5 {
		t.Errorf("Weights = %+v, want 0.5/0.5", cfg.Weights)
	}
	if cfg.Quality.Provider != "static" {
		t.Errorf("Quality.Provider = %s, want static", cfg.Quality.Provider)
	}
	if cfg.Quality.Static.MaintainabilityIndex != 85 {
		t.Errorf("Static.MaintainabilityIndex = %v, want 85", cfg.Quality.Static.MaintainabilityIndex)
	}
	if cfg.Narrative.Model != "gpt-4o" || cfg.Narrative.MaxTokens != 4000 {
		t.Errorf("Narrative = %+v", cfg.Narrative)
	}
	// Unset fields keep their defaults.
	if cfg.Narrative.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Narrative.APIKeyEnv = %s, want default", cfg.Narrative.APIKeyEnv)
	}
	if cfg.MaxFileSize != 512*1024 {
		t.Errorf("MaxFileSize = %d, want default", cfg.MaxFileSize)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "assay.yaml", `
format: markdown
max_file_size: 1048576
rules:
  tech:
    "npm:fastify":
      name: Fastify
      category: framework
      description: low overhead web framework
      confidence: 0.9
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "markdown" {
		t.Errorf("Format = %s, want markdown", cfg.Format)
	}
	if cfg.MaxFileSize != 1048576 {
		t.Errorf("MaxFileSize = %d, want 1048576", cfg.MaxFileSize)
	}
	rule, ok := cfg.Rules.Tech["npm:fastify"]
	if !ok {
		t.Fatal("custom tech rule not loaded")
	}
	if rule.Name != "Fastify" || rule.Category != models.CategoryFramework {
		t.Errorf("rule = %+v", rule)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "assay.json", `{"format": "toon"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Format != "toon" {
		t.Errorf("Format = %s, want toon", cfg.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() = nil error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "assay.toml", `format = [unclosed`)
	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error for malformed file")
	}
}

func TestLoadOrDefaultFindsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "assay.toml"), []byte(`format = "json"`), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Chdir(dir)

	cfg := LoadOrDefault()
	if cfg.Format != "json" {
		t.Errorf("Format = %s, want json from assay.toml", cfg.Format)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := LoadOrDefault()
	if cfg.Format != "text" {
		t.Errorf("Format = %s, want default text", cfg.Format)
	}
}

func TestRuleTableMergesCustom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules.Tech = map[string]rules.TechRule{
		"npm:fastify": {Name: "Fastify", Category: models.CategoryFramework, Confidence: 0.9},
	}

	table := cfg.RuleTable()
	rule, ok := table.Tech["npm:fastify"]
	if !ok || rule.Name != "Fastify" {
		t.Errorf("merged rule = %+v, ok = %v", rule, ok)
	}
	if _, ok := table.Tech["npm:react"]; !ok {
		t.Error("built-in rules should survive the merge")
	}
	if _, ok := rules.Default().Tech["npm:fastify"]; ok {
		t.Error("merge must not mutate the built-in table")
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/react/index.js", true},
		{"src/node_modules/left-pad/index.js", true},
		{"vendor/golang.org/x/text/doc.go", true},
		{"assets/app.min.js", true},
		{"src/app.js", false},
		{"lib/vendored.go", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		if got := cfg.ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
