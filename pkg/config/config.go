// Package config loads assay settings from TOML, YAML or JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"assay/pkg/analyzer/score"
	"assay/pkg/quality"
	"assay/pkg/rules"
)

// Config holds all configuration options for assay.
type Config struct {
	// Output format: text, json, markdown or toon.
	Format string `koanf:"format"`

	// Glob patterns and directory names excluded from snapshots.
	Exclude []string `koanf:"exclude"`

	// Largest source artifact fetched into a snapshot, in bytes.
	MaxFileSize int64 `koanf:"max_file_size"`

	// Score aggregation weights, normalized by their sum.
	Weights score.Weights `koanf:"weights"`

	// Quality signal provider selection.
	Quality QualityConfig `koanf:"quality"`

	// Custom detection rules layered over the built-in table.
	Rules RulesConfig `koanf:"rules"`

	// Narrative generation settings.
	Narrative NarrativeConfig `koanf:"narrative"`
}

// QualityConfig selects the quality signal provider.
type QualityConfig struct {
	// Provider: heuristic or static.
	Provider string `koanf:"provider"`

	// Static metrics used when Provider is "static".
	Static quality.Metrics `koanf:"static"`
}

// RulesConfig carries user-supplied detection rules.
type RulesConfig struct {
	// Tech maps manifest keys (e.g. "npm:fastify") to custom rules,
	// overriding built-ins with the same key.
	Tech map[string]rules.TechRule `koanf:"tech"`
}

// NarrativeConfig controls the narrative generator.
type NarrativeConfig struct {
	Model     string `koanf:"model"`
	BaseURL   string `koanf:"base_url"`
	APIKeyEnv string `koanf:"api_key_env"`
	MaxTokens int    `koanf:"max_tokens"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format: "text",
		Exclude: []string{
			"vendor",
			"node_modules",
			".git",
			"dist",
			"build",
			"__pycache__",
			"*.min.js",
			"*.min.css",
		},
		MaxFileSize: 512 * 1024,
		Weights:     score.DefaultWeights(),
		Quality: QualityConfig{
			Provider: "heuristic",
		},
		Narrative: NarrativeConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			MaxTokens: 16000,
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to the
// defaults when none parses.
func LoadOrDefault() *Config {
	names := []string{
		"assay.toml",
		"assay.yaml",
		"assay.yml",
		"assay.json",
		".assay.toml",
		".assay.yaml",
		".assay.yml",
		".assay.json",
	}
	for _, name := range names {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if cfg, err := Load(name); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// RuleTable returns the built-in rule table with any custom tech rules
// layered on top.
func (c *Config) RuleTable() *rules.Table {
	t := rules.Default()
	if len(c.Rules.Tech) == 0 {
		return t
	}
	return t.Merge(c.Rules.Tech)
}

// QualityProvider builds the provider chain the config selects.
func (c *Config) QualityProvider(t *rules.Table) quality.Provider {
	if c.Quality.Provider == "static" {
		return quality.NewStatic(c.Quality.Static)
	}
	return quality.NewChain(quality.NewHeuristic(quality.WithRules(t)))
}

// ShouldExclude reports whether a path matches an exclusion entry.
// Entries without glob metacharacters exclude any path segment of that
// name; glob entries match against the base name.
func (c *Config) ShouldExclude(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.Exclude {
		if strings.ContainsAny(pattern, "*?[") {
			if matched, _ := filepath.Match(pattern, base); matched {
				return true
			}
			continue
		}
		for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
			if segment == pattern {
				return true
			}
		}
	}
	return false
}
