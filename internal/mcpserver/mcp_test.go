package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"assay/internal/output"
)

// TestServerCreation verifies the MCP server can be created without panicking.
func TestServerCreation(t *testing.T) {
	server := NewServer("1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
}

// TestServerCreationEmptyVersion verifies empty version defaults to "dev".
func TestServerCreationEmptyVersion(t *testing.T) {
	server := NewServer("")
	if server == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

// TestToolDescriptions verifies all description functions return non-empty strings.
func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"repository":   describeRepository,
		"techStack":    describeTechStack,
		"dependencies": describeDependencies,
		"readme":       describeReadme,
		"security":     describeSecurity,
		"debt":         describeDebt,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			if desc == "" {
				t.Errorf("%s description is empty", name)
			}
			// Verify descriptions contain key sections
			if !strings.Contains(desc, "USE WHEN:") {
				t.Errorf("%s description missing USE WHEN section", name)
			}
			if !strings.Contains(desc, "INTERPRETING RESULTS:") {
				t.Errorf("%s description missing INTERPRETING RESULTS section", name)
			}
			if !strings.Contains(desc, "METRICS RETURNED:") {
				t.Errorf("%s description missing METRICS RETURNED section", name)
			}
		})
	}
}

// TestGetPath verifies path handling logic.
func TestGetPath(t *testing.T) {
	tests := []struct {
		name     string
		input    AnalyzeInput
		expected string
	}{
		{
			name:     "empty path defaults to current dir",
			input:    AnalyzeInput{},
			expected: ".",
		},
		{
			name:     "explicit path returned as-is",
			input:    AnalyzeInput{Path: "/foo/bar"},
			expected: "/foo/bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getPath(tt.input)
			if result != tt.expected {
				t.Errorf("getPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

// TestGetFormat verifies format parsing logic.
func TestGetFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		expected output.Format
	}{
		{"empty defaults to toon", "", output.FormatTOON},
		{"json format", "json", output.FormatJSON},
		{"markdown format", "markdown", output.FormatMarkdown},
		{"md alias", "md", output.FormatMarkdown},
		{"toon explicit", "toon", output.FormatTOON},
		{"unknown defaults to toon", "xml", output.FormatTOON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := AnalyzeInput{Format: tt.format}
			result := getFormat(input)
			if result != tt.expected {
				t.Errorf("getFormat(%q) = %v, want %v", tt.format, result, tt.expected)
			}
		})
	}
}

// TestFormatOutput verifies each format produces the expected shape.
func TestFormatOutput(t *testing.T) {
	data := map[string]interface{}{"key": "value"}

	jsonOut, err := formatOutput(data, output.FormatJSON)
	if err != nil {
		t.Fatalf("formatOutput(json) error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(jsonOut), &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if decoded["key"] != "value" {
		t.Errorf("json output = %v, want key=value", decoded)
	}

	mdOut, err := formatOutput(data, output.FormatMarkdown)
	if err != nil {
		t.Fatalf("formatOutput(markdown) error: %v", err)
	}
	if !strings.HasPrefix(mdOut, "```") || !strings.HasSuffix(mdOut, "```") {
		t.Errorf("markdown output not fenced: %q", mdOut)
	}

	toonOut, err := formatOutput(data, output.FormatTOON)
	if err != nil {
		t.Fatalf("formatOutput(toon) error: %v", err)
	}
	if !strings.Contains(toonOut, "key") {
		t.Errorf("toon output missing key: %q", toonOut)
	}
}

// TestToolError verifies error result formatting.
func TestToolError(t *testing.T) {
	result, _, err := toolError("test error message")
	if err != nil {
		t.Fatalf("toolError returned unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("toolError returned nil result")
	}
	if !result.IsError {
		t.Error("toolError result.IsError should be true")
	}
	if len(result.Content) == 0 {
		t.Fatal("toolError result has no content")
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("toolError content is not TextContent: %T", result.Content[0])
	}
	if textContent.Text != "Error: test error message" {
		t.Errorf("toolError text = %q, want %q", textContent.Text, "Error: test error message")
	}
}

// TestToolResult verifies successful result formatting.
func TestToolResult(t *testing.T) {
	data := map[string]interface{}{
		"key": "value",
		"num": 42,
	}
	result, _, err := toolResult(data, getFormat(AnalyzeInput{}))
	if err != nil {
		t.Fatalf("toolResult returned error: %v", err)
	}
	if result == nil {
		t.Fatal("toolResult returned nil")
	}
	if result.IsError {
		t.Error("toolResult.IsError should be false")
	}
	if len(result.Content) == 0 {
		t.Fatal("toolResult has no content")
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("toolResult content is not TextContent: %T", result.Content[0])
	}
	if textContent.Text == "" {
		t.Error("toolResult text is empty")
	}
}

// TestHandleTechStack tests the tech stack tool handler against a real directory.
func TestHandleTechStack(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "package.json")
	content := `{
  "name": "sample",
  "dependencies": {"react": "^18.2.0"},
  "devDependencies": {"jest": "^29.0.0"}
}
`
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	input := AnalyzeInput{Path: tmpDir, Format: "json"}
	result, _, err := handleAnalyzeTechStack(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleAnalyzeTechStack returned error: %v", err)
	}
	if result == nil {
		t.Fatal("handleAnalyzeTechStack returned nil result")
	}
	if result.IsError {
		textContent := result.Content[0].(*mcp.TextContent)
		t.Fatalf("handleAnalyzeTechStack returned error: %s", textContent.Text)
	}
	textContent := result.Content[0].(*mcp.TextContent)
	if !strings.Contains(textContent.Text, "React") {
		t.Errorf("tech stack output missing React: %q", textContent.Text)
	}
}

// TestHandleRepositoryEmptyDir verifies the full pipeline tool rejects
// directories with nothing to analyze.
func TestHandleRepositoryEmptyDir(t *testing.T) {
	tmpDir := t.TempDir()

	input := AnalyzeInput{Path: tmpDir}
	result, _, err := handleAnalyzeRepository(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleAnalyzeRepository returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for empty directory")
	}
	textContent := result.Content[0].(*mcp.TextContent)
	if !strings.Contains(textContent.Text, "no analyzable artifacts") {
		t.Errorf("error text = %q, want mention of no analyzable artifacts", textContent.Text)
	}
}

// TestGenerateManifest verifies the server.json manifest shape.
func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("1.2.3")
	if err != nil {
		t.Fatalf("GenerateManifest error: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest does not parse: %v", err)
	}
	if m.Name != "io.github.assay-dev/assay" {
		t.Errorf("manifest name = %q", m.Name)
	}
	if m.Version != "1.2.3" {
		t.Errorf("manifest version = %q", m.Version)
	}
	if len(m.Packages) != 1 || m.Packages[0].Transport.Type != "stdio" {
		t.Errorf("manifest packages = %+v", m.Packages)
	}
}

// TestGenerateManifestEmptyVersion verifies version fallback.
func TestGenerateManifestEmptyVersion(t *testing.T) {
	data, err := GenerateManifest("")
	if err != nil {
		t.Fatalf("GenerateManifest error: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest does not parse: %v", err)
	}
	if m.Version != "0.0.0" {
		t.Errorf("manifest version = %q, want 0.0.0", m.Version)
	}
}

// TestParseFrontmatter verifies prompt frontmatter extraction.
func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		description string
		body        string
	}{
		{
			name:        "with frontmatter",
			content:     "---\ndescription: A prompt.\n---\n\nDo the thing.",
			description: "A prompt.",
			body:        "Do the thing.",
		},
		{
			name:        "no frontmatter",
			content:     "Just a body.",
			description: "",
			body:        "Just a body.",
		},
		{
			name:        "unterminated frontmatter",
			content:     "---\ndescription: broken",
			description: "",
			body:        "---\ndescription: broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, body := parseFrontmatter([]byte(tt.content))
			if desc != tt.description {
				t.Errorf("description = %q, want %q", desc, tt.description)
			}
			if body != tt.body {
				t.Errorf("body = %q, want %q", body, tt.body)
			}
		})
	}
}

// TestEmbeddedPrompts verifies the embedded prompt files parse.
func TestEmbeddedPrompts(t *testing.T) {
	entries, err := promptFiles.ReadDir("prompts")
	if err != nil {
		t.Fatalf("reading embedded prompts: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded prompt files")
	}
	for _, entry := range entries {
		content, err := promptFiles.ReadFile(filepath.Join("prompts", entry.Name()))
		if err != nil {
			t.Fatalf("reading %s: %v", entry.Name(), err)
		}
		desc, body := parseFrontmatter(content)
		if desc == "" {
			t.Errorf("%s has no description frontmatter", entry.Name())
		}
		if strings.TrimSpace(body) == "" {
			t.Errorf("%s has an empty body", entry.Name())
		}
	}
}
