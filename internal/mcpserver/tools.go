package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"assay/internal/output"
	"assay/pkg/analyzer/deps"
	"assay/pkg/analyzer/readme"
	"assay/pkg/analyzer/security"
	"assay/pkg/analyzer/techstack"
	"assay/pkg/pipeline"
	"assay/pkg/snapshot"
)

// AnalyzeInput is the input for all analyze tools.
type AnalyzeInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Repository path to analyze. Defaults to the current directory."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// Helper functions

func getPath(input AnalyzeInput) string {
	if input.Path == "" {
		return "."
	}
	return input.Path
}

func getFormat(input AnalyzeInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func loadSnapshot(ctx context.Context, input AnalyzeInput) (*snapshot.Snapshot, error) {
	src := snapshot.NewFilesystem(getPath(input))
	return pipeline.Fetch(ctx, src)
}

func formatOutput(data any, format output.Format) (string, error) {
	switch format {
	case output.FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	case output.FormatMarkdown:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return "", err
		}
		return "```\n" + string(out) + "\n```", nil
	default:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleAnalyzeRepository(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	snap, err := loadSnapshot(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}
	if snap.Empty() {
		return toolError("no analyzable artifacts found")
	}

	o := pipeline.New()
	defer o.Close()

	result, err := o.Run(ctx, snap)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input))
}

func handleAnalyzeTechStack(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	snap, err := loadSnapshot(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	a := techstack.New()
	defer a.Close()

	report, err := a.Analyze(ctx, snap)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report, getFormat(input))
}

func handleAnalyzeDependencies(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	snap, err := loadSnapshot(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	a := deps.New()
	defer a.Close()

	report, err := a.Analyze(ctx, snap)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report, getFormat(input))
}

func handleAnalyzeReadme(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	snap, err := loadSnapshot(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	a := readme.New()
	defer a.Close()

	report, err := a.Analyze(ctx, snap)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report, getFormat(input))
}

func handleAnalyzeSecurity(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	snap, err := loadSnapshot(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	a := security.New()
	defer a.Close()

	report, err := a.Analyze(ctx, snap)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report, getFormat(input))
}

// handleAnalyzeDebt runs the full pipeline because debt categorization
// consumes sibling analyzer outputs, then returns only the debt section.
func handleAnalyzeDebt(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	snap, err := loadSnapshot(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}
	if snap.Empty() {
		return toolError("no analyzable artifacts found")
	}

	o := pipeline.New()
	defer o.Close()

	result, err := o.Run(ctx, snap)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result.Debt, getFormat(input))
}
