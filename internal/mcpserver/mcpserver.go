package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all assay analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all assay tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "assay",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all assay analyzer tools to the server.
func (s *Server) registerTools() {
	// Full pipeline
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_repository",
		Description: describeRepository(),
	}, handleAnalyzeRepository)

	// Technology stack detection
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_tech_stack",
		Description: describeTechStack(),
	}, handleAnalyzeTechStack)

	// Dependency health
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_dependencies",
		Description: describeDependencies(),
	}, handleAnalyzeDependencies)

	// README quality
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_readme",
		Description: describeReadme(),
	}, handleAnalyzeReadme)

	// Security scan
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_security",
		Description: describeSecurity(),
	}, handleAnalyzeSecurity)

	// Technical debt
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_debt",
		Description: describeDebt(),
	}, handleAnalyzeDebt)
}
