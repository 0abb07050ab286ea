package main

import (
	"github.com/urfave/cli/v2"

	"assay/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes assay's analyzers
as tools that LLMs can invoke.

To use with an MCP client, add to its config:
  {
    "mcpServers": {
      "assay": {
        "command": "assay",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_repository    Full scored analysis
  - analyze_tech_stack    Framework and tooling detection
  - analyze_dependencies  Dependency health and duplicates
  - analyze_readme        README quality scoring
  - analyze_security      Unsafe-pattern scan
  - analyze_debt          Technical debt aggregation`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(c.Context)
}
