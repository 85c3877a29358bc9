// Package mcp exposes lowgen's generation and analysis over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/lowgen/internal/bootstrap"
)

// NewServer creates an MCP server with every lowgen tool and resource
// registered. projectPath is the default project for tools that take a path.
func NewServer(c *bootstrap.Container, projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"lowgen",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, c, projectPath)
	registerResources(s, c)

	return s
}
