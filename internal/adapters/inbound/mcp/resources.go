package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/lowgen/internal/bootstrap"
)

const strategyURIPrefix = "lowgen://strategies/"

// registerResources registers all lowgen MCP resources on the given server.
func registerResources(s *server.MCPServer, c *bootstrap.Container) {
	// 1. lowgen://strategies - registered strategies
	s.AddResource(
		mcplib.NewResource(
			"lowgen://strategies",
			"Strategies",
			mcplib.WithResourceDescription("Registered generation strategies"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonResource(request.Params.URI, strategySummaries(c.Strategies.List()))
		},
	)

	// 2. lowgen://rules - quality rules
	s.AddResource(
		mcplib.NewResource(
			"lowgen://rules",
			"Quality Rules",
			mcplib.WithResourceDescription("Registered quality rules for every framework"),
			mcplib.WithMIMEType("application/json"),
		),
		func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
			return jsonResource(request.Params.URI, c.Quality.Rules(""))
		},
	)

	// 3. lowgen://strategies/{name} - one strategy (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"lowgen://strategies/{name}",
			"Strategy",
			mcplib.WithTemplateDescription("A generation strategy with its template mappings"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleStrategyResource(c),
	)
}

func handleStrategyResource(c *bootstrap.Container) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name := strings.TrimPrefix(request.Params.URI, strategyURIPrefix)
		if name == "" || name == request.Params.URI {
			return nil, fmt.Errorf("invalid strategy URI %q", request.Params.URI)
		}
		st, err := c.Strategies.Get(name)
		if err != nil {
			return nil, err
		}
		return jsonResource(request.Params.URI, st)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
