package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/lowgen/internal/application"
	"github.com/openkraft/lowgen/internal/bootstrap"
	"github.com/openkraft/lowgen/internal/domain"
)

// registerTools registers all lowgen MCP tools on the given server.
func registerTools(s *server.MCPServer, c *bootstrap.Container, projectPath string) {
	// 1. lowgen_generate
	s.AddTool(
		mcplib.NewTool("lowgen_generate",
			mcplib.WithDescription("Generate code from an entity schema file. Base files are rewritten, existing business files are kept. Returns the generation result as JSON"),
			mcplib.WithString("schema", mcplib.Required(), mcplib.Description("Schema file (YAML or JSON), relative to the project")),
			mcplib.WithString("strategy", mcplib.Description("Strategy name (default: from the schema, .lowgen.yaml, then the detected framework)")),
			mcplib.WithString("output_dir", mcplib.Description("Output directory relative to the project")),
			mcplib.WithBoolean("dry_run", mcplib.Description("Render without writing files")),
			mcplib.WithBoolean("tests", mcplib.Description("Generate test companions for business files")),
			mcplib.WithBoolean("docs", mcplib.Description("Write docs/<entity>.md per entity (fields and relations)")),
			mcplib.WithBoolean("overwrite_biz", mcplib.Description("Overwrite existing business files")),
		),
		handleGenerate(c, projectPath),
	)

	// 2. lowgen_analyze
	s.AddTool(
		mcplib.NewTool("lowgen_analyze",
			mcplib.WithDescription("Run the quality rules over the project and return the quality report as JSON"),
			mcplib.WithString("path", mcplib.Description("Project path (default: the served project)")),
			mcplib.WithString("framework", mcplib.Description("Framework rules to apply (default: config, then detected)")),
		),
		handleAnalyze(c, projectPath),
	)

	// 3. lowgen_optimize
	s.AddTool(
		mcplib.NewTool("lowgen_optimize",
			mcplib.WithDescription("Return advisory code optimizations for the project"),
			mcplib.WithString("path", mcplib.Description("Project path (default: the served project)")),
			mcplib.WithString("framework", mcplib.Description("Framework (default: config, then detected)")),
		),
		handleOptimize(c, projectPath),
	)

	// 4. lowgen_fix
	s.AddTool(
		mcplib.NewTool("lowgen_fix",
			mcplib.WithDescription("Apply auto-fixes for quality issues and list the issues that need manual attention"),
			mcplib.WithString("path", mcplib.Description("Project path (default: the served project)")),
			mcplib.WithString("framework", mcplib.Description("Framework (default: config, then detected)")),
			mcplib.WithString("rule", mcplib.Description("Only apply fixes for this rule")),
			mcplib.WithBoolean("dry_run", mcplib.Description("Show fixes without writing files")),
		),
		handleFix(c, projectPath),
	)

	// 5. lowgen_list_strategies
	s.AddTool(
		mcplib.NewTool("lowgen_list_strategies",
			mcplib.WithDescription("List the registered generation strategies"),
		),
		handleListStrategies(c),
	)

	// 6. lowgen_get_strategy
	s.AddTool(
		mcplib.NewTool("lowgen_get_strategy",
			mcplib.WithDescription("Return a generation strategy with its template mappings"),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Strategy name")),
		),
		handleGetStrategy(c),
	)

	// 7. lowgen_list_rules
	s.AddTool(
		mcplib.NewTool("lowgen_list_rules",
			mcplib.WithDescription("List the quality rules, optionally for one framework"),
			mcplib.WithString("framework", mcplib.Description("Only rules for this framework")),
		),
		handleListRules(c),
	)
}

func handleGenerate(c *bootstrap.Container, projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		schema, err := request.RequireString("schema")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := c.Configs.Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		args := request.GetArguments()
		var opts *domain.OptionOverride
		for key, dst := range map[string]func(o *domain.OptionOverride, v bool){
			"tests":         func(o *domain.OptionOverride, v bool) { o.GenerateTests = &v },
			"docs":          func(o *domain.OptionOverride, v bool) { o.GenerateDocs = &v },
			"overwrite_biz": func(o *domain.OptionOverride, v bool) { o.OverwriteBiz = &v },
		} {
			if v, ok := args[key].(bool); ok {
				if opts == nil {
					opts = &domain.OptionOverride{}
				}
				dst(opts, v)
			}
		}

		outputDir := request.GetString("output_dir", "")
		if outputDir != "" {
			outputDir = inProject(projectPath, outputDir)
		}

		outcome, err := c.Projects.Generate(ctx, application.GenerateRequest{
			ProjectDir: projectPath,
			Config:     cfg,
			SchemaPath: inProject(projectPath, schema),
			Strategy:   request.GetString("strategy", ""),
			OutputDir:  outputDir,
			Options:    opts,
			DryRun:     request.GetBool("dry_run", false),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("generation failed: %v", err)), nil
		}
		return jsonResult(outcome)
	}
}

func handleAnalyze(c *bootstrap.Container, projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path := inProject(projectPath, request.GetString("path", ""))
		report, err := c.Quality.AnalyzeProject(ctx, path, request.GetString("framework", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleOptimize(c *bootstrap.Container, projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path := inProject(projectPath, request.GetString("path", ""))
		opts, err := c.Quality.OptimizeProject(path, request.GetString("framework", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("optimize failed: %v", err)), nil
		}
		return jsonResult(opts)
	}
}

func handleFix(c *bootstrap.Container, projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path := inProject(projectPath, request.GetString("path", ""))
		result, err := c.Quality.FixProject(ctx, path, request.GetString("framework", ""), domain.FixOptions{
			DryRun: request.GetBool("dry_run", false),
			Rule:   request.GetString("rule", ""),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleListStrategies(c *bootstrap.Container) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(strategySummaries(c.Strategies.List()))
	}
}

func handleGetStrategy(c *bootstrap.Container) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		st, err := c.Strategies.Get(name)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(st)
	}
}

func handleListRules(c *bootstrap.Container) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(c.Quality.Rules(request.GetString("framework", "")))
	}
}

// strategySummary is the listing form of a strategy, without its templates.
type strategySummary struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Framework   string         `json:"framework"`
	Layers      []domain.Layer `json:"layers"`
	Features    []string       `json:"features"`
	Templates   int            `json:"templates"`
}

func strategySummaries(strategies []domain.GenerationStrategy) []strategySummary {
	out := make([]strategySummary, 0, len(strategies))
	for _, st := range strategies {
		out = append(out, strategySummary{
			Name:        st.Name,
			Description: st.Description,
			Framework:   st.Framework,
			Layers:      st.Layers,
			Features:    st.Features,
			Templates:   len(st.Templates),
		})
	}
	return out
}

// inProject resolves p against the served project unless it is absolute.
func inProject(projectPath, p string) string {
	if p == "" {
		return projectPath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// jsonResult marshals v as indented JSON and returns it as a text result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
