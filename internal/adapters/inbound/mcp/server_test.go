package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/openkraft/lowgen/internal/adapters/inbound/mcp"
	"github.com/openkraft/lowgen/internal/bootstrap"
	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/strategy"
)

func newServer(t *testing.T, projectPath string) *server.MCPServer {
	t.Helper()
	c, err := bootstrap.NewContainer(context.Background(), bootstrap.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return mcpadapter.NewServer(c, projectPath)
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q should be registered", name)

	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func copyProject(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join("..", "..", "..", "..", "testdata", "projects", name))))
	return dir
}

func TestMCPServerHasTools(t *testing.T) {
	s := newServer(t, ".")

	expectedTools := []string{
		"lowgen_generate",
		"lowgen_analyze",
		"lowgen_optimize",
		"lowgen_fix",
		"lowgen_list_strategies",
		"lowgen_get_strategy",
		"lowgen_list_rules",
	}

	tools := s.ListTools()
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func TestGenerateToolDescribesDocs(t *testing.T) {
	s := newServer(t, ".")

	tool, ok := s.ListTools()["lowgen_generate"]
	require.True(t, ok)
	docs, ok := tool.Tool.InputSchema.Properties["docs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Write docs/<entity>.md per entity (fields and relations)", docs["description"])
}

func TestListStrategies(t *testing.T) {
	s := newServer(t, ".")
	res := call(t, s, "lowgen_list_strategies", nil)
	require.False(t, res.IsError)

	var got []struct {
		Name      string `json:"name"`
		Templates int    `json:"templates"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	names := make([]string, 0, len(got))
	for _, g := range got {
		names = append(names, g.Name)
		assert.Positive(t, g.Templates)
	}
	assert.Contains(t, names, strategy.NestJSStandard)
	assert.Contains(t, names, strategy.GoStandard)
}

func TestGetStrategy(t *testing.T) {
	s := newServer(t, ".")

	res := call(t, s, "lowgen_get_strategy", map[string]any{"name": strategy.SpringBootStandard})
	require.False(t, res.IsError)
	var st domain.GenerationStrategy
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &st))
	assert.Equal(t, "spring-boot", st.Framework)

	res = call(t, s, "lowgen_get_strategy", map[string]any{"name": "nope"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "strategy not found")

	res = call(t, s, "lowgen_get_strategy", nil)
	assert.True(t, res.IsError)
}

func TestListRules(t *testing.T) {
	s := newServer(t, ".")
	res := call(t, s, "lowgen_list_rules", map[string]any{"framework": "go"})
	require.False(t, res.IsError)

	var rules []domain.QualityRule
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rules))
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.True(t, r.AppliesTo("go"), r.ID)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "testdata", "schemas", "shop.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shop.yaml"), schema, 0o644))
	s := newServer(t, dir)

	res := call(t, s, "lowgen_generate", map[string]any{"schema": "shop.yaml", "output_dir": "gen", "dry_run": true})
	require.False(t, res.IsError, text(t, res))
	_, err = os.Stat(filepath.Join(dir, "gen"))
	assert.True(t, os.IsNotExist(err), "dry run writes nothing")

	res = call(t, s, "lowgen_generate", map[string]any{"schema": "shop.yaml", "output_dir": "gen", "tests": true})
	require.False(t, res.IsError, text(t, res))
	var outcome struct {
		Strategy string `json:"strategy"`
		Result   struct {
			Success bool `json:"success"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &outcome))
	assert.Equal(t, strategy.NestJSStandard, outcome.Strategy)
	assert.True(t, outcome.Result.Success)

	_, err = os.Stat(filepath.Join(dir, "gen", "src", "services", "order.service.ts"))
	assert.NoError(t, err)
}

func TestGenerate_Errors(t *testing.T) {
	s := newServer(t, t.TempDir())

	res := call(t, s, "lowgen_generate", nil)
	assert.True(t, res.IsError)

	res = call(t, s, "lowgen_generate", map[string]any{"schema": "missing.yaml"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "generation failed")
}

func TestAnalyzeAndFix(t *testing.T) {
	dir := copyProject(t, "nestjs-shop")
	s := newServer(t, dir)

	res := call(t, s, "lowgen_analyze", nil)
	require.False(t, res.IsError, text(t, res))
	var report domain.QualityReport
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &report))
	assert.Equal(t, 2, report.Summary.TotalFiles)

	res = call(t, s, "lowgen_fix", map[string]any{"dry_run": true, "rule": "ts-prefer-const"})
	require.False(t, res.IsError, text(t, res))
	var fix domain.FixResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &fix))
	assert.Len(t, fix.Applied, 1)

	res = call(t, s, "lowgen_optimize", nil)
	assert.False(t, res.IsError)
}

func TestAnalyze_MissingPath(t *testing.T) {
	s := newServer(t, t.TempDir())
	res := call(t, s, "lowgen_analyze", map[string]any{"path": "does-not-exist"})
	assert.True(t, res.IsError)
}
