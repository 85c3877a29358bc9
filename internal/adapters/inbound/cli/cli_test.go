package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/lowgen/internal/adapters/inbound/cli"
	"github.com/openkraft/lowgen/internal/domain"
)

var testdata = filepath.Join("..", "..", "..", "..", "testdata")

// run executes the root command with a throwaway registry.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"--registry", ":memory:"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func copyProject(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(filepath.Join(testdata, "projects", name))))
	return dir
}

func shopSchema(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdata, "schemas", "shop.yaml"))
	require.NoError(t, err)
	p := filepath.Join(dir, "shop.yaml")
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lowgen dev (none)")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	schema := shopSchema(t, dir)
	gen := filepath.Join(dir, "gen")

	out, err := run(t, "generate", dir, "--schema", schema, "--out", gen)
	require.NoError(t, err)
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "order.service.ts")

	svc := filepath.Join(gen, "src", "services", "order.service.ts")
	require.NoError(t, os.WriteFile(svc, []byte("// mine\n"), 0o644))

	out, err = run(t, "generate", dir, "--schema", schema, "--out", gen)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped")

	data, err := os.ReadFile(svc)
	require.NoError(t, err)
	assert.Equal(t, "// mine\n", string(data), "business file kept")

	out, err = run(t, "history", dir, "--out", gen)
	require.NoError(t, err)
	assert.Contains(t, out, "Generation History")
	assert.Contains(t, out, "nestjs-standard")
}

func TestGenerateCommand_DocsAndValidateFlags(t *testing.T) {
	help, err := run(t, "generate", "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "Write docs/<entity>.md per entity")
	assert.Contains(t, help, "{placeholder} tokens")
	assert.NotContains(t, help, "README")
	assert.NotContains(t, help, "brackets")

	dir := t.TempDir()
	schema := shopSchema(t, dir)
	gen := filepath.Join(dir, "gen")
	_, err = run(t, "generate", dir, "--schema", schema, "--out", gen, "--docs", "--validate")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(gen, "docs", "order.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(gen, "README.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommand_DryRunJSON(t *testing.T) {
	dir := t.TempDir()
	schema := shopSchema(t, dir)
	gen := filepath.Join(dir, "gen")

	out, err := run(t, "generate", dir, "--schema", schema, "--out", gen, "--dry-run", "--json", "--strategy", "go-standard")
	require.NoError(t, err)

	var outcome struct {
		Strategy string `json:"strategy"`
		DryRun   bool   `json:"dry_run"`
		Result   struct {
			Success bool                   `json:"success"`
			Files   []domain.GeneratedFile `json:"files"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &outcome))
	assert.Equal(t, "go-standard", outcome.Strategy)
	assert.True(t, outcome.DryRun)
	assert.True(t, outcome.Result.Success)
	assert.NotEmpty(t, outcome.Result.Files)

	_, err = os.Stat(gen)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "generate", dir)
	assert.ErrorContains(t, err, "no schema file given")

	_, err = run(t, "generate", dir, "--metrics-addr", ":0")
	assert.ErrorContains(t, err, "--metrics-addr requires --watch")

	schema := shopSchema(t, dir)
	_, err = run(t, "generate", dir, "--schema", schema, "--strategy", "nope", "--dry-run")
	assert.ErrorIs(t, err, domain.ErrStrategyNotFound)
}

func TestGenerateCommand_UsesConfig(t *testing.T) {
	dir := t.TempDir()
	shopSchema(t, dir)
	cfg := "framework: nestjs\nschema: shop.yaml\noutput_dir: out\noptions:\n  generate_docs: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lowgen.yaml"), []byte(cfg), 0o644))

	_, err := run(t, "generate", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "out", "docs", "order.md"))
	assert.NoError(t, err, "docs enabled by config")

	out, err := run(t, "history", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "nestjs-standard")
}

func TestAnalyzeCommand(t *testing.T) {
	dir := copyProject(t, "nestjs-shop")

	out, err := run(t, "analyze", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Code Quality")
	assert.Contains(t, out, "2 files analyzed")

	out, err = run(t, "analyze", dir, "--json")
	require.NoError(t, err)
	var report domain.QualityReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Summary.TotalFiles)

	_, err = run(t, "analyze", dir, "--min", "101")
	assert.ErrorContains(t, err, "below minimum 101")
}

func TestDepsAndOptimizeCommands(t *testing.T) {
	dir := copyProject(t, "nestjs-shop")

	out, err := run(t, "deps", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "imports")

	out, err = run(t, "optimize", dir, "--json")
	require.NoError(t, err)
	var opts []domain.CodeOptimization
	assert.NoError(t, json.Unmarshal([]byte(out), &opts))
}

func TestFixCommand(t *testing.T) {
	dir := copyProject(t, "nestjs-shop")
	file := filepath.Join(dir, "src", "orders", "order.service.ts")

	out, err := run(t, "fix", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would apply")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "let sum")

	out, err = run(t, "fix", dir, "--rule", "ts-prefer-const")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied")
	data, err = os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "const sum = 0;")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules", t.TempDir(), "--framework", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "go-no-print")
	assert.NotContains(t, out, "ts-no-console")
}

func TestStrategyCommands(t *testing.T) {
	out, err := run(t, "strategy", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "nestjs-standard")
	assert.Contains(t, out, "spring-boot-standard")

	out, err = run(t, "strategy", "show", "go-standard")
	require.NoError(t, err)
	assert.Contains(t, out, "go-entity")

	_, err = run(t, "strategy", "show", "nope")
	assert.ErrorIs(t, err, domain.ErrStrategyNotFound)
}

func TestStrategyCommands_PersistentRegistry(t *testing.T) {
	dir := t.TempDir()
	registry := filepath.Join(dir, "registry.db")
	exported := filepath.Join(dir, "custom.yaml")
	runWith := func(args ...string) (string, error) {
		cmd := cli.NewRootCmdForTest()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs(append([]string{"--registry", registry}, args...))
		err := cmd.Execute()
		return buf.String(), err
	}

	_, err := runWith("strategy", "show", "nestjs-standard", "--export", exported)
	require.NoError(t, err)

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	data = bytes.Replace(data, []byte("name: nestjs-standard"), []byte("name: nestjs-custom"), 1)
	require.NoError(t, os.WriteFile(exported, data, 0o644))

	out, err := runWith("strategy", "create", "-f", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Created strategy nestjs-custom")

	_, err = runWith("strategy", "create", "-f", exported)
	assert.ErrorIs(t, err, domain.ErrStrategyExists)

	patch := filepath.Join(dir, "patch.yaml")
	require.NoError(t, os.WriteFile(patch, []byte("description: tuned\n"), 0o644))
	_, err = runWith("strategy", "update", "nestjs-custom", "-f", patch)
	require.NoError(t, err)

	out, err = runWith("strategy", "show", "nestjs-custom", "--json")
	require.NoError(t, err)
	var st domain.GenerationStrategy
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "tuned", st.Description)

	_, err = runWith("strategy", "delete", "nestjs-custom")
	require.NoError(t, err)
	_, err = runWith("strategy", "show", "nestjs-custom")
	assert.ErrorIs(t, err, domain.ErrStrategyNotFound)
}

func TestStrategyCreate_RequiresFile(t *testing.T) {
	_, err := run(t, "strategy", "create")
	assert.ErrorContains(t, err, "--file is required")
}

func TestInitCommand(t *testing.T) {
	dir := copyProject(t, "spring-shop")

	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "for spring-boot")

	data, err := os.ReadFile(filepath.Join(dir, ".lowgen.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "framework: spring-boot")
	assert.Contains(t, string(data), "strategy: spring-boot-standard")

	_, err = run(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", dir, "--force", "--framework", "go")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(dir, ".lowgen.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "strategy: go-standard")

	_, err = run(t, "init", t.TempDir(), "--framework", "cobol")
	assert.ErrorContains(t, err, "unknown framework")
}

func TestInitCommand_ConfigLoads(t *testing.T) {
	dir := copyProject(t, "nestjs-shop")
	require.NoError(t, os.Remove(filepath.Join(dir, ".lowgen.yaml")))

	_, err := run(t, "init", dir)
	require.NoError(t, err)

	out, err := run(t, "rules", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ts-no-console")
}

func TestLogFlags(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}
