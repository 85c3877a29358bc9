package application_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/lowgen/internal/adapters/outbound/detector"
	"github.com/openkraft/lowgen/internal/adapters/outbound/filesystem"
	"github.com/openkraft/lowgen/internal/adapters/outbound/history"
	"github.com/openkraft/lowgen/internal/adapters/outbound/renderer"
	"github.com/openkraft/lowgen/internal/adapters/outbound/schemafile"
	"github.com/openkraft/lowgen/internal/adapters/outbound/strategystore"
	"github.com/openkraft/lowgen/internal/application"
	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/strategy"
)

var shopSchema = filepath.Join("..", "..", "testdata", "schemas", "shop.yaml")

func newProjectService(t *testing.T) (*application.ProjectService, *application.StrategyService, *history.FileHistory) {
	t.Helper()
	strategies := application.NewStrategyService(strategystore.NewMemory(), nil)
	require.NoError(t, strategies.Init(context.Background()))
	r, err := renderer.New("")
	require.NoError(t, err)
	fs := filesystem.NewOS()
	h := history.New()
	svc := application.NewProjectService(
		strategies,
		application.NewGenerationService(fs, r),
		application.NewMaterializer(fs, h, nil, nil),
		schemafile.New(),
		nil,
	)
	return svc, strategies, h
}

func TestProjectService_Generate(t *testing.T) {
	svc, _, h := newProjectService(t)
	out := t.TempDir()

	outcome, err := svc.Generate(context.Background(), application.GenerateRequest{
		SchemaPath: shopSchema,
		OutputDir:  out,
	})
	require.NoError(t, err)

	assert.Equal(t, strategy.NestJSStandard, outcome.Strategy, "taken from the schema")
	assert.True(t, outcome.Result.Success)
	require.NotNil(t, outcome.Written)
	assert.Len(t, outcome.Written.Written, len(outcome.Result.Files))

	_, err = os.Stat(filepath.Join(out, "package.json"))
	assert.NoError(t, err)

	entries, err := h.Load(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, outcome.Result.RunID, entries[0].RunID)
}

func TestProjectService_SecondRunKeepsBizFiles(t *testing.T) {
	svc, _, _ := newProjectService(t)
	out := t.TempDir()
	req := application.GenerateRequest{SchemaPath: shopSchema, OutputDir: out}

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	var biz string
	for _, f := range first.Result.Files {
		if f.Type == domain.FileTypeBiz {
			biz = f.Path
			break
		}
	}
	require.NotEmpty(t, biz)
	require.NoError(t, os.WriteFile(biz, []byte("// hand written"), 0o644))

	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, second.Result.Skipped)

	data, err := os.ReadFile(biz)
	require.NoError(t, err)
	assert.Equal(t, "// hand written", string(data))
}

func TestProjectService_DryRunWritesNothing(t *testing.T) {
	svc, _, _ := newProjectService(t)
	out := t.TempDir()

	outcome, err := svc.Generate(context.Background(), application.GenerateRequest{
		SchemaPath: shopSchema,
		OutputDir:  out,
		Strategy:   strategy.GoStandard,
		DryRun:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, strategy.GoStandard, outcome.Strategy, "request wins over the schema")
	assert.Nil(t, outcome.Written)
	assert.NotEmpty(t, outcome.Result.Files)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProjectService_ConfigFallbacks(t *testing.T) {
	svc, _, _ := newProjectService(t)
	dir := t.TempDir()
	data, err := os.ReadFile(shopSchema)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.yaml"), data, 0o644))

	yes := true
	outcome, err := svc.Generate(context.Background(), application.GenerateRequest{
		ProjectDir: dir,
		Config: domain.ProjectConfig{
			Schema:    "schema.yaml",
			OutputDir: "gen",
			Options:   &domain.OptionOverride{GenerateDocs: &yes},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gen"), outcome.OutputDir)
	assert.Positive(t, outcome.Result.Metrics.LayerDistribution[string(domain.FileTypeDoc)])
}

func TestProjectService_Errors(t *testing.T) {
	svc, _, _ := newProjectService(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, application.GenerateRequest{})
	assert.ErrorContains(t, err, "no schema file given")

	_, err = svc.Generate(ctx, application.GenerateRequest{SchemaPath: shopSchema, Strategy: "nope", DryRun: true})
	assert.ErrorIs(t, err, domain.ErrStrategyNotFound)

	_, err = svc.Generate(ctx, application.GenerateRequest{SchemaPath: "missing.yaml"})
	assert.ErrorContains(t, err, "reading schema")
}

func TestProjectService_StrategyFromDetectedFramework(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(shopSchema)
	require.NoError(t, err)
	schema := filepath.Join(dir, "shop.yaml")
	require.NoError(t, os.WriteFile(schema, []byte(strings.Replace(string(data), "strategy: nestjs-standard\n", "", 1)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/shop\n\ngo 1.24\n"), 0o644))
	req := application.GenerateRequest{ProjectDir: dir, SchemaPath: schema, DryRun: true}
	ctx := context.Background()

	svc, _, _ := newProjectService(t)
	_, err = svc.Generate(ctx, req)
	assert.ErrorContains(t, err, "no strategy given")

	svc.SetDetector(detector.New())
	outcome, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, strategy.GoStandard, outcome.Strategy)
	assert.True(t, outcome.Result.Success)

	// The config still wins over detection.
	req.Config = domain.DefaultConfigForFramework("spring-boot")
	outcome, err = svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, strategy.SpringBootStandard, outcome.Strategy)
}

func TestProjectService_LoadStrategyFiles(t *testing.T) {
	svc, strategies, _ := newProjectService(t)
	dir := t.TempDir()

	st := minimalStrategy("team-nest")
	require.NoError(t, strategystore.WriteFile(filepath.Join(dir, "team.yaml"), st))

	require.NoError(t, svc.LoadStrategyFiles(context.Background(), dir, []string{"team.yaml"}, strategystore.ReadFile))
	got, err := strategies.Get("team-nest")
	require.NoError(t, err)
	assert.Equal(t, "nestjs", got.Framework)

	err = svc.LoadStrategyFiles(context.Background(), dir, []string{"missing.yaml"}, strategystore.ReadFile)
	assert.Error(t, err)
}
