package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/lowgen/internal/adapters/outbound/filesystem"
	"github.com/openkraft/lowgen/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/lowgen/internal/adapters/outbound/history"
	"github.com/openkraft/lowgen/internal/application"
	"github.com/openkraft/lowgen/internal/domain"
)

func sampleGeneration() *domain.GenerationResult {
	return &domain.GenerationResult{
		RunID:   "run-1",
		Success: true,
		Files: []domain.GeneratedFile{
			{Path: "out/base.ts", Content: "base v2", Type: domain.FileTypeBase, Checksum: "b2"},
			{Path: "out/service.ts", Content: "biz v2", Type: domain.FileTypeBiz, Checksum: "s2"},
			{Path: "out/service.test.ts", Content: "test v2", Type: domain.FileTypeTest, Checksum: "t2"},
			{Path: "out/package.json", Content: "{}", Type: domain.FileTypeConfig, Checksum: "p2"},
		},
		Skipped: []domain.SkippedFile{{Path: "out/other.ts", Reason: domain.SkipReasonBizExists}},
	}
}

func TestMaterializer_WriteRespectsLayers(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.Write("out/base.ts", "base v1"))
	require.NoError(t, fs.Write("out/service.ts", "biz v1"))
	m := application.NewMaterializer(fs, nil, nil, nil)

	out, err := m.Write(context.Background(), sampleGeneration(), domain.DefaultGenerationOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"out/base.ts", "out/service.test.ts", "out/package.json"}, out.Written)
	assert.Equal(t, []string{"out/service.ts"}, out.Skipped)

	base, _ := fs.Read("out/base.ts")
	assert.Equal(t, "base v2", base)
	biz, _ := fs.Read("out/service.ts")
	assert.Equal(t, "biz v1", biz)
}

func TestMaterializer_WriteWithoutOverwriteBase(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.Write("out/base.ts", "base v1"))
	m := application.NewMaterializer(fs, nil, nil, nil)

	out, err := m.Write(context.Background(), sampleGeneration(), domain.GenerationOptions{})
	require.NoError(t, err)
	assert.Contains(t, out.Skipped, "out/base.ts")
	base, _ := fs.Read("out/base.ts")
	assert.Equal(t, "base v1", base)
}

func TestMaterializer_WriteOverwriteBiz(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.Write("out/service.ts", "biz v1"))
	m := application.NewMaterializer(fs, nil, nil, nil)

	out, err := m.Write(context.Background(), sampleGeneration(), domain.GenerationOptions{OverwriteBase: true, OverwriteBiz: true})
	require.NoError(t, err)
	assert.Len(t, out.Written, 4)
	assert.Empty(t, out.Skipped)
}

func TestMaterializer_WriteCancelled(t *testing.T) {
	m := application.NewMaterializer(filesystem.NewMemory(), nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Write(ctx, sampleGeneration(), domain.DefaultGenerationOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaterializer_Record(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	m := application.NewMaterializer(filesystem.NewMemory(), h, gitinfo.New(), nil)

	require.NoError(t, m.Record(dir, "nestjs-standard", sampleGeneration()))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "nestjs-standard", e.Strategy)
	assert.True(t, e.Success)
	assert.Equal(t, 4, e.FileCount)
	assert.Equal(t, 1, e.Skipped)
	assert.Equal(t, "s2", e.Checksums["out/service.ts"])
	assert.Empty(t, e.CommitHash)
	assert.False(t, e.Timestamp.IsZero())
}

func TestMaterializer_RecordWithoutHistory(t *testing.T) {
	m := application.NewMaterializer(filesystem.NewMemory(), nil, nil, nil)
	assert.NoError(t, m.Record(t.TempDir(), "x", sampleGeneration()))
}
