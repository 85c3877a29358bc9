package tui_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
	"github.com/openkraft/lowgen/internal/domain"
)

func sampleResult() *domain.GenerationResult {
	return &domain.GenerationResult{
		Success: true,
		Files: []domain.GeneratedFile{
			{Path: "src/orders/base/order.base-service.ts", Type: domain.FileTypeBase},
			{Path: "src/orders/order.service.ts", Type: domain.FileTypeBiz},
		},
		Skipped: []domain.SkippedFile{
			{Path: "src/orders/order.controller.ts", Reason: domain.SkipReasonBizExists},
		},
		Warnings: []string{"template nestjs-readme not found"},
		Metrics: domain.GenerationMetrics{
			TotalFiles:        2,
			TotalLines:        40,
			GenerationTime:    12 * time.Millisecond,
			LayerDistribution: map[string]int{"base": 1, "biz": 1},
		},
	}
}

func TestRenderGenerationResult(t *testing.T) {
	out := tui.RenderGenerationResult(sampleResult(), []string{"src/orders/base/order.base-service.ts"}, false)
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "2 files  ·  40 lines  ·  1 skipped")
	assert.Contains(t, out, "src/orders/order.service.ts")
	assert.Contains(t, out, "(1 existing files left untouched)")
	assert.Contains(t, out, "biz-exists")
	assert.Contains(t, out, "template nestjs-readme not found")
	assert.Less(t, strings.Index(out, "base"), strings.Index(out, "biz "))
}

func TestRenderGenerationResult_DryRunAndFailure(t *testing.T) {
	r := sampleResult()
	r.Success = false
	r.Errors = []string{"render nestjs-entity: boom"}

	out := tui.RenderGenerationResult(r, nil, true)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "render nestjs-entity: boom")
	assert.NotContains(t, out, "left untouched")
}

func TestRenderFixResult(t *testing.T) {
	out := tui.RenderFixResult(&domain.FixResult{
		Files:   []domain.SourceFile{{Path: "src/a.ts"}},
		Applied: []domain.AppliedFix{{Rule: "ts-no-var", Path: "src/a.ts", Line: 3, Description: "var replaced with let"}},
		Pending: []domain.QualityCheck{{Rule: "ts-no-eval", Severity: "error", File: "src/a.ts", Line: 7, Message: "eval is forbidden"}},
	}, false)
	assert.Contains(t, out, "Applied 1 fixes in 1 files")
	assert.Contains(t, out, "src/a.ts:3")
	assert.Contains(t, out, "var replaced with let")
	assert.Contains(t, out, "1 issues need manual attention")
	assert.Contains(t, out, "eval is forbidden")

	assert.Contains(t, tui.RenderFixResult(&domain.FixResult{}, true), "Would apply 0 fixes")
}

func TestRenderOptimizations(t *testing.T) {
	out := tui.RenderOptimizations([]domain.CodeOptimization{
		{Type: "loop", File: "src/a.ts", Description: "use map", Impact: domain.ImpactLow, Before: "for (...) {\n}", After: "items.map(fn)"},
		{Type: "async", File: "src/b.ts", Description: "await in parallel", Impact: domain.ImpactHigh},
	})
	assert.Contains(t, out, "2 optimizations")
	assert.Less(t, strings.Index(out, "await in parallel"), strings.Index(out, "use map"))
	assert.Contains(t, out, "for (...) { …")
	assert.Contains(t, out, "items.map(fn)")

	assert.Contains(t, tui.RenderOptimizations(nil), "No optimizations suggested.")
}
