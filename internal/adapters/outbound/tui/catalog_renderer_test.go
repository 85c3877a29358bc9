package tui_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/strategy"
)

func TestRenderStrategies(t *testing.T) {
	out := tui.RenderStrategies(strategy.Builtins())
	for _, st := range strategy.Builtins() {
		assert.Contains(t, out, st.Name)
	}
	assert.Contains(t, out, "base, biz")

	assert.Contains(t, tui.RenderStrategies(nil), "No strategies registered.")
}

func TestRenderStrategy(t *testing.T) {
	st, ok := strategy.Builtin(strategy.NestJSStandard)
	assert.True(t, ok)

	out := tui.RenderStrategy(&st)
	assert.Contains(t, out, strategy.NestJSStandard)
	assert.Contains(t, out, "Templates")
	assert.Contains(t, out, st.Templates[0].OutputPath)
}

func TestRenderRules(t *testing.T) {
	out := tui.RenderRules([]domain.QualityRule{
		{ID: "ts-no-var", Category: domain.CategoryStyle, Severity: domain.SeverityWarning, Frameworks: []string{"nestjs"}, Enabled: true, AutoFix: true},
		{ID: "ts-async-await", Category: domain.CategoryPerformance, Severity: domain.SeverityInfo, Frameworks: []string{"nestjs"}},
	})
	assert.Contains(t, out, "ts-no-var *")
	assert.Contains(t, out, "off")
	assert.Contains(t, out, "auto-fixable")
}

func TestRenderDependencies(t *testing.T) {
	perFile := map[string][]string{}
	for i := range 20 {
		perFile[fmt.Sprintf("src/f%02d.ts", i)] = make([]string, i)
	}
	out := tui.RenderDependencies(domain.DependencyMetrics{
		Count:    190,
		Circular: []string{"src/a.ts -> src/b.ts -> src/a.ts"},
		Unused:   []string{"src/c.ts: lodash"},
		PerFile:  perFile,
	})
	assert.Contains(t, out, "20 files  ·  190 imports")
	assert.Contains(t, out, "1 circular")
	assert.Contains(t, out, "src/a.ts -> src/b.ts -> src/a.ts")
	assert.Contains(t, out, "(5 more files)")
	assert.Contains(t, out, "lodash")
	assert.Less(t, strings.Index(out, "src/f19.ts"), strings.Index(out, "src/f10.ts"))
}

func TestRenderDependencies_NoCycles(t *testing.T) {
	out := tui.RenderDependencies(domain.DependencyMetrics{})
	assert.Contains(t, out, "(none)")
	assert.NotContains(t, out, "Unused imports")
}
