package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkraft/lowgen/internal/domain"
)

func TestDefaultConfig_ChangesNothing(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Empty(t, cfg.Framework)
	assert.Empty(t, cfg.Strategy)
	assert.Nil(t, cfg.Options)
	assert.Empty(t, cfg.Analysis.DisabledRules)
	assert.Positive(t, cfg.Analysis.MaxDuplicationFiles)
	assert.Positive(t, cfg.Analysis.MaxPairComparisons)
}

func TestDefaultConfigForFramework(t *testing.T) {
	tests := []struct {
		framework string
		strategy  string
		excludes  string
	}{
		{"nestjs", "nestjs-standard", "dist"},
		{"spring-boot", "spring-boot-standard", "target"},
		{"go", "go-standard", ""},
	}
	for _, tt := range tests {
		t.Run(tt.framework, func(t *testing.T) {
			cfg := domain.DefaultConfigForFramework(tt.framework)
			assert.Equal(t, tt.framework, cfg.Framework)
			assert.Equal(t, tt.strategy, cfg.Strategy)
			if tt.excludes != "" {
				assert.Contains(t, cfg.Analysis.ExcludePaths, tt.excludes)
			}
		})
	}
}

func TestIsDisabledRule(t *testing.T) {
	cfg := domain.ProjectConfig{Analysis: domain.AnalysisConfig{DisabledRules: []string{"ts-no-console"}}}
	assert.True(t, cfg.IsDisabledRule("ts-no-console"))
	assert.False(t, cfg.IsDisabledRule("ts-prefer-const"))
}

func TestOptionOverride_Apply(t *testing.T) {
	base := domain.DefaultGenerationOptions()

	var nilOverride *domain.OptionOverride
	assert.Equal(t, base, nilOverride.Apply(base))

	no, yes := false, true
	got := (&domain.OptionOverride{OverwriteBase: &no, GenerateTests: &yes}).Apply(base)
	assert.False(t, got.OverwriteBase)
	assert.True(t, got.GenerateTests)
	assert.False(t, got.OverwriteBiz, "unset options are kept")
}

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	assert.NoError(t, domain.ProjectConfig{}.Validate())
	assert.NoError(t, domain.DefaultConfigForFramework("nestjs").Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProjectConfig
		want string
	}{
		{"framework", domain.ProjectConfig{Framework: "rails"}, "unknown framework"},
		{"workers", domain.ProjectConfig{Workers: -1}, "workers must be >= 0"},
		{"dup files", domain.ProjectConfig{Analysis: domain.AnalysisConfig{MaxDuplicationFiles: -1}}, "max_duplication_files"},
		{"pairs", domain.ProjectConfig{Analysis: domain.AnalysisConfig{MaxPairComparisons: -1}}, "max_pair_comparisons"},
		{"min score", domain.ProjectConfig{Analysis: domain.AnalysisConfig{MinScore: 101}}, "min_score"},
		{"rule id", domain.ProjectConfig{Analysis: domain.AnalysisConfig{Rules: []domain.QualityRule{{Pattern: "x", Severity: "info"}}}}, "rules[0].id"},
		{"rule pattern", domain.ProjectConfig{Analysis: domain.AnalysisConfig{Rules: []domain.QualityRule{{ID: "r", Severity: "info"}}}}, "rules[0].pattern"},
		{"rule severity", domain.ProjectConfig{Analysis: domain.AnalysisConfig{Rules: []domain.QualityRule{{ID: "r", Pattern: "x", Severity: "fatal"}}}}, "severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.want)
		})
	}
}
