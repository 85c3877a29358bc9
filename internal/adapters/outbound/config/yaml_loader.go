package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/openkraft/lowgen/internal/domain"
)

// FileName is the project config file looked up in the project directory.
const FileName = ".lowgen.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .lowgen.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .lowgen.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before merging so typos in the raw input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return mergeConfig(domain.DefaultConfigForFramework(cfg.Framework), cfg), nil
}

// mergeConfig overlays explicit overrides on top of framework defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if override.Strategy != "" {
		result.Strategy = override.Strategy
	}
	result.Schema = override.Schema
	result.OutputDir = override.OutputDir
	result.Workers = override.Workers
	result.TemplatesDir = override.TemplatesDir
	result.StrategyFiles = override.StrategyFiles
	result.Options = override.Options

	a := override.Analysis
	if a.MaxDuplicationFiles > 0 {
		result.Analysis.MaxDuplicationFiles = a.MaxDuplicationFiles
	}
	if a.MaxPairComparisons > 0 {
		result.Analysis.MaxPairComparisons = a.MaxPairComparisons
	}
	// Explicit excludes replace framework defaults entirely.
	if len(a.ExcludePaths) > 0 {
		result.Analysis.ExcludePaths = a.ExcludePaths
	}
	result.Analysis.DisabledRules = a.DisabledRules
	result.Analysis.Rules = a.Rules
	result.Analysis.MinScore = a.MinScore

	return result
}
