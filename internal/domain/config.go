package domain

import "fmt"

// Default analysis limits. Duplication detection is quadratic in file count.
const (
	DefaultMaxDuplicationFiles = 200
	DefaultMaxPairComparisons  = 20000
)

// ValidFrameworks enumerates the frameworks with built-in support.
var ValidFrameworks = []string{"nestjs", "spring-boot", "express", "react", "go"}

// ProjectConfig holds project-level configuration loaded from .lowgen.yaml.
type ProjectConfig struct {
	Framework     string          `yaml:"framework"      json:"framework,omitempty"`
	Strategy      string          `yaml:"strategy"       json:"strategy,omitempty"`
	Schema        string          `yaml:"schema"         json:"schema,omitempty"`
	OutputDir     string          `yaml:"output_dir"     json:"output_dir,omitempty"`
	Workers       int             `yaml:"workers"        json:"workers,omitempty"`
	TemplatesDir  string          `yaml:"templates_dir"  json:"templates_dir,omitempty"`
	StrategyFiles []string        `yaml:"strategy_files" json:"strategy_files,omitempty"`
	Options       *OptionOverride `yaml:"options,omitempty" json:"options,omitempty"`
	Analysis      AnalysisConfig  `yaml:"analysis"       json:"analysis,omitempty"`
}

// OptionOverride allows the config file to override generation options.
// Pointer types distinguish "not specified" from false.
type OptionOverride struct {
	OverwriteBase   *bool `yaml:"overwrite_base,omitempty"   json:"overwrite_base,omitempty"`
	OverwriteBiz    *bool `yaml:"overwrite_biz,omitempty"    json:"overwrite_biz,omitempty"`
	GenerateTests   *bool `yaml:"generate_tests,omitempty"   json:"generate_tests,omitempty"`
	GenerateDocs    *bool `yaml:"generate_docs,omitempty"    json:"generate_docs,omitempty"`
	OptimizeImports *bool `yaml:"optimize_imports,omitempty" json:"optimize_imports,omitempty"`
	FormatCode      *bool `yaml:"format_code,omitempty"      json:"format_code,omitempty"`
	ValidateCode    *bool `yaml:"validate_code,omitempty"    json:"validate_code,omitempty"`
}

// Apply overlays the explicitly set options onto opts.
func (o *OptionOverride) Apply(opts GenerationOptions) GenerationOptions {
	if o == nil {
		return opts
	}
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&opts.OverwriteBase, o.OverwriteBase)
	set(&opts.OverwriteBiz, o.OverwriteBiz)
	set(&opts.GenerateTests, o.GenerateTests)
	set(&opts.GenerateDocs, o.GenerateDocs)
	set(&opts.OptimizeImports, o.OptimizeImports)
	set(&opts.FormatCode, o.FormatCode)
	set(&opts.ValidateCode, o.ValidateCode)
	return opts
}

// AnalysisConfig tunes the quality analyzer.
type AnalysisConfig struct {
	MaxDuplicationFiles int           `yaml:"max_duplication_files" json:"max_duplication_files,omitempty"`
	MaxPairComparisons  int           `yaml:"max_pair_comparisons"  json:"max_pair_comparisons,omitempty"`
	DisabledRules       []string      `yaml:"disabled_rules"        json:"disabled_rules,omitempty"`
	Rules               []QualityRule `yaml:"rules"                 json:"rules,omitempty"`
	ExcludePaths        []string      `yaml:"exclude_paths"         json:"exclude_paths,omitempty"`
	MinScore            int           `yaml:"min_score"             json:"min_score,omitempty"`
}

// DefaultConfig returns a config with analysis limits set and nothing else.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Analysis: AnalysisConfig{
			MaxDuplicationFiles: DefaultMaxDuplicationFiles,
			MaxPairComparisons:  DefaultMaxPairComparisons,
		},
	}
}

// DefaultConfigForFramework returns sensible defaults for a given framework.
func DefaultConfigForFramework(framework string) ProjectConfig {
	cfg := DefaultConfig()
	cfg.Framework = framework

	switch framework {
	case "nestjs":
		cfg.Strategy = "nestjs-standard"
		cfg.Analysis.ExcludePaths = []string{"dist", "coverage"}
	case "spring-boot":
		cfg.Strategy = "spring-boot-standard"
		cfg.Analysis.ExcludePaths = []string{"target", "build"}
	case "go":
		cfg.Strategy = "go-standard"
		cfg.Analysis.ExcludePaths = []string{"vendor"}
	case "express", "react":
		cfg.Analysis.ExcludePaths = []string{"dist", "build", "coverage"}
	}

	return cfg
}

// IsDisabledRule reports whether the named rule is switched off.
func (c ProjectConfig) IsDisabledRule(id string) bool {
	for _, r := range c.Analysis.DisabledRules {
		if r == id {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. framework must be known or empty
	if c.Framework != "" && !isValidFramework(c.Framework) {
		return fmt.Errorf("unknown framework %q (valid: nestjs, spring-boot, express, react, go)", c.Framework)
	}

	// 2. workers must not be negative
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	// 3. analysis limits must not be negative
	if c.Analysis.MaxDuplicationFiles < 0 {
		return fmt.Errorf("analysis.max_duplication_files must be >= 0 (got %d)", c.Analysis.MaxDuplicationFiles)
	}
	if c.Analysis.MaxPairComparisons < 0 {
		return fmt.Errorf("analysis.max_pair_comparisons must be >= 0 (got %d)", c.Analysis.MaxPairComparisons)
	}

	// 4. min_score must be a score
	if c.Analysis.MinScore < 0 || c.Analysis.MinScore > 100 {
		return fmt.Errorf("analysis.min_score = %d (must be between 0 and 100)", c.Analysis.MinScore)
	}

	// 5. extra rules need an id, a pattern and a known severity
	for i, r := range c.Analysis.Rules {
		if r.ID == "" {
			return fmt.Errorf("analysis.rules[%d].id must not be empty", i)
		}
		if r.Pattern == "" {
			return fmt.Errorf("analysis.rules[%d].pattern must not be empty", i)
		}
		switch r.Severity {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			return fmt.Errorf("analysis.rules[%d].severity %q (valid: error, warning, info)", i, r.Severity)
		}
	}

	return nil
}

func isValidFramework(name string) bool {
	for _, f := range ValidFrameworks {
		if f == name {
			return true
		}
	}
	return false
}
