package domain

// Severity levels for quality issues, ordered from most to least urgent.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule categories.
const (
	CategorySyntax          = "syntax"
	CategoryStyle           = "style"
	CategoryPerformance     = "performance"
	CategorySecurity        = "security"
	CategoryMaintainability = "maintainability"
)

// Optimization impacts.
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// QualityRule is a regex lint rule scoped to a set of frameworks.
type QualityRule struct {
	ID          string   `json:"id"                   yaml:"id"`
	Name        string   `json:"name"                 yaml:"name"`
	Description string   `json:"description"          yaml:"description"`
	Category    string   `json:"category"             yaml:"category"`
	Severity    string   `json:"severity"             yaml:"severity"`
	Frameworks  []string `json:"frameworks"           yaml:"frameworks"`
	Enabled     bool     `json:"enabled"              yaml:"enabled"`
	Pattern     string   `json:"pattern"              yaml:"pattern"`
	Message     string   `json:"message"              yaml:"message"`
	Suggestion  string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	AutoFix     bool     `json:"auto_fix"             yaml:"auto_fix"`
}

// AppliesTo reports whether the rule runs for the given framework.
func (r QualityRule) AppliesTo(framework string) bool {
	for _, f := range r.Frameworks {
		if f == framework {
			return true
		}
	}
	return false
}

// QualityCheck is one rule match in one file.
type QualityCheck struct {
	Rule       string `json:"rule"`
	Severity   string `json:"severity"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	CanAutoFix bool   `json:"can_auto_fix"`
}

type QualitySummary struct {
	TotalFiles   int `json:"total_files"`
	TotalIssues  int `json:"total_issues"`
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`
	Score        int `json:"score"`
}

// QualityReport is the outcome of analyzing a set of files.
type QualityReport struct {
	Summary     QualitySummary `json:"summary"`
	Issues      []QualityCheck `json:"issues"`
	Metrics     QualityMetrics `json:"metrics"`
	Suggestions []string       `json:"suggestions"`
	Errors      []string       `json:"errors,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}

type QualityMetrics struct {
	Complexity      ComplexityMetrics      `json:"complexity"`
	Maintainability MaintainabilityMetrics `json:"maintainability"`
	TestCoverage    TestCoverageMetrics    `json:"test_coverage"`
	Duplication     DuplicationMetrics     `json:"duplication"`
	Dependencies    DependencyMetrics      `json:"dependencies"`
}

type ComplexityMetrics struct {
	Average float64          `json:"average"`
	Max     int              `json:"max"`
	Files   []FileComplexity `json:"files"`
}

type FileComplexity struct {
	File       string `json:"file"`
	Complexity int    `json:"complexity"`
}

type MaintainabilityMetrics struct {
	Index   float64            `json:"index"`
	Factors map[string]float64 `json:"factors"`
}

type TestCoverageMetrics struct {
	Percentage float64 `json:"percentage"`
	Lines      int     `json:"lines"`
	Functions  int     `json:"functions"`
	Branches   int     `json:"branches"`
}

type DuplicationMetrics struct {
	Percentage float64          `json:"percentage"`
	Blocks     []DuplicateBlock `json:"blocks"`
}

// DuplicateBlock is a run of identical lines shared by two files.
type DuplicateBlock struct {
	File1 string `json:"file1"`
	File2 string `json:"file2"`
	Lines int    `json:"lines"`
}

type DependencyMetrics struct {
	Count    int                 `json:"count"`
	Circular []string            `json:"circular"`
	Unused   []string            `json:"unused"`
	PerFile  map[string][]string `json:"per_file,omitempty"`
}

// CodeOptimization is an advisory rewrite suggestion.
type CodeOptimization struct {
	Type        string `json:"type"`
	File        string `json:"file"`
	Description string `json:"description"`
	Before      string `json:"before"`
	After       string `json:"after"`
	Impact      string `json:"impact"`
}
