// Package quality implements regex rule linting, file-level metrics,
// duplication and dependency analysis, scoring and line-scoped auto-fixes.
package quality

import "github.com/openkraft/lowgen/internal/domain"

var (
	tsFrameworks       = []string{"nestjs", "express", "react"}
	securityFrameworks = []string{"nestjs", "spring-boot", "express", "go"}
)

// DefaultRules returns the built-in rule table.
func DefaultRules() []domain.QualityRule {
	return []domain.QualityRule{
		// TypeScript / JavaScript
		{
			ID:          "ts-unused-import",
			Name:        "Unused Import",
			Description: "Detect unused import statements",
			Category:    domain.CategoryMaintainability,
			Severity:    domain.SeverityWarning,
			Frameworks:  tsFrameworks,
			Enabled:     true,
			Pattern:     `import\s+.*?\s+from\s+['"][^'"]+['"]`,
			Message:     "Unused import detected",
			Suggestion:  "Remove unused import to reduce bundle size",
			AutoFix:     true,
		},
		{
			ID:          "ts-no-any",
			Name:        "No Any Type",
			Description: "Avoid using any type",
			Category:    domain.CategoryMaintainability,
			Severity:    domain.SeverityWarning,
			Frameworks:  tsFrameworks,
			Enabled:     true,
			Pattern:     `:\s*any\b`,
			Message:     "Avoid using any type",
			Suggestion:  "Use specific types for better type safety",
		},
		{
			ID:          "ts-prefer-const",
			Name:        "Prefer Const",
			Description: "Use const for variables that are never reassigned",
			Category:    domain.CategoryStyle,
			Severity:    domain.SeverityInfo,
			Frameworks:  tsFrameworks,
			Enabled:     true,
			Pattern:     `let\s+\w+\s*=`,
			Message:     "Use const instead of let for variables that are never reassigned",
			Suggestion:  "Replace let with const",
			AutoFix:     true,
		},
		{
			ID:          "ts-no-console",
			Name:        "No Console",
			Description: "Avoid console statements in production code",
			Category:    domain.CategoryPerformance,
			Severity:    domain.SeverityWarning,
			Frameworks:  tsFrameworks,
			Enabled:     true,
			Pattern:     `console\.(log|error|warn|info)`,
			Message:     "Console statement found",
			Suggestion:  "Use proper logging framework instead of console",
		},
		{
			ID:          "ts-async-await",
			Name:        "Prefer Async/Await",
			Description: "Prefer async/await over Promise chains",
			Category:    domain.CategoryStyle,
			Severity:    domain.SeverityInfo,
			Frameworks:  []string{"nestjs", "express"},
			Enabled:     true,
			Pattern:     `\.then\(`,
			Message:     "Consider using async/await instead of Promise chains",
			Suggestion:  "Refactor to use async/await for better readability",
		},

		// Java
		{
			ID:          "java-unused-import",
			Name:        "Unused Import",
			Description: "Detect unused import statements",
			Category:    domain.CategoryMaintainability,
			Severity:    domain.SeverityWarning,
			Frameworks:  []string{"spring-boot"},
			Enabled:     true,
			Pattern:     `import\s+[\w\.]+;`,
			Message:     "Unused import detected",
			Suggestion:  "Remove unused import",
			AutoFix:     true,
		},
		{
			ID:          "java-naming-convention",
			Name:        "Naming Convention",
			Description: "Follow Java naming conventions",
			Category:    domain.CategoryStyle,
			Severity:    domain.SeverityWarning,
			Frameworks:  []string{"spring-boot"},
			Enabled:     true,
			Pattern:     `class\s+[a-z]`,
			Message:     "Class names should start with uppercase letter",
			Suggestion:  "Use PascalCase for class names",
		},
		{
			ID:          "java-magic-numbers",
			Name:        "Magic Numbers",
			Description: "Avoid magic numbers in code",
			Category:    domain.CategoryMaintainability,
			Severity:    domain.SeverityWarning,
			Frameworks:  []string{"spring-boot"},
			Enabled:     true,
			Pattern:     `\b\d{2,}\b`,
			Message:     "Magic number detected",
			Suggestion:  "Extract magic numbers to named constants",
		},

		// Go
		{
			ID:          "go-no-panic",
			Name:        "No Panic",
			Description: "Avoid panics in library and handler code",
			Category:    domain.CategoryMaintainability,
			Severity:    domain.SeverityWarning,
			Frameworks:  []string{"go"},
			Enabled:     true,
			Pattern:     `\bpanic\(`,
			Message:     "panic call found",
			Suggestion:  "Return an error instead of panicking",
		},
		{
			ID:          "go-no-print",
			Name:        "No Print",
			Description: "Avoid fmt print statements in production code",
			Category:    domain.CategoryStyle,
			Severity:    domain.SeverityInfo,
			Frameworks:  []string{"go"},
			Enabled:     true,
			Pattern:     `fmt\.Print(ln|f)?\(`,
			Message:     "Print statement found",
			Suggestion:  "Use log/slog instead of fmt printing",
		},

		// Security
		{
			ID:          "security-sql-injection",
			Name:        "SQL Injection Risk",
			Description: "Detect potential SQL injection vulnerabilities",
			Category:    domain.CategorySecurity,
			Severity:    domain.SeverityError,
			Frameworks:  securityFrameworks,
			Enabled:     true,
			Pattern:     `query\s*\+\s*['"]`,
			Message:     "Potential SQL injection vulnerability",
			Suggestion:  "Use parameterized queries or ORM methods",
		},
		{
			ID:          "security-hardcoded-secrets",
			Name:        "Hardcoded Secrets",
			Description: "Detect hardcoded secrets in code",
			Category:    domain.CategorySecurity,
			Severity:    domain.SeverityError,
			Frameworks:  securityFrameworks,
			Enabled:     true,
			Pattern:     `(password|secret|key|token)\s*[=:]\s*['"][^'"]{8,}['"]`,
			Message:     "Hardcoded secret detected",
			Suggestion:  "Move secrets to environment variables or secure configuration",
		},

		// Performance
		{
			ID:          "performance-n-plus-one",
			Name:        "N+1 Query Problem",
			Description: "Detect potential N+1 query problems",
			Category:    domain.CategoryPerformance,
			Severity:    domain.SeverityWarning,
			Frameworks:  []string{"nestjs", "spring-boot"},
			Enabled:     true,
			Pattern:     `for\s*\([^)]+\)\s*\{[^}]*find`,
			Message:     "Potential N+1 query problem",
			Suggestion:  "Use batch loading or eager loading",
		},
		{
			ID:          "performance-large-objects",
			Name:        "Large Object Creation",
			Description: "Detect creation of potentially large objects",
			Category:    domain.CategoryPerformance,
			Severity:    domain.SeverityInfo,
			Frameworks:  []string{"nestjs", "spring-boot", "express"},
			Enabled:     true,
			Pattern:     `new\s+(Array|Object|Map|Set)\s*\(`,
			Message:     "Large object creation detected",
			Suggestion:  "Consider object pooling or lazy initialization",
		},
	}
}
