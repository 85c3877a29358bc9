package quality

import (
	"math"

	"github.com/openkraft/lowgen/internal/domain"
)

// Suggestion texts, emitted in this order.
const (
	SuggestFixErrors     = "Fix all error-level issues before deployment"
	SuggestRefactor      = "Consider refactoring complex functions to improve maintainability"
	SuggestExtractShared = "Extract common code into reusable functions or modules"
	SuggestBreakCycles   = "Resolve circular dependencies to improve code structure"
	SuggestImprove       = "Overall code quality needs improvement. Focus on high-severity issues first"
)

// Score returns 100 minus the issue density against a budget of ten issues
// per file, clamped to [0, 100] and rounded. An empty file set scores 100.
func Score(totalIssues, totalFiles int) int {
	if totalFiles <= 0 {
		return 100
	}
	s := 100 - float64(totalIssues)/float64(totalFiles*10)*100
	return int(math.Round(math.Max(0, math.Min(100, s))))
}

// Summarize counts issues by severity and scores the file set.
func Summarize(issues []domain.QualityCheck, totalFiles int) domain.QualitySummary {
	s := domain.QualitySummary{
		TotalFiles:  totalFiles,
		TotalIssues: len(issues),
	}
	for _, is := range issues {
		switch is.Severity {
		case domain.SeverityError:
			s.ErrorCount++
		case domain.SeverityWarning:
			s.WarningCount++
		case domain.SeverityInfo:
			s.InfoCount++
		}
	}
	s.Score = Score(s.TotalIssues, totalFiles)
	return s
}

// Suggestions derives advice from fixed thresholds on the summary and metrics.
func Suggestions(summary domain.QualitySummary, metrics domain.QualityMetrics) []string {
	out := []string{}
	if summary.ErrorCount > 0 {
		out = append(out, SuggestFixErrors)
	}
	if metrics.Complexity.Average > 10 {
		out = append(out, SuggestRefactor)
	}
	if metrics.Duplication.Percentage > 5 {
		out = append(out, SuggestExtractShared)
	}
	if len(metrics.Dependencies.Circular) > 0 {
		out = append(out, SuggestBreakCycles)
	}
	if summary.Score < 80 {
		out = append(out, SuggestImprove)
	}
	return out
}
