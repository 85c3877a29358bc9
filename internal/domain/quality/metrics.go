package quality

import (
	"math"
	"path"
	"regexp"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
)

// Branch points counted for file-level cyclomatic complexity. The ternary
// pattern skips optional chaining, nullish coalescing and optional-property
// markers ("?.", "??", "?:").
var complexityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bif\b`),
	regexp.MustCompile(`\belse\b`),
	regexp.MustCompile(`\bwhile\b`),
	regexp.MustCompile(`\bfor\b`),
	regexp.MustCompile(`\bswitch\b`),
	regexp.MustCompile(`\bcase\b`),
	regexp.MustCompile(`\bcatch\b`),
	regexp.MustCompile(`&&`),
	regexp.MustCompile(`\|\|`),
	regexp.MustCompile(`\?\s*[^\s?:.][^?:\n]*:`),
}

var commentRe = regexp.MustCompile(`//.*|/\*[\s\S]*?\*/`)

// Complexity returns 1 plus the number of branch points in content. It is a
// whole-file approximation, not a per-function measure.
func Complexity(content string) int {
	c := 1
	for _, re := range complexityPatterns {
		c += len(re.FindAllStringIndex(content, -1))
	}
	return c
}

// ComputeComplexity computes per-file complexity with its average and max.
func ComputeComplexity(files []domain.SourceFile) domain.ComplexityMetrics {
	m := domain.ComplexityMetrics{Files: make([]domain.FileComplexity, 0, len(files))}
	if len(files) == 0 {
		return m
	}
	total := 0
	for _, f := range files {
		c := Complexity(f.Content)
		m.Files = append(m.Files, domain.FileComplexity{File: f.Path, Complexity: c})
		total += c
		if c > m.Max {
			m.Max = c
		}
	}
	m.Average = float64(total) / float64(len(files))
	return m
}

// CommentCount counts line comments and block comments in content.
func CommentCount(content string) int {
	return len(commentRe.FindAllStringIndex(content, -1))
}

// Maintainability computes the classic maintainability index over the whole
// file set:
//
//	max(0, 171 - 5.2 ln(avgC) - 0.23 avgC - 16.2 ln(lines) + 50 sin(sqrt(2.4 commentRatio)))
//
// An empty file set scores 0.
func Maintainability(files []domain.SourceFile) domain.MaintainabilityMetrics {
	m := domain.MaintainabilityMetrics{Factors: map[string]float64{}}
	if len(files) == 0 {
		return m
	}

	var totalLines, totalComplexity, totalComments int
	for _, f := range files {
		totalLines += strings.Count(f.Content, "\n") + 1
		totalComplexity += Complexity(f.Content)
		totalComments += CommentCount(f.Content)
	}

	avg := float64(totalComplexity) / float64(len(files))
	ratio := float64(totalComments) / float64(totalLines)

	index := 171 -
		5.2*math.Log(avg) -
		0.23*avg -
		16.2*math.Log(float64(totalLines)) +
		50*math.Sin(math.Sqrt(2.4*ratio))

	m.Index = math.Max(0, index)
	m.Factors["average_complexity"] = avg
	m.Factors["total_lines"] = float64(totalLines)
	m.Factors["comment_ratio"] = ratio
	return m
}

// IsTestFile reports whether p follows a test file naming convention.
func IsTestFile(p string) bool {
	base := path.Base(p)
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.Contains(base, ".spec."),
		strings.Contains(base, ".test."),
		strings.HasSuffix(base, "Test.java"),
		strings.HasSuffix(base, "Tests.java"):
		return true
	}
	return strings.Contains(p, "__tests__/")
}

// TestCoverage estimates coverage as the ratio of test files to source
// files, capped at 100. Line, function and branch counts need runtime
// instrumentation and stay zero.
func TestCoverage(files []domain.SourceFile) domain.TestCoverageMetrics {
	var tests, sources int
	for _, f := range files {
		if IsTestFile(f.Path) {
			tests++
		} else {
			sources++
		}
	}
	if sources == 0 {
		return domain.TestCoverageMetrics{}
	}
	return domain.TestCoverageMetrics{
		Percentage: math.Min(100, float64(tests)/float64(sources)*100),
	}
}
