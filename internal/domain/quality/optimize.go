package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/postprocess"
)

var declRe = regexp.MustCompile(`(?:let|const|var)\s+(\w+)`)

// OptimizeFile proposes rewrites for a single file: import ordering, unused
// variable removal and merging filter/map chains. Nothing is applied.
func OptimizeFile(file domain.SourceFile, framework string) []domain.CodeOptimization {
	var out []domain.CodeOptimization

	if imports := importLines(file.Content); len(imports) > 1 {
		sorted := postprocess.SortedImports(file.Content)
		if strings.Join(imports, "\n") != strings.Join(sorted, "\n") {
			out = append(out, domain.CodeOptimization{
				Type:        "import",
				File:        file.Path,
				Description: "Sort and organize import statements",
				Before:      strings.Join(imports, "\n"),
				After:       strings.Join(sorted, "\n"),
				Impact:      domain.ImpactLow,
			})
		}
	}

	if unused := unusedVariables(file.Content); len(unused) > 0 {
		before := make([]string, len(unused))
		for i, name := range unused {
			before[i] = fmt.Sprintf("// Variable '%s' is declared but never used", name)
		}
		out = append(out, domain.CodeOptimization{
			Type:        "unused",
			File:        file.Path,
			Description: "Remove unused variables: " + strings.Join(unused, ", "),
			Before:      strings.Join(before, "\n"),
			After:       "// Unused variables removed",
			Impact:      domain.ImpactMedium,
		})
	}

	if framework != "spring-boot" && strings.Contains(file.Content, ".map(") && strings.Contains(file.Content, ".filter(") {
		out = append(out, domain.CodeOptimization{
			Type:        "performance",
			File:        file.Path,
			Description: "Combine map and filter operations",
			Before:      "array.filter(condition).map(transform)",
			After:       "array.reduce((acc, item) => condition(item) ? [...acc, transform(item)] : acc, [])",
			Impact:      domain.ImpactMedium,
		})
	}
	return out
}

func importLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(line); strings.HasPrefix(t, "import ") {
			out = append(out, t)
		}
	}
	return out
}

// unusedVariables returns declared names that occur exactly once, in
// declaration order.
func unusedVariables(content string) []string {
	seen := make(map[string]bool)
	var unused []string
	for _, m := range declRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if len(re.FindAllStringIndex(content, -1)) == 1 {
			unused = append(unused, name)
		}
	}
	return unused
}
