// Package postprocess holds the content passes applied to rendered files:
// import optimization, formatting, validation and file fingerprints.
package postprocess

import (
	"sort"
	"strings"
)

// OptimizeImports sorts and deduplicates single-line import statements and
// separates them from the body with one blank line. Lines before the first
// import (package clauses, generated headers) stay in place. Content with no
// imports, or with multi-line import statements, is returned unchanged.
// OptimizeImports(OptimizeImports(c)) == OptimizeImports(c).
func OptimizeImports(content string) string {
	lines := strings.Split(content, "\n")

	first := -1
	for i, line := range lines {
		if isImportLine(line) {
			if isMultilineImport(line) {
				return content
			}
			if first < 0 {
				first = i
			}
		}
	}
	if first < 0 {
		return content
	}

	seen := make(map[string]bool)
	var imports, body []string
	for _, line := range lines[first:] {
		if isImportLine(line) {
			key := strings.TrimSpace(line)
			if !seen[key] {
				seen[key] = true
				imports = append(imports, key)
			}
			continue
		}
		body = append(body, line)
	}
	sort.Strings(imports)

	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:first]...)
	out = append(out, imports...)
	out = append(out, "")
	out = append(out, body...)
	return strings.Join(out, "\n")
}

// SortedImports returns the distinct single-line imports of content in order.
func SortedImports(content string) []string {
	var imports []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		if !isImportLine(line) {
			continue
		}
		key := strings.TrimSpace(line)
		if !seen[key] {
			seen[key] = true
			imports = append(imports, key)
		}
	}
	sort.Strings(imports)
	return imports
}

func isImportLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "import ")
}

// isMultilineImport reports import statements that continue on later lines:
// Go import blocks and destructured ES imports split across lines.
func isMultilineImport(line string) bool {
	t := strings.TrimSpace(line)
	if strings.HasSuffix(t, "(") {
		return true
	}
	return strings.Count(t, "{") > strings.Count(t, "}")
}
