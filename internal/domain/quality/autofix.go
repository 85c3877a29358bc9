package quality

import (
	"regexp"
	"sort"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
)

var letRe = regexp.MustCompile(`\blet\b`)

// fixers patch a single line. They return the new line, whether the line
// should be deleted, and whether anything changed.
var fixers = map[string]func(line string, column int) (string, bool, bool){
	"ts-unused-import":   removeImportLine,
	"java-unused-import": removeImportLine,
	"ts-prefer-const":    letToConst,
}

// CanFix reports whether ruleID has a line-scoped fix.
func CanFix(ruleID string) bool {
	_, ok := fixers[ruleID]
	return ok
}

func removeImportLine(line string, _ int) (string, bool, bool) {
	if strings.HasPrefix(strings.TrimSpace(line), "import ") {
		return "", true, true
	}
	return line, false, false
}

// letToConst replaces the first "let" at or after the reported column.
func letToConst(line string, column int) (string, bool, bool) {
	from := column - 1
	if from < 0 || from > len(line) {
		from = 0
	}
	loc := letRe.FindStringIndex(line[from:])
	if loc == nil {
		return line, false, false
	}
	start, end := from+loc[0], from+loc[1]
	return line[:start] + "const" + line[end:], false, true
}

// ApplyFixes applies the auto-fixable issues to copies of files. Each fix
// touches only the reported line. Fixes within a file run from the last line
// up so that earlier line numbers stay valid; an issue whose line was
// already deleted is skipped. Inputs are not modified.
func ApplyFixes(files []domain.SourceFile, issues []domain.QualityCheck) ([]domain.SourceFile, []domain.AppliedFix) {
	byFile := make(map[string][]domain.QualityCheck)
	for _, is := range issues {
		if is.CanAutoFix && CanFix(is.Rule) {
			byFile[is.File] = append(byFile[is.File], is)
		}
	}

	out := make([]domain.SourceFile, len(files))
	var applied []domain.AppliedFix
	for i, f := range files {
		out[i] = f
		pending := byFile[f.Path]
		if len(pending) == 0 {
			continue
		}
		sort.SliceStable(pending, func(a, b int) bool {
			if pending[a].Line != pending[b].Line {
				return pending[a].Line > pending[b].Line
			}
			return pending[a].Column > pending[b].Column
		})

		lines := strings.Split(f.Content, "\n")
		deleted := make(map[int]bool)
		for _, is := range pending {
			idx := is.Line - 1
			if idx < 0 || idx >= len(lines) || deleted[idx] {
				continue
			}
			line, remove, changed := fixers[is.Rule](lines[idx], is.Column)
			if !changed {
				continue
			}
			if remove {
				lines = append(lines[:idx], lines[idx+1:]...)
				deleted[idx] = true
			} else {
				lines[idx] = line
			}
			applied = append(applied, domain.AppliedFix{
				Rule:        is.Rule,
				Path:        f.Path,
				Line:        is.Line,
				Description: fixDescription(is.Rule),
			})
		}
		out[i].Content = strings.Join(lines, "\n")
	}
	return out, applied
}

func fixDescription(ruleID string) string {
	switch ruleID {
	case "ts-prefer-const":
		return "replaced let with const"
	default:
		return "removed unused import"
	}
}
