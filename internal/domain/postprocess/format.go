package postprocess

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/tools/imports"
)

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	looseBraceRe    = regexp.MustCompile(`([\w)>])[ \t]*\n[ \t]*\{[ \t]*\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	multiStmtRe     = regexp.MustCompile(`;[ \t]+([^\s/])`)
)

// Format applies a lightweight reflow chosen by file extension. Go sources
// go through goimports in format-only mode; TypeScript, JavaScript and Java
// get brace placement, one statement per line, trimmed trailing whitespace
// and collapsed blank runs. Other files, and Go files that do not parse, are
// returned unchanged.
func Format(content, filePath string) string {
	switch path.Ext(filePath) {
	case ".go":
		return formatGo(content, filePath)
	case ".ts", ".tsx", ".js", ".jsx", ".java":
		return reflow(content)
	default:
		return content
	}
}

func formatGo(content, filePath string) string {
	out, err := imports.Process(filePath, []byte(content), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return content
	}
	return string(out)
}

func reflow(content string) string {
	s := strings.ReplaceAll(content, "\r\n", "\n")
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = looseBraceRe.ReplaceAllString(s, "$1 {\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, splitStatements(line)...)
	}
	s = strings.Join(out, "\n")

	s = blankRunRe.ReplaceAllString(s, "\n\n")
	s = strings.TrimRight(s, " \t\n") + "\n"
	return s
}

// splitStatements puts each ";"-terminated statement of a line on its own
// line. Loop headers, comments and lines with string literals are left alone.
func splitStatements(line string) []string {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "//") || strings.HasPrefix(t, "*") || strings.HasPrefix(t, "/*") ||
		strings.Contains(t, "for (") || strings.Contains(t, "for(") ||
		strings.ContainsAny(t, "'\"`") {
		return []string{line}
	}
	if !multiStmtRe.MatchString(line) {
		return []string{line}
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	parts := strings.Split(multiStmtRe.ReplaceAllString(line, ";\n$1"), "\n")
	for i := 1; i < len(parts); i++ {
		parts[i] = indent + parts[i]
	}
	return parts
}
