package postprocess

import (
	"crypto/md5"
	"encoding/hex"
	goparser "go/parser"
	"go/token"
	"path"
	"regexp"
	"strings"
)

var (
	esImportRe   = regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`)
	javaImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+?)(?:\.\*)?\s*;`)
)

// Checksum returns the hex MD5 of content.
func Checksum(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// CountLines counts "\n"-separated lines; empty content is one line.
func CountLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// ExtractDependencies lists the modules a file imports, in source order.
// Go files are read with go/parser; other files are matched against the
// ES module and Java import forms.
func ExtractDependencies(content, filePath string) []string {
	if path.Ext(filePath) == ".go" {
		if deps, ok := goImports(content); ok {
			return deps
		}
	}
	var deps []string
	for _, m := range esImportRe.FindAllStringSubmatch(content, -1) {
		deps = append(deps, m[1])
	}
	for _, m := range javaImportRe.FindAllStringSubmatch(content, -1) {
		deps = append(deps, m[1])
	}
	return deps
}

func goImports(content string) ([]string, bool) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "", content, goparser.ImportsOnly)
	if err != nil {
		return nil, false
	}
	deps := make([]string, 0, len(file.Imports))
	for _, imp := range file.Imports {
		deps = append(deps, strings.Trim(imp.Path.Value, `"`))
	}
	return deps, true
}
