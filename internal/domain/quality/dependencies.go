package quality

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/postprocess"
)

var (
	esImportClauseRe = regexp.MustCompile(`^\s*import\s+(.+?)\s+from\s+['"]([^'"]+)['"]`)
	javaImportLineRe = regexp.MustCompile(`^\s*import\s+(static\s+)?([\w.]+)\s*;`)
)

var resolvableExts = []string{"", ".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.js"}

// AnalyzeDependencies extracts each file's imports, counts the distinct
// modules, finds import cycles between files of the set and flags imported
// names that are never referenced again in the importing file.
func AnalyzeDependencies(files []domain.SourceFile) domain.DependencyMetrics {
	m := domain.DependencyMetrics{
		Circular: []string{},
		Unused:   []string{},
		PerFile:  make(map[string][]string, len(files)),
	}

	distinct := make(map[string]bool)
	for _, f := range files {
		deps := postprocess.ExtractDependencies(f.Content, f.Path)
		m.PerFile[f.Path] = deps
		for _, d := range deps {
			distinct[d] = true
		}
		m.Unused = append(m.Unused, unusedImports(f)...)
	}
	m.Count = len(distinct)
	m.Circular = findCycles(buildGraph(files, m.PerFile))
	return m
}

// buildGraph links files whose imports resolve to other files of the set:
// relative ES module specifiers and fully qualified Java class names.
func buildGraph(files []domain.SourceFile, perFile map[string][]string) map[string][]string {
	byPath := make(map[string]bool, len(files))
	for _, f := range files {
		byPath[f.Path] = true
	}

	graph := make(map[string][]string, len(files))
	for _, f := range files {
		for _, dep := range perFile[f.Path] {
			if target, ok := resolveImport(f.Path, dep, byPath, files); ok && target != f.Path {
				graph[f.Path] = append(graph[f.Path], target)
			}
		}
	}
	return graph
}

func resolveImport(from, dep string, byPath map[string]bool, files []domain.SourceFile) (string, bool) {
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		base := path.Join(path.Dir(from), dep)
		for _, ext := range resolvableExts {
			if byPath[base+ext] {
				return base + ext, true
			}
		}
		return "", false
	}
	if path.Ext(from) == ".java" && strings.Contains(dep, ".") {
		suffix := "/" + strings.ReplaceAll(dep, ".", "/") + ".java"
		for _, f := range files {
			if strings.HasSuffix("/"+f.Path, suffix) {
				return f.Path, true
			}
		}
	}
	return "", false
}

// findCycles reports each elementary cycle reachable by depth-first search
// once, rotated to start at its smallest path: "a -> b -> a".
func findCycles(graph map[string][]string) []string {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(graph))
	seen := make(map[string]bool)
	cycles := []string{}
	var stack []string

	var visit func(n string)
	visit = func(n string) {
		state[n] = active
		stack = append(stack, n)
		for _, next := range graph[n] {
			switch state[next] {
			case unvisited:
				visit(next)
			case active:
				start := len(stack) - 1
				for stack[start] != next {
					start--
				}
				key := canonicalCycle(stack[start:])
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, key)
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
	}

	nodes := make([]string, 0, len(graph))
	for n := range graph {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	for _, n := range nodes {
		if state[n] == unvisited {
			visit(n)
		}
	}
	sort.Strings(cycles)
	return cycles
}

func canonicalCycle(nodes []string) string {
	lo := 0
	for i, n := range nodes {
		if n < nodes[lo] {
			lo = i
		}
	}
	rotated := append(append([]string(nil), nodes[lo:]...), nodes[:lo]...)
	rotated = append(rotated, rotated[0])
	return strings.Join(rotated, " -> ")
}

// unusedImports returns "file: name" for every imported binding that does
// not appear outside import lines.
func unusedImports(f domain.SourceFile) []string {
	lines := strings.Split(f.Content, "\n")
	var names []string
	var body strings.Builder
	for _, line := range lines {
		if m := esImportClauseRe.FindStringSubmatch(line); m != nil {
			names = append(names, importBindings(m[1])...)
			continue
		}
		if m := javaImportLineRe.FindStringSubmatch(line); m != nil {
			if m[1] == "" {
				parts := strings.Split(m[2], ".")
				names = append(names, parts[len(parts)-1])
			}
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	text := body.String()
	var unused []string
	for _, name := range names {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if !re.MatchString(text) {
			unused = append(unused, fmt.Sprintf("%s: %s", f.Path, name))
		}
	}
	return unused
}

// importBindings lists the local names an ES import clause introduces:
// "A", "{ B, C as D }", "* as E" and combinations.
func importBindings(clause string) []string {
	var names []string
	clause = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(clause), "type "))
	if open := strings.Index(clause, "{"); open >= 0 {
		end := strings.Index(clause, "}")
		if end > open {
			for _, spec := range strings.Split(clause[open+1:end], ",") {
				spec = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(spec), "type "))
				if spec == "" {
					continue
				}
				if _, alias, ok := strings.Cut(spec, " as "); ok {
					spec = strings.TrimSpace(alias)
				}
				names = append(names, spec)
			}
			clause = clause[:open] + clause[end+1:]
		}
	}
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, alias, ok := strings.Cut(part, " as "); ok {
			part = strings.TrimSpace(alias)
		}
		if part != "*" {
			names = append(names, part)
		}
	}
	return names
}
