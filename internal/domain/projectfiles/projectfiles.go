// Package projectfiles builds the framework-scoped files of a generation run
// that do not belong to a single entity: manifests, build config and docs.
package projectfiles

import (
	"fmt"
	"sort"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/naming"
)

// Builder produces the project-level files for one framework.
type Builder func(gctx *domain.GenerationContext) ([]domain.GeneratedFile, error)

var builders = map[string]Builder{
	"nestjs":      buildNestJS,
	"spring-boot": buildSpringBoot,
	"go":          buildGo,
}

// For returns the builder registered for framework.
func For(framework string) (Builder, bool) {
	b, ok := builders[framework]
	return b, ok
}

// Frameworks lists the frameworks with project-level builders, sorted.
func Frameworks() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build runs the builder for the strategy's framework. Frameworks without a
// builder produce no files.
func Build(gctx *domain.GenerationContext) ([]domain.GeneratedFile, error) {
	if gctx.Strategy == nil {
		return nil, nil
	}
	b, ok := For(gctx.Strategy.Framework)
	if !ok {
		return nil, nil
	}
	files, err := b(gctx)
	if err != nil {
		return nil, fmt.Errorf("building %s project files: %w", gctx.Strategy.Framework, err)
	}
	return files, nil
}

func projectName(p domain.Project) string {
	if p.Name == "" {
		return "app"
	}
	return naming.ToKebabCase(naming.ToPascalCase(p.Name))
}

func projectVersion(p domain.Project) string {
	if p.Version == "" {
		return "0.1.0"
	}
	return p.Version
}

func configFile(path, content string) domain.GeneratedFile {
	return domain.GeneratedFile{Path: path, Content: content, Type: domain.FileTypeConfig}
}
