package projectfiles

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/naming"
	"github.com/openkraft/lowgen/internal/domain/postprocess"
	"github.com/openkraft/lowgen/internal/domain/resolver"
)

const goVersion = "1.24"

func buildGo(gctx *domain.GenerationContext) ([]domain.GeneratedFile, error) {
	module := GoModule(gctx.Project)

	registry, err := goRegistry(gctx, module)
	if err != nil {
		return nil, err
	}

	return []domain.GeneratedFile{
		configFile(path.Join(gctx.Options.OutputDir, "go.mod"), goMod(module, gctx.Strategy.Dependencies)),
		configFile(resolver.Join(gctx, "registry/registry.go"), registry),
	}, nil
}

// GoModule is the module path of a generated Go project.
func GoModule(p domain.Project) string {
	if p.Module != "" {
		return p.Module
	}
	return "example.com/" + projectName(p)
}

func goMod(module string, deps []domain.DependencyConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n\ngo %s\n", module, goVersion)
	if len(deps) > 0 {
		b.WriteString("\nrequire (\n")
		for _, d := range deps {
			fmt.Fprintf(&b, "\t%s %s\n", d.Name, d.Version)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// goRegistry renders a package listing every generated entity with its
// table name and a constructor.
func goRegistry(gctx *domain.GenerationContext, module string) (string, error) {
	entitiesDir := gctx.Strategy.FileStructure.Directories["entities"]
	if entitiesDir == "" {
		entitiesDir = "domain"
	}
	domainPath := path.Join(module, gctx.Strategy.FileStructure.BaseDir, entitiesDir)
	tablePattern := gctx.Strategy.NamingConventions.Entity.TableName
	if tablePattern == "" {
		tablePattern = "{entity_names}"
	}

	f := jen.NewFilePathName(path.Join(module, gctx.Strategy.FileStructure.BaseDir, "registry"), "registry")
	f.HeaderComment(postprocess.GeneratedMarker)

	names := make([]string, len(gctx.Entities))
	tables := jen.Dict{}
	for i, e := range gctx.Entities {
		names[i] = naming.ToPascalCase(e.Name)
		tables[jen.Lit(names[i])] = jen.Lit(resolver.ResolveName(tablePattern, e))
	}

	f.Comment("Entities lists the entity types generated for this project.")
	f.Var().Id("Entities").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, n := range names {
			g.Lit(n)
		}
	})

	f.Comment("TableNames maps each entity to its table.")
	f.Var().Id("TableNames").Op("=").Map(jen.String()).String().Values(tables)

	for _, n := range names {
		f.Commentf("New%s returns an empty %s.", n, n)
		f.Func().Id("New" + n).Params().Op("*").Qual(domainPath, n).Block(
			jen.Return(jen.Op("&").Qual(domainPath, n).Values()),
		)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering registry.go: %w", err)
	}
	return buf.String(), nil
}
