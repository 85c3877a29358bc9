package projectfiles

import (
	"fmt"
	"path"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/naming"
	"github.com/openkraft/lowgen/internal/domain/resolver"
)

// EntityDoc renders docs/<entity-name>.md: a title, the description, a
// fields table and the relations the entity takes part in.
func EntityDoc(e domain.Entity, gctx *domain.GenerationContext) domain.GeneratedFile {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", naming.Humanize(e.Name))
	if e.Description != "" {
		b.WriteString(e.Description + "\n\n")
	}
	if gctx.Strategy != nil {
		if table := gctx.Strategy.NamingConventions.Entity.TableName; table != "" {
			fmt.Fprintf(&b, "Table: `%s`\n\n", resolver.ResolveName(table, e))
		}
	}

	b.WriteString("## Fields\n\n")
	if len(e.Fields) == 0 {
		b.WriteString("_No fields._\n")
	} else {
		b.WriteString("| Name | Type | Required | Unique | Description |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, f := range e.Fields {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				f.Name, f.Type, yesNo(f.Required), yesNo(f.Unique), f.Description)
		}
	}

	if len(e.Relations) > 0 {
		b.WriteString("\n## Relations\n\n")
		b.WriteString("| Type | Source | Target | Field |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, r := range e.Relations {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				r.Type, entityLabel(r.SourceEntityID, gctx), entityLabel(r.TargetEntityID, gctx), r.Field)
		}
	}

	name := naming.ToKebabCase(naming.ToPascalCase(e.Name))
	return domain.GeneratedFile{
		Path:    path.Join(gctx.Options.OutputDir, "docs", name+".md"),
		Content: b.String(),
		Type:    domain.FileTypeDoc,
	}
}

func entityLabel(ref string, gctx *domain.GenerationContext) string {
	for _, e := range gctx.Entities {
		if e.ID != "" && e.ID == ref {
			return e.Name
		}
	}
	return ref
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
