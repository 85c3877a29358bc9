package renderer

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/naming"
	"github.com/openkraft/lowgen/internal/domain/projectfiles"
	"github.com/openkraft/lowgen/internal/domain/resolver"
)

// View is the data every template executes against.
type View struct {
	Entity  domain.Entity
	Project domain.Project

	Name        string
	Camel       string
	Kebab       string
	Snake       string
	Plural      string
	PluralKebab string
	Human       string
	HumanPlural string

	ClassName      string
	ServiceName    string
	ControllerName string
	TableName      string
	RoutePath      string
	CreateDTO      string
	UpdateDTO      string
	QueryDTO       string

	Fields    []FieldView
	Relations []RelationView
	Features  map[string]bool

	// Imports needed by the field types, per language.
	FieldImports []string
	// TypeScript: class-validator decorators used by the fields.
	Validators []string
	// TypeScript: entity classes imported for relations.
	RelationImports []RelationView
	// TypeScript: TypeORM relation decorators used by the entity.
	Decorators []string

	// Java base package.
	Package string

	// Go import paths.
	Module           string
	DomainImport     string
	RepositoryImport string
	ServiceImport    string
}

type FieldView struct {
	Name          string
	Pascal        string
	Column        string
	Type          string
	Required      bool
	Unique        bool
	Length        int
	Default       string
	Description   string
	ColumnOptions string
	Validator     string
	ValidateTag   string
}

// RelationView is a relation seen from the rendered entity.
type RelationView struct {
	Type        domain.RelationType
	Decorator   string
	Target      string
	TargetKebab string
	Property    string
	Many        bool
	Owner       bool
	InverseOf   string
}

func newView(entity domain.Entity, gctx *domain.GenerationContext) View {
	st := gctx.Strategy
	lang := languageOf(st.Framework)
	pascal := naming.ToPascalCase(entity.Name)
	plural := naming.Pluralize(pascal)
	conv := st.NamingConventions

	v := View{
		Entity:      entity,
		Project:     gctx.Project,
		Name:        pascal,
		Camel:       naming.ToCamelCase(pascal),
		Kebab:       naming.ToKebabCase(pascal),
		Snake:       naming.ToSnakeCase(pascal),
		Plural:      plural,
		PluralKebab: naming.ToKebabCase(plural),
		Human:       naming.Humanize(pascal),
		HumanPlural: naming.Humanize(plural),

		ClassName:      nameOr(conv.Entity.ClassName, "{EntityName}", entity),
		ServiceName:    nameOr(conv.Service.ClassName, "{EntityName}Service", entity),
		ControllerName: nameOr(conv.Controller.ClassName, "{EntityName}Controller", entity),
		TableName:      nameOr(conv.Entity.TableName, "{entity_names}", entity),
		RoutePath:      nameOr(conv.Controller.RoutePath, "{entity-names}", entity),
		CreateDTO:      nameOr(conv.DTO.CreateClassName, "Create{EntityName}Dto", entity),
		UpdateDTO:      nameOr(conv.DTO.UpdateClassName, "Update{EntityName}Dto", entity),
		QueryDTO:       nameOr(conv.DTO.QueryClassName, "Query{EntityName}Dto", entity),

		Features: make(map[string]bool, len(st.Features)),
		Package:  projectfiles.JavaGroup(gctx.Project),
		Module:   projectfiles.GoModule(gctx.Project),
	}
	for _, f := range st.Features {
		v.Features[f] = true
	}

	dirs := st.FileStructure.Directories
	goPath := func(key, fallback string) string {
		d := dirs[key]
		if d == "" {
			d = fallback
		}
		return path.Join(v.Module, st.FileStructure.BaseDir, d)
	}
	v.DomainImport = goPath("entities", "domain")
	v.RepositoryImport = goPath("repository", "repository")
	v.ServiceImport = goPath("services", "service")

	imports := map[string]bool{}
	validators := map[string]bool{}
	for _, f := range entity.Fields {
		if strings.EqualFold(f.Name, "id") {
			continue
		}
		t := lookupType(lang, f.Type)
		if t.Import != "" {
			imports[t.Import] = true
		}
		fv := FieldView{
			Name:        naming.ToCamelCase(f.Name),
			Pascal:      goExported(f.Name),
			Column:      naming.ToSnakeCase(naming.ToCamelCase(f.Name)),
			Type:        t.Name,
			Required:    f.Required,
			Unique:      f.Unique,
			Length:      f.Length,
			Default:     f.DefaultValue,
			Description: f.Description,
		}
		switch lang {
		case "ts":
			fv.ColumnOptions = tsColumnOptions(f)
			fv.Validator = tsValidator(t.Name)
			if fv.Validator != "" {
				validators[fv.Validator] = true
			}
			if !f.Required {
				validators["IsOptional"] = true
			}
		case "go":
			if v.Features["validation"] {
				fv.ValidateTag = goValidateTag(f)
			}
		}
		v.Fields = append(v.Fields, fv)
	}
	v.FieldImports = sortedKeys(imports)
	v.Validators = sortedKeys(validators)

	seen := map[string]bool{}
	decorators := map[string]bool{}
	for _, r := range entity.Relations {
		rv, ok := relationView(r, entity, gctx)
		if !ok {
			continue
		}
		v.Relations = append(v.Relations, rv)
		decorators[rv.Decorator] = true
		if rv.Owner && rv.Type == domain.RelationOneToOne {
			decorators["JoinColumn"] = true
		}
		if rv.Owner && rv.Type == domain.RelationManyToMany {
			decorators["JoinTable"] = true
		}
		if rv.Target != v.ClassName && !seen[rv.Target] {
			seen[rv.Target] = true
			v.RelationImports = append(v.RelationImports, rv)
		}
	}
	v.Decorators = sortedKeys(decorators)
	return v
}

func nameOr(pattern, fallback string, e domain.Entity) string {
	if pattern == "" {
		pattern = fallback
	}
	return resolver.ResolveName(pattern, e)
}

// relationView orients r from entity's side. Relations that do not touch
// entity, or whose other end is unknown, are dropped.
func relationView(r domain.Relation, entity domain.Entity, gctx *domain.GenerationContext) (RelationView, bool) {
	isSource := refersTo(r.SourceEntityID, entity)
	isTarget := refersTo(r.TargetEntityID, entity)
	if !isSource && !isTarget {
		return RelationView{}, false
	}

	otherRef := r.TargetEntityID
	typ := r.Type
	if !isSource {
		otherRef = r.SourceEntityID
		typ = invert(r.Type)
	}
	other, ok := findEntity(otherRef, gctx.Entities)
	if !ok {
		return RelationView{}, false
	}

	target := naming.ToPascalCase(other.Name)
	many := typ == domain.RelationOneToMany || typ == domain.RelationManyToMany
	prop := naming.ToCamelCase(target)
	if isSource && r.Field != "" {
		prop = naming.ToCamelCase(r.Field)
	} else if many {
		prop = naming.ToCamelCase(naming.Pluralize(target))
	}

	rv := RelationView{
		Type:        typ,
		Decorator:   naming.ToPascalCase(string(typ)),
		Target:      target,
		TargetKebab: naming.ToKebabCase(target),
		Property:    prop,
		Many:        many,
		Owner:       isSource,
	}
	if typ == domain.RelationOneToMany {
		rv.InverseOf = naming.ToCamelCase(naming.ToPascalCase(entity.Name))
		if !isSource && r.Field != "" {
			rv.InverseOf = naming.ToCamelCase(r.Field)
		}
	}
	return rv, true
}

func refersTo(ref string, e domain.Entity) bool {
	return ref != "" && (ref == e.ID || ref == e.Name)
}

func findEntity(ref string, entities []domain.Entity) (domain.Entity, bool) {
	for _, e := range entities {
		if refersTo(ref, e) {
			return e, true
		}
	}
	return domain.Entity{}, false
}

func invert(t domain.RelationType) domain.RelationType {
	switch t {
	case domain.RelationOneToMany:
		return domain.RelationManyToOne
	case domain.RelationManyToOne:
		return domain.RelationOneToMany
	default:
		return t
	}
}

func tsColumnOptions(f domain.Field) string {
	var opts []string
	if !f.Required {
		opts = append(opts, "nullable: true")
	}
	if f.Unique {
		opts = append(opts, "unique: true")
	}
	if f.Length > 0 {
		opts = append(opts, fmt.Sprintf("length: %d", f.Length))
	}
	if len(opts) == 0 {
		return ""
	}
	return "{ " + strings.Join(opts, ", ") + " }"
}

func goValidateTag(f domain.Field) string {
	var tags []string
	if f.Required {
		tags = append(tags, "required")
	} else {
		tags = append(tags, "omitempty")
	}
	if strings.EqualFold(f.Type, "email") {
		tags = append(tags, "email")
	}
	if f.Length > 0 {
		tags = append(tags, fmt.Sprintf("max=%d", f.Length))
	}
	if len(tags) == 1 && tags[0] == "omitempty" {
		return ""
	}
	return strings.Join(tags, ",")
}

// goExported is the Go field name for a schema field, with the common
// initialisms upper-cased.
func goExported(name string) string {
	p := naming.ToPascalCase(name)
	for _, suffix := range []string{"Id", "Url", "Uri", "Api"} {
		if strings.HasSuffix(p, suffix) {
			p = strings.TrimSuffix(p, suffix) + strings.ToUpper(suffix)
		}
	}
	return p
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
