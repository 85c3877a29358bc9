// Package resolver expands output path and name patterns for an entity.
package resolver

import (
	"path"
	"regexp"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/naming"
)

var placeholderRe = regexp.MustCompile(`\{[A-Za-z_-]+\}`)

// ResolveName substitutes the entity placeholders in pattern. Unknown
// placeholders are left verbatim.
//
//	{entity-name}  kebab case          order-item
//	{EntityName}   pascal case         OrderItem
//	{entityName}   camel case          orderItem
//	{entity_name}  snake case          order_item
//	{entity_names} snake case, plural  order_items
//	{entity-names} kebab case, plural  order-items
func ResolveName(pattern string, entity domain.Entity) string {
	if !strings.Contains(pattern, "{") {
		return pattern
	}
	pascal := naming.ToPascalCase(entity.Name)
	plural := naming.Pluralize(pascal)
	r := strings.NewReplacer(
		"{entity-name}", naming.ToKebabCase(pascal),
		"{EntityName}", pascal,
		"{entityName}", naming.ToCamelCase(pascal),
		"{entity_name}", naming.ToSnakeCase(pascal),
		"{entity_names}", naming.ToSnakeCase(plural),
		"{entity-names}", naming.ToKebabCase(plural),
	)
	return r.Replace(pattern)
}

// ResolveOutputPath expands pattern for entity and roots it at the run's
// output directory and the strategy's base directory, joined with "/".
func ResolveOutputPath(pattern string, entity domain.Entity, gctx *domain.GenerationContext) string {
	return Join(gctx, ResolveName(pattern, entity))
}

// Join roots rel at the output directory and strategy base directory.
func Join(gctx *domain.GenerationContext, rel string) string {
	baseDir := ""
	if gctx.Strategy != nil {
		baseDir = gctx.Strategy.FileStructure.BaseDir
	}
	return path.Join(gctx.Options.OutputDir, baseDir, rel)
}

// UnresolvedPlaceholders lists the {tokens} still present in a resolved path.
func UnresolvedPlaceholders(p string) []string {
	return placeholderRe.FindAllString(p, -1)
}
