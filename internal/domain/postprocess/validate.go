package postprocess

import (
	"fmt"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/resolver"
)

// ValidateContent reports leftover template tokens in a rendered file: one
// error per line holding an unresolved {{...}} variable, and one for an
// output path that still contains a {placeholder}.
func ValidateContent(file domain.GeneratedFile) []error {
	var errs []error
	for _, token := range resolver.UnresolvedPlaceholders(file.Path) {
		errs = append(errs, &domain.TemplateRenderError{
			TemplateID: file.TemplateID,
			Path:       file.Path,
			Err:        fmt.Errorf("unresolved path placeholder %s", token),
		})
	}
	for i, line := range strings.Split(file.Content, "\n") {
		open := strings.Index(line, "{{")
		if open < 0 || !strings.Contains(line[open:], "}}") {
			continue
		}
		errs = append(errs, &domain.TemplateRenderError{
			TemplateID: file.TemplateID,
			Path:       file.Path,
			Err:        fmt.Errorf("Line %d: Unresolved template variable in %s", i+1, strings.TrimSpace(line)),
		})
	}
	return errs
}
