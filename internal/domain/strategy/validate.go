package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openkraft/lowgen/internal/domain"
)

var validate = validator.New()

// ValidationError lists every problem found in a strategy document.
type ValidationError struct {
	Strategy string
	Problems []string
}

func (e *ValidationError) Error() string {
	name := e.Strategy
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("invalid strategy %s: %s", name, strings.Join(e.Problems, "; "))
}

// Validate checks the structural invariants of s: a name, a framework and at
// least one template mapping, each mapping with a template, an output path
// and a known layer. Template IDs must be unique within the strategy.
func Validate(s domain.GenerationStrategy) error {
	var problems []string

	// 1. struct tags
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating strategy: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	// 2. template IDs are unique
	seen := make(map[string]bool, len(s.Templates))
	for _, t := range s.Templates {
		if t.TemplateID == "" {
			continue
		}
		if seen[t.TemplateID] {
			problems = append(problems, fmt.Sprintf("Duplicate template mapping %q", t.TemplateID))
		}
		seen[t.TemplateID] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Strategy: s.Name, Problems: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.StructNamespace() {
	case "GenerationStrategy.Name":
		return "Strategy name is required"
	case "GenerationStrategy.Framework":
		return "Framework is required"
	case "GenerationStrategy.Templates":
		return "At least one template mapping is required"
	}

	field := strings.TrimPrefix(fe.StructNamespace(), "GenerationStrategy.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
