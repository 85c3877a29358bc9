package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")
	ErrStrategyExists   = errors.New("strategy already exists")
	ErrRuleNotFound     = errors.New("rule not found")
)

// SchemaValidationError aborts a generation run before any rendering.
type SchemaValidationError struct {
	Problems []string
}

func (e *SchemaValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// TemplateRenderError describes a single file that could not be produced.
type TemplateRenderError struct {
	TemplateID string
	Entity     string
	Path       string
	Err        error
}

func (e *TemplateRenderError) Error() string {
	switch {
	case e.Entity != "" && e.TemplateID != "":
		return fmt.Sprintf("rendering %s for %s: %v", e.TemplateID, e.Entity, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }

// RuleEngineError reports a rule that cannot be evaluated.
type RuleEngineError struct {
	RuleID string
	Err    error
}

func (e *RuleEngineError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *RuleEngineError) Unwrap() error { return e.Err }
