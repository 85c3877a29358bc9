package domain_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkraft/lowgen/internal/domain"
)

func TestTemplateRenderError(t *testing.T) {
	err := &domain.TemplateRenderError{TemplateID: "nestjs-entity", Entity: "Order", Err: fs.ErrNotExist}
	assert.Equal(t, "rendering nestjs-entity for Order: file does not exist", err.Error())
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = &domain.TemplateRenderError{Path: "out/a.ts", Err: errors.New("boom")}
	assert.Equal(t, "out/a.ts: boom", err.Error())
}

func TestSchemaValidationError(t *testing.T) {
	err := &domain.SchemaValidationError{Problems: []string{"a", "b"}}
	assert.Equal(t, "schema validation failed: a; b", err.Error())
}

func TestRuleEngineError(t *testing.T) {
	inner := errors.New("bad pattern")
	err := &domain.RuleEngineError{RuleID: "custom", Err: inner}
	assert.Equal(t, "rule custom: bad pattern", err.Error())
	assert.ErrorIs(t, err, inner)
}
