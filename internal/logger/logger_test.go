package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/lowgen/internal/logger"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(&buf, "info", "json")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("generated", "files", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "generated", rec["msg"])
	assert.Equal(t, float64(3), rec["files"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(&buf, "warn", "text")
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("render failed", "template", "nestjs-entity")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "template=nestjs-entity")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Invalid(t *testing.T) {
	_, err := logger.New(&bytes.Buffer{}, "loud", "text")
	assert.ErrorContains(t, err, `invalid log level "loud"`)

	_, err = logger.New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorContains(t, err, `invalid log format "xml"`)
}

func TestFrom_RunID(t *testing.T) {
	var buf bytes.Buffer
	base, err := logger.New(&buf, "debug", "text")
	require.NoError(t, err)

	ctx := logger.WithRunID(context.Background(), "run-42")
	assert.Equal(t, "run-42", logger.RunID(ctx))

	logger.From(ctx, base).Info("done")
	assert.Contains(t, buf.String(), "run_id=run-42")

	buf.Reset()
	logger.From(context.Background(), base).Info("done")
	assert.NotContains(t, buf.String(), "run_id")
}
