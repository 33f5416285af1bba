package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewWithConfig(Config{
		Name:   "test",
		Format: FormatJSON,
		Level:  slog.LevelDebug,
		Writer: buf,
	})
}

func TestErrReturnsOriginalError(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	original := errors.New("boom")
	returned := log.Err("something failed", original, "key", "value")

	assert.Equal(t, original, returned)
	assert.Contains(t, buf.String(), "something failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestErrorWithTypeWrapsSentinel(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	sentinel := errors.New("validation error")
	err := log.ErrorWithType(sentinel, "bad input", "field", "email")

	assert.True(t, errors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "bad input")
}

func TestChainedContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	log.Function("DoThing").File("thing.go").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry["package"])
	assert.Equal(t, "DoThing", entry["function"])
	assert.Equal(t, "thing.go", entry["file"])
}

func TestTraceIDPropagation(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", TraceIDFromContext(ctx))

	var buf bytes.Buffer
	log := newBufferLogger(&buf).TraceFromContext(ctx)
	log.Info("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["traceID"])
}

func TestTraceFromContextWithoutID(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	log.TraceFromContext(context.Background()).Info("untraced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasTrace := entry["traceID"]
	assert.False(t, hasTrace)
}
