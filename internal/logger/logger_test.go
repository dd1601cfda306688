package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	color.NoColor = true

	t.Run("should hide info records unless verbose", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(Options{Output: &buf})
		l.Info("hidden")
		l.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "[WARN]  shown")
	})

	t.Run("should render context attributes in pretty mode", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), New(Options{Verbose: true, Output: &buf}))
		ctx = With(ctx, "request_id", "abc")

		Info(ctx, "request handled", "status", 200)

		assert.Contains(t, buf.String(), "[INFO]  request handled")
		assert.Contains(t, buf.String(), "request_id=abc")
		assert.Contains(t, buf.String(), "status=200")
	})

	t.Run("should emit JSON when requested", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), New(Options{Format: "json", Output: &buf}))

		Error(ctx, "boom", errors.New("bad"), "route", "/api/x")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "boom", line["msg"])
		assert.Equal(t, "bad", line["error"])
		assert.Equal(t, "/api/x", line["route"])
	})
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	l := New(Options{Debug: true, Output: &buf}).WithGroup("github")

	l.Debug("call", "endpoint", "search")

	assert.Contains(t, buf.String(), "github.endpoint=search")
}
