package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.value))
		})
	}
}

func TestSessionID(t *testing.T) {
	t.Run("generate", func(t *testing.T) {
		id1 := GenerateSessionID()
		id2 := GenerateSessionID()
		assert.Len(t, id1, 16)
		assert.NotEqual(t, id1, id2)
	})

	t.Run("explicit", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "run-7")
		assert.Equal(t, "run-7", GetSessionID(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, GetSessionID(context.Background()))
	})

	t.Run("auto_generated", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "")
		assert.Len(t, GetSessionID(ctx), 16)
	})
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(Options{Output: &buf, Level: slog.LevelDebug})
	ctx := WithSessionID(context.Background(), "session-123")

	decode := func(t *testing.T) map[string]interface{} {
		t.Helper()
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		return entry
	}

	t.Run("info", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "dodge started", "step", 3)
		entry := decode(t)
		assert.Equal(t, "dodge started", entry["msg"])
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "session-123", entry["session_id"])
		assert.Equal(t, float64(3), entry["step"])
	})

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "frame failed", errors.New("boom"))
		entry := decode(t)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Equal(t, "boom", entry["error"])
	})

	t.Run("debug", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "jump rejected")
		assert.Equal(t, "DEBUG", decode(t)["level"])
	})

	t.Run("warn", func(t *testing.T) {
		buf.Reset()
		logger.Warn(ctx, "dropping steps")
		assert.Equal(t, "WARN", decode(t)["level"])
	})
}

func TestTextFormatAndNop(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(Options{Output: &buf, Level: slog.LevelInfo, Format: "text"})
	logger.Info(context.Background(), "hello")
	assert.True(t, strings.Contains(buf.String(), "msg=hello"))
	assert.False(t, strings.Contains(buf.String(), "session_id"))

	assert.NotPanics(t, func() { Nop().Error(context.Background(), "ignored", errors.New("x")) })
}
