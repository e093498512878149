package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestParseFormat verifies format names and the console fallback.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, ok := ParseFormat("JSON")
	require.True(t, ok)
	require.Equal(t, FormatJSON, f)

	f, ok = ParseFormat("")
	require.True(t, ok)
	require.Equal(t, FormatConsole, f)

	f, ok = ParseFormat("xml")
	require.False(t, ok)
	require.Equal(t, FormatConsole, f)
}

// TestContextHelpers checks that names and fields travel with the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithOptions(Options{
		Level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Format: FormatJSON,
		Output: &buf,
	})

	ctx := ToContext(context.Background(), l)
	ctx = WithName(ctx, "scheduler")
	ctx = WithKV(ctx, "alarm_id", "alarm_1")
	ctx = WithFields(ctx, zap.String("method", "/alarmclock.v1.ClockService/Snooze"))

	InfoKV(ctx, "Alarm ringing", "time", "07:00")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "scheduler", line["logger"])
	require.Equal(t, "alarm_1", line["alarm_id"])
	require.Equal(t, "07:00", line["time"])
	require.Equal(t, "/alarmclock.v1.ClockService/Snooze", line["method"])
	require.Equal(t, "Alarm ringing", line["message"])
}

// TestFromContext_FallsBackToGlobal returns the global logger for bare contexts.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithLevel ensures a wrapped core filters below its own level.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithOptions(Options{
		Level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Format: FormatJSON,
		Output: &buf,
	}, WithLevel(zapcore.WarnLevel))

	l.Info("dropped")
	require.Zero(t, buf.Len())

	l.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}
