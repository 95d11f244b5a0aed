package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range tests {
		require.Equal(t, want, parseLevel(input).Level(), "input %q", input)
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "info", "").Info("item added", "item_id", 3)
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "fitgpt", record["service"])
	require.Equal(t, float64(3), record["item_id"])

	buf.Reset()
	newLogger(&buf, "warn", "text").Info("dropped")
	require.Empty(t, buf.String())

	newLogger(&buf, "debug", "TEXT").Debug("kept", "component", "outfit.service")
	require.Contains(t, buf.String(), "component=outfit.service")
	require.Contains(t, buf.String(), "service=fitgpt")
}
