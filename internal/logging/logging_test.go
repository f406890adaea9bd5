package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppendsToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	first, err := Open(dir, slog.LevelInfo)
	require.NoError(t, err)
	first.Info("first run", "scope", "local")
	first.Debug("hidden")
	require.NoError(t, first.Close())

	second, err := Open(dir, slog.LevelDebug)
	require.NoError(t, err)
	second.Debug("second run")
	require.NoError(t, second.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `msg="first run" scope=local`)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="second run"`)
}

func TestClose_NilSafe(t *testing.T) {
	var l *Logger
	assert.NoError(t, l.Close())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
