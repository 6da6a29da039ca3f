package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/devtrack/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(""))
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, "json", slog.LevelInfo))

	log.Debug("hidden")
	log.Warn("failed to persist", "key", "devtrack_tickets")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "failed to persist", entry["msg"])
	assert.Equal(t, "devtrack_tickets", entry["key"])
}

func TestConsoleHandlerHasNoColourOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, "console", slog.LevelWarn))

	log.Info("hidden")
	log.Error("stored data is not valid JSON", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "stored data is not valid JSON")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devtrack.log")
	log, closer, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("seeded sample tickets", "count", 10)
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seeded sample tickets")
}
