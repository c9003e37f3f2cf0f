package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("verbose")
	assert.EqualError(t, err, "invalid log level: verbose. Valid log levels are: debug|error|info|warn")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Format: FormatJSON, Writer: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible", "block", 100)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, float64(100), entry["block"])
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.Debug("retrying", "attempt", 2)
	out := buf.String()
	assert.Contains(t, out, "retrying")
	assert.Contains(t, out, "attempt=2")
	// writer is not a terminal, so no ANSI escapes
	assert.NotContains(t, out, "\x1b[")
}

func TestNewInvalidFormat(t *testing.T) {
	_, err := New(Options{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, "invalid log format: xml")
}
