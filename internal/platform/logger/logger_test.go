package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, "error", Error.String())
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "my-zoo", Output: &buf})

	l.Debug("hidden", nil)
	require.Zero(t, buf.Len())

	l.With(map[string]any{"request_id": "abc"}).Info("request completed", map[string]any{"status": 200, "": "ignored"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "my-zoo", entry["app"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "")
}
