package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	a := NewAdapter(zl)
	a.Info("upload complete", "session", "abc", "bytes", 300)
	a.Error("upload failed", "error", errors.New("timeout"))
	a.Debug("odd", "key")

	got := lines(t, &buf)
	require.Len(t, got, 3)

	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, "upload complete", got[0]["message"])
	assert.Equal(t, "abc", got[0]["session"])
	assert.Equal(t, float64(300), got[0]["bytes"])
	assert.Contains(t, got[0], "time")

	assert.Equal(t, "error", got[1]["level"])
	assert.Equal(t, "timeout", got[1]["error"])

	assert.Contains(t, got[2], "key")
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "INFO", FormatJSON)
	require.NoError(t, err)

	a := NewAdapter(zl)
	a.Debug("hidden")
	a.Info("shown")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0]["message"])
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "", FormatJSON)
	require.NoError(t, err)

	NewAdapter(zl).With("node", "BM2V230").Info("connected")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "BM2V230", got[0]["node"])
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	zl, err := New(&buf, "info", "")
	require.NoError(t, err)

	NewAdapter(zl).Info("version read", "version", "2.0.1")
	assert.Contains(t, buf.String(), "version read")
	assert.Contains(t, buf.String(), "2.0.1")
}

func TestNewErrors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatJSON)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
