package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Info("some message")

	if !strings.Contains(buf.String(), "some message") {
		t.Errorf("Expected output to contain 'some message', got: %s", buf.String())
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Warn("hash mismatch")

	assert.Equal(t, "! hash mismatch\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newBufferedLogger(t)

	err := zerr.Wrap(zerr.With(zerr.New("inner"), "uuid", "abc"), "outer")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: outer")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ inner")
	assert.Contains(t, out, "uuid: abc")
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newBufferedLogger(t)
	lg.SetJSON(true)

	lg.Info("installed")
	lg.Error(zerr.With(zerr.New("package not found"), "uuid", "abc"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "installed", info["msg"])

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "package not found", record["msg"])
	assert.Equal(t, "abc", record["uuid"])
}

func TestLogger_SetOutputKeepsJSONMode(t *testing.T) {
	lg, _ := newBufferedLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Error(errors.New("plain"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "plain", record["error"])
}
