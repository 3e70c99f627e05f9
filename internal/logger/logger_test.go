package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := New(Config{Level: slog.LevelInfo, Format: "JSON", Version: "1.2.3"}, &buf)
	require.NoError(t, err)
	defer closeFn()

	l.Info("test message", "key", "value", "number", 42)
	l.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, ServiceName, entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestNew_TextLevel(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(Config{Level: slog.LevelWarn, Format: "text"}, &buf)
	require.NoError(t, err)

	l.Info("quiet")
	l.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud")
	assert.Contains(t, buf.String(), "version=dev")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spin.log")
	var fallback bytes.Buffer
	l, closeFn, err := New(Config{Level: slog.LevelDebug, File: path}, &fallback)
	require.NoError(t, err)

	l.Debug("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Zero(t, fallback.Len())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNew_Discard(t *testing.T) {
	l, closeFn, err := New(Config{}, nil)
	require.NoError(t, err)
	l.Error("nowhere")
	assert.NoError(t, closeFn())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithSpin(context.Background(), 7)
	tok, ok := SpinFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, uint64(7), tok)

	FromContext(ctx, base).Info("resolved")
	assert.Contains(t, buf.String(), "spin=7")

	buf.Reset()
	FromContext(context.Background(), base).Info("plain")
	assert.NotContains(t, buf.String(), "spin=")

	_, ok = SpinFromContext(context.Background())
	assert.False(t, ok)
}
