package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/spinwin/internal/generate/llm"
	"github.com/Makepad-fr/spinwin/internal/wheel"
)

var keys = []string{
	"SPINWIN_MODEL", "SPINWIN_FALLBACK_MODELS", "SPINWIN_BASE_URL",
	"LLM_TIMEOUT", "SPIN_DURATION", "SPINWIN_CACHE_SIZE", "SPINWIN_CACHE_TTL",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "SPINWIN_THEME", "SPINWIN_PRESET",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model)
	assert.Nil(t, c.FallbackModels)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, DefaultLLMTimeout, c.LLMTimeout)
	assert.Equal(t, 5*time.Second, c.SpinDuration)
	assert.Equal(t, DefaultCacheSize, c.CacheSize)
	assert.Equal(t, time.Hour, c.CacheTTL)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "classic", c.Theme)
	assert.Empty(t, c.LogFile)
}

func TestDefaults_SharedWithConsumers(t *testing.T) {
	assert.Equal(t, llm.DefaultModel, DefaultModel)
	assert.Equal(t, llm.DefaultBaseURL, DefaultBaseURL)
	assert.Equal(t, wheel.DefaultSpinDuration, DefaultSpinDuration)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPINWIN_MODEL", "m1")
	t.Setenv("SPINWIN_FALLBACK_MODELS", " m2 , ,m3 ")
	t.Setenv("SPINWIN_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("SPIN_DURATION", "1500ms")
	t.Setenv("SPINWIN_CACHE_SIZE", "8")
	t.Setenv("SPINWIN_CACHE_TTL", "0s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("SPINWIN_THEME", "neon")
	t.Setenv("SPINWIN_PRESET", "/tmp/labels.json")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "m1", c.Model)
	assert.Equal(t, []string{"m2", "m3"}, c.FallbackModels)
	assert.Equal(t, "http://localhost:8080/v1", c.BaseURL)
	assert.Equal(t, 3*time.Second, c.LLMTimeout)
	assert.Equal(t, 1500*time.Millisecond, c.SpinDuration)
	assert.Equal(t, 8, c.CacheSize)
	assert.Zero(t, c.CacheTTL)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, "neon", c.Theme)
	assert.Equal(t, "/tmp/labels.json", c.Preset)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SPINWIN_MODEL=from-file\nSPINWIN_THEME=mono\n"), 0o600))
	t.Setenv("SPINWIN_THEME", "neon")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.Model)
	assert.Equal(t, "neon", c.Theme, "environment wins over the file")
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    string
	}{
		{"LLM_TIMEOUT", "soon", "invalid LLM_TIMEOUT"},
		{"SPIN_DURATION", "5", "invalid SPIN_DURATION"},
		{"SPINWIN_CACHE_SIZE", "many", "invalid SPINWIN_CACHE_SIZE"},
		{"LOG_LEVEL", "loud", "invalid LOG_LEVEL"},
		{"LOG_FORMAT", "xml", "LogFormat must be one of"},
		{"SPINWIN_THEME", "pink", "Theme must be one of"},
		{"SPINWIN_BASE_URL", "not a url", "BaseURL must be a URL"},
		{"SPIN_DURATION", "10ms", "SpinDuration must be at least"},
		{"SPINWIN_CACHE_SIZE", "0", "CacheSize must be at least"},
		{"LLM_TIMEOUT", "-1s", "LLMTimeout must be greater than"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_WrapsErrInvalid(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "Model is required")
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"Info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLogLevel("")
	assert.Error(t, err)
}
