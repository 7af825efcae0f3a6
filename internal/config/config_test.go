package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes Load deterministic regardless of the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QUILL_API_URL", "QUILL_TOKEN", "QUILL_CONFIG", "ENVIRONMENT", "DEBUG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	// Point the default config path at an empty directory.
	t.Setenv("QUILL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "dev", cfg.Environment)
	assert.True(t, cfg.Debug, "dev defaults to debug logging")
	assert.Equal(t, DefaultAutoSaveDelay, cfg.AutoSaveDelay)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUILL_API_URL", "https://api.example.com")
	t.Setenv("QUILL_TOKEN", "abc123")
	t.Setenv("ENVIRONMENT", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, "prod", cfg.Environment)
	assert.False(t, cfg.Debug, "prod defaults to quiet logging")
}

func TestLoad_FileOverlaidByEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: https://file.example.com\n"+
			"token: from-file\n"+
			"auto_save_delay: 250ms\n",
	), 0o600))
	t.Setenv("QUILL_CONFIG", path)
	t.Setenv("QUILL_TOKEN", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.Token, "environment wins over the file")
	assert.Equal(t, 250*time.Millisecond, cfg.AutoSaveDelay)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	clearEnv(t)

	t.Run("bad url", func(t *testing.T) {
		t.Setenv("QUILL_API_URL", "::not a url::")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown environment", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "staging")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [broken"), 0o600))
	t.Setenv("QUILL_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}
