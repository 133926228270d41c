package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENROUTER_API_KEY", "OPEN_KEY", "FILEWRIGHT_MODEL", "FILEWRIGHT_BASE_URL", "FILEWRIGHT_DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "z-ai/glm-4.5", cfg.API.Model)
	assert.Equal(t, 10, cfg.Engine.MaxIterations)
	assert.True(t, cfg.Engine.SaveTranscript)
	assert.Equal(t, 120*time.Second, cfg.APITimeout())
	assert.Empty(t, cfg.API.Key)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".filewright"), 0755))
	yaml := `
api:
  key: file-key
  model: anthropic/claude-sonnet-4
  timeout_sec: 30
engine:
  max_iterations: 5
logging:
  debug: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".filewright", "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "anthropic/claude-sonnet-4", cfg.API.Model)
	assert.Equal(t, 30*time.Second, cfg.APITimeout())
	assert.Equal(t, 5, cfg.Engine.MaxIterations)
	assert.True(t, cfg.Logging.Debug)
	// Unset fields keep their defaults.
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.API.BaseURL)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".filewright"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".filewright", "config.yaml"), []byte("api: ["), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("OPENROUTER_API_KEY wins over file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".filewright"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".filewright", "config.yaml"),
			[]byte("api:\n  key: file-key\n"), 0644))
		t.Setenv("OPENROUTER_API_KEY", "env-key")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.API.Key)
	})

	t.Run("OPEN_KEY is the fallback name", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPEN_KEY", "fallback-key")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "fallback-key", cfg.API.Key)
	})

	t.Run("OPENROUTER_API_KEY beats OPEN_KEY", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENROUTER_API_KEY", "primary")
		t.Setenv("OPEN_KEY", "secondary")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "primary", cfg.API.Key)
	})

	t.Run("model and debug", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FILEWRIGHT_MODEL", "openai/gpt-4o")
		t.Setenv("FILEWRIGHT_DEBUG", "1")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-4o", cfg.API.Model)
		assert.True(t, cfg.Logging.Debug)
	})
}

func TestDotEnvLocal(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("OPENROUTER_API_KEY=dotenv-key\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.API.Key)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing key must fail")

	cfg.API.Key = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Engine.MaxIterations = 0
	assert.Error(t, cfg.Validate())
}
