package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.Equal(t, 3, cfg.Batch.MaxRetries)
	assert.Equal(t, 500, cfg.Batch.RetryBaseDelayMS)
	assert.Equal(t, 100, cfg.Batch.ItemDelayMS)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv(EnvAPIKey, "")

	cfg := DefaultConfig()
	cfg.APIKey = "lin_api_test"
	cfg.Batch.Concurrency = 2
	cfg.Defaults.Team = "ENG"
	require.NoError(t, cfg.Save(filepath.Join(tmpDir, ConfigFileName)))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_test", loaded.APIKey)
	assert.Equal(t, 2, loaded.Batch.Concurrency)
	assert.Equal(t, "ENG", loaded.Defaults.Team)
}

func TestLoadFindsConfigInParentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	cfg := DefaultConfig()
	cfg.APIKey = "lin_api_parent"
	require.NoError(t, cfg.Save(filepath.Join(tmpDir, ConfigFileName)))

	subDir := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(subDir, 0755))
	require.NoError(t, os.Chdir(subDir))
	t.Setenv(EnvAPIKey, "")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_parent", loaded.APIKey)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	require.NoError(t, os.Chdir(tmpDir))

	cfg := DefaultConfig()
	cfg.APIKey = "from-file"
	require.NoError(t, cfg.Save(filepath.Join(tmpDir, ConfigFileName)))

	t.Setenv(EnvAPIKey, "from-env")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", loaded.APIKey)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer os.Chdir(originalWd)

	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv(EnvAPIKey, "lin_api_env")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_env", loaded.APIKey)
	assert.Equal(t, 5, loaded.Batch.Concurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing api key", func(c *Config) { c.APIKey = "" }, "API key"},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = 0 }, "concurrency"},
		{"excessive concurrency", func(c *Config) { c.Batch.Concurrency = 51 }, "concurrency"},
		{"negative retries", func(c *Config) { c.Batch.MaxRetries = -1 }, "max_retries"},
		{"negative delay", func(c *Config) { c.Batch.ItemDelayMS = -1 }, "item_delay_ms"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.APIKey = "lin_api_test"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.Options()

	assert.Equal(t, 5, opts.Concurrency)
	assert.Equal(t, 3, opts.Retry.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, opts.Retry.BaseDelay)
	assert.Equal(t, 100*time.Millisecond, opts.ItemDelay)
}
