package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, filepath.Join(homeDir, ".notebook", "state.toml"), cfg.StatePath)
	assert.Equal(t, StoreTOML, cfg.StoreDriver)
	assert.Equal(t, filepath.Join(homeDir, ".notebook", "logs", "nb.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
}

func TestLoadReadsConfigFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	dir := filepath.Join(homeDir, ".notebook")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(strings.Join([]string{
		"[api]",
		"base_url = \"http://notebook.lan:5000\"",
		"timeout = \"5s\"",
		"",
		"[store]",
		"driver = \"memory\"",
		"",
	}, "\n")), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://notebook.lan:5000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("NB_API_BASE_URL", "http://10.0.0.5:5000")
	t.Setenv("NB_LOG_DEBUG", "true")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:5000", cfg.BaseURL)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown driver",
			env:     map[string]string{"NB_STORE_DRIVER": "sqlite"},
			wantErr: "unsupported store.driver",
		},
		{
			name:    "redis without address",
			env:     map[string]string{"NB_STORE_DRIVER": "redis"},
			wantErr: "store.redis_addr is required",
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"NB_API_TIMEOUT": "0s"},
			wantErr: "api.timeout must be positive",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New())
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadMalformedConfigFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	dir := filepath.Join(homeDir, ".notebook")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api"), 0o600))

	_, err := Load(viper.New())
	assert.ErrorContains(t, err, "read config file")
}
