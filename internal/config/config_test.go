package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://api.example.org/3
  api_key: abc123
  timeout: 5s
cache:
  dir: /tmp/reel-cache
  dedupe_tags: false
  max_age: 1h
logging:
  level: debug
ui:
  plain: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/3", cfg.Server.URL)
	assert.Equal(t, "abc123", cfg.Server.APIKey)
	assert.Equal(t, "en-US", cfg.Server.Language, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "/tmp/reel-cache", cfg.Cache.Dir)
	assert.False(t, cfg.Cache.DedupeTags)
	assert.Equal(t, time.Hour, cfg.Cache.MaxAge)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.UI.Plain)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  api_key: from-file\n")
	t.Setenv("REEL_SERVER_API_KEY", "from-env")
	t.Setenv("REEL_CACHE_MAX_AGE", "30m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Server.APIKey)
	assert.Equal(t, 30*time.Minute, cfg.Cache.MaxAge)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad url", "server:\n  url: not a url\n", "server.url must be a valid URL"},
		{"empty url", "server:\n  url: \"\"\n", "server.url is required"},
		{"bad level", "logging:\n  level: loud\n", "logging.level must be one of"},
		{"negative max age", "cache:\n  max_age: -1m\n", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.APIKey = "saved"
	cfg.Cache.MaxAge = 2 * time.Hour
	cfg.Cache.DedupeTags = false
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "logs", "reel.log"), expandHome("~/logs/reel.log"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
