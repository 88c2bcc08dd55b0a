package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"x-impressions/internal/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"X_USERNAME", "X_PASSWORD", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultPostURL, cfg.PostURL)
	assert.False(t, cfg.Headless)
	assert.True(t, cfg.KeepOpen)
	assert.Equal(t, browser.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	assert.False(t, cfg.Credentials().Present())
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadFrom_YAMLOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
post_url: "https://x.com/someone/status/42"
headless: true
keep_open: false
timeout: 2m
snapshot_dir: "logs/snapshots"
`)

	cfg, err := LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "https://x.com/someone/status/42", cfg.PostURL)
	assert.True(t, cfg.Headless)
	assert.False(t, cfg.KeepOpen)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "logs/snapshots", cfg.SnapshotDir)
	assert.Equal(t, ".cookies", cfg.CookiesPath)
}

func TestLoadFrom_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("X_USERNAME", "someone")
	t.Setenv("X_PASSWORD", "hunter2")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.True(t, cfg.Credentials().Present())
	assert.Equal(t, "someone", cfg.Credentials().Identifier)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		chatID string
	}{
		{name: "Relative post URL", yaml: `post_url: "/someone/status/1"`},
		{name: "Empty post URL", yaml: `post_url: ""`},
		{name: "Broken YAML", yaml: "post_url: [unclosed"},
		{name: "Bad chat ID", yaml: "", chatID: "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TELEGRAM_CHAT_ID", tt.chatID)

			_, err := LoadFrom(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}
