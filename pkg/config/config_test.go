package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config should be written")

	// The written file must parse back to the defaults
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().API, again.API)
	assert.Equal(t, Default().UI, again.UI)
	assert.Equal(t, Default().Log.Level, again.Log.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = \"http://localhost:8088/api/v10\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8088/api/v10", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.API.MessageLimit)
	assert.True(t, cfg.UI.Markdown)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[api\n"},
		{"limit too high", "[api]\nmessage_limit = 500\n"},
		{"empty base url", "[api]\nbase_url = \"\"\n"},
		{"negative timeout", "[api]\nrequest_timeout_seconds = -1\n"},
		{"narrow pane", "[ui]\nguild_pane_width = 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DISCORDLITE_API_BASE_URL", "http://127.0.0.1:9/api")
	t.Setenv("DISCORDLITE_API_MESSAGE_LIMIT", "20")
	t.Setenv("DISCORDLITE_API_REQUEST_TIMEOUT_SECONDS", "15")
	t.Setenv("DISCORDLITE_UI_NOTIFICATIONS", "false")
	t.Setenv("DISCORDLITE_LOG_LEVEL", "debug")
	t.Setenv("DISCORDLITE_METRICS_ADDR", "127.0.0.1:9464")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9/api", cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.API.MessageLimit)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.False(t, cfg.UI.Notifications)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("DISCORDLITE_API_MESSAGE_LIMIT", "lots")
	t.Setenv("DISCORDLITE_UI_MARKDOWN", "maybe")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.API.MessageLimit)
	assert.True(t, cfg.UI.Markdown)
}

func TestToken(t *testing.T) {
	t.Setenv(EnvToken, "  abc.def  ")
	assert.Equal(t, "abc.def", Token())
}

func TestRequestTimeoutZeroMeansNone(t *testing.T) {
	assert.Equal(t, time.Duration(0), Default().RequestTimeout())
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/cfg", "discordlite", "config.toml"), DefaultPath())
	assert.Equal(t, filepath.Join("/state", "discordlite"), StateDir())
}
