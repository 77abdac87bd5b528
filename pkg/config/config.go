// Package config loads the client's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "discordlite"

// EnvToken pre-fills the login token input. It is never written to disk.
const EnvToken = "DISCORDLITE_TOKEN"

// Config represents the structure of the client config file
type Config struct {
	API     APISection     `toml:"api"`
	UI      UISection      `toml:"ui"`
	Log     LogSection     `toml:"log"`
	Metrics MetricsSection `toml:"metrics"`
}

type APISection struct {
	BaseURL               string `toml:"base_url"`
	MessageLimit          int    `toml:"message_limit"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	UserAgent             string `toml:"user_agent"`
}

type UISection struct {
	Notifications    bool `toml:"notifications"`
	Markdown         bool `toml:"markdown"`
	GuildPaneWidth   int  `toml:"guild_pane_width"`
	ChannelPaneWidth int  `toml:"channel_pane_width"`
}

type LogSection struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsSection struct {
	// Addr serves /metrics when non-empty, e.g. "127.0.0.1:9464"
	Addr string `toml:"addr"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		API: APISection{
			BaseURL:               "https://discord.com/api/v10",
			MessageLimit:          50,
			RequestTimeoutSeconds: 0, // no limit
		},
		UI: UISection{
			Notifications:    true,
			Markdown:         true,
			GuildPaneWidth:   24,
			ChannelPaneWidth: 26,
		},
		Log: LogSection{
			Level: "info",
			File:  filepath.Join(StateDir(), "client.log"),
		},
	}
}

// RequestTimeout returns the per-request timeout, zero for none
func (c Config) RequestTimeout() time.Duration {
	if c.API.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.API.RequestTimeoutSeconds) * time.Second
}

// Token returns the token supplied through the environment, if any
func Token() string {
	return strings.TrimSpace(os.Getenv(EnvToken))
}

// DefaultPath is $XDG_CONFIG_HOME/discordlite/config.toml
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}

// StateDir is $XDG_STATE_HOME/discordlite, where logs go
func StateDir() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), appName)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, fallback)
}

// Load reads configuration from a TOML file, creates a default one if it is
// missing, and applies environment variable overrides. Keys absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	path, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}

	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// An unwritable location is not fatal; run on defaults
		_ = writeDefaultConfig(path)
		return applyEnvOverrides(config), nil
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return applyEnvOverrides(config), nil
}

// Validate rejects values the client cannot run with
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.MessageLimit < 1 || c.API.MessageLimit > 100 {
		return fmt.Errorf("api.message_limit must be between 1 and 100, got %d", c.API.MessageLimit)
	}
	if c.API.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("api.request_timeout_seconds must not be negative")
	}
	if c.UI.GuildPaneWidth < 8 || c.UI.ChannelPaneWidth < 8 {
		return fmt.Errorf("ui pane widths must be at least 8")
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern DISCORDLITE_SECTION_KEY,
// e.g. DISCORDLITE_API_BASE_URL=http://localhost:8088/api/v10
func applyEnvOverrides(config Config) Config {
	// API section
	if val := os.Getenv("DISCORDLITE_API_BASE_URL"); val != "" {
		config.API.BaseURL = val
	}
	if val := os.Getenv("DISCORDLITE_API_MESSAGE_LIMIT"); val != "" {
		if limit, err := strconv.Atoi(val); err == nil && limit >= 1 && limit <= 100 {
			config.API.MessageLimit = limit
		}
	}
	if val := os.Getenv("DISCORDLITE_API_REQUEST_TIMEOUT_SECONDS"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs >= 0 {
			config.API.RequestTimeoutSeconds = secs
		}
	}
	if val := os.Getenv("DISCORDLITE_API_USER_AGENT"); val != "" {
		config.API.UserAgent = val
	}

	// UI section
	if val := os.Getenv("DISCORDLITE_UI_NOTIFICATIONS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			config.UI.Notifications = enabled
		}
	}
	if val := os.Getenv("DISCORDLITE_UI_MARKDOWN"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			config.UI.Markdown = enabled
		}
	}

	// Log section
	if val := os.Getenv("DISCORDLITE_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("DISCORDLITE_LOG_FILE"); val != "" {
		config.Log.File = val
	}

	// Metrics section
	if val := os.Getenv("DISCORDLITE_METRICS_ADDR"); val != "" {
		config.Metrics.Addr = val
	}

	return config
}

// writeDefaultConfig writes a commented default config file
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := `# discordlite configuration
# This file was auto-generated with default values.
#
# Environment variables can override these settings:
# DISCORDLITE_SECTION_KEY (e.g., DISCORDLITE_API_BASE_URL=http://localhost:8088/api/v10)
# Set DISCORDLITE_TOKEN to pre-fill the login screen. Tokens are never stored here.

[api]
# REST API root. Point this at a running fakeapi for offline development.
base_url = "https://discord.com/api/v10"

# Messages fetched when a channel is opened (1-100)
message_limit = 50

# Per-request timeout in seconds (0 = no limit)
request_timeout_seconds = 0

# Uncomment to send a custom User-Agent:
# user_agent = "discordlite"

[ui]
# Desktop notification when a message fails to send
notifications = true

# Render message content as markdown
markdown = true

guild_pane_width = 24
channel_pane_width = 26

[log]
# debug, info, warn, error, off
level = "info"

# Uncomment to log somewhere other than $XDG_STATE_HOME/discordlite/client.log:
# file = "/tmp/discordlite.log"

[metrics]
# Serve Prometheus metrics on this address (empty = disabled)
# addr = "127.0.0.1:9464"
`

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
