// Package config holds the ssabab client configuration from
// ~/.ssabab/config.json. This is the single source of truth for
// configuration; environment variables override individual fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default backend endpoint. Overridable via config file or SSABAB_API_URL.
const defaultAPIBaseURL = "https://api.ssabab.com"

// Config holds all ssabab client configuration.
type Config struct {
	// Backend API base URL
	APIBaseURL string `json:"api_base_url,omitempty"`

	// Theme for the TUI ("light" or "dark")
	Theme string `json:"theme,omitempty"`

	// Per-request timeout in seconds for backend calls
	RequestTimeoutSec int `json:"request_timeout_sec,omitempty"`

	// Timeout in seconds for a full review submission (both sub-resources)
	SubmitTimeoutSec int `json:"submit_timeout_sec,omitempty"`

	// Logging configuration
	Logging *LoggingConfig `json:"logging,omitempty"`
}

// LoggingConfig controls the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// DefaultConfigDir returns the ssabab config directory (~/.ssabab).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ssabab"
	}
	return filepath.Join(home, ".ssabab")
}

// DefaultConfigPath returns the default path to config.json.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Load loads configuration from the given path.
// Returns an empty config (defaults available via Get* methods) if the file
// does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the given path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAPIBaseURL returns the backend base URL.
// Priority: SSABAB_API_URL environment variable > config file > default.
func (c *Config) GetAPIBaseURL() string {
	if v := os.Getenv("SSABAB_API_URL"); v != "" {
		return v
	}
	if c != nil && c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return defaultAPIBaseURL
}

// GetTheme returns the configured theme, defaulting to auto-detection ("").
func (c *Config) GetTheme() string {
	if c == nil {
		return ""
	}
	return c.Theme
}

// GetRequestTimeout returns the per-request timeout with defaults applied.
func (c *Config) GetRequestTimeout() time.Duration {
	if c != nil && c.RequestTimeoutSec > 0 {
		return time.Duration(c.RequestTimeoutSec) * time.Second
	}
	return 15 * time.Second
}

// GetSubmitTimeout returns the full-submission timeout with defaults applied.
func (c *Config) GetSubmitTimeout() time.Duration {
	if c != nil && c.SubmitTimeoutSec > 0 {
		return time.Duration(c.SubmitTimeoutSec) * time.Second
	}
	return 30 * time.Second
}

// GetLogging returns logging settings with defaults.
func (c *Config) GetLogging() LoggingConfig {
	if c != nil && c.Logging != nil {
		cfg := *c.Logging
		if cfg.Level == "" {
			cfg.Level = "info"
		}
		return cfg
	}
	return LoggingConfig{
		Level:     "info",
		DebugMode: false, // Production mode by default
	}
}

// Global is a convenience function to load config from the default path.
func Global() (*Config, error) {
	return Load(DefaultConfigPath())
}
