package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeoutSeconds = 10
	DefaultLogLevel       = "info"

	configFileName = "config.toml"
)

// Config holds the client configuration. Precedence when loading:
// environment > config file > defaults.
type Config struct {
	BaseURL        string `env:"TODOC_BASE_URL" toml:"base_url"`
	TimeoutSeconds int    `env:"TODOC_TIMEOUT_SECONDS" toml:"timeout_seconds"`
	LogLevel       string `env:"TODOC_LOG_LEVEL" toml:"log_level"`
}

// Timeout is the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Dir is the state directory (config file, credentials, log file).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todoc"), nil
}

func filePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func defaults() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       DefaultLogLevel,
	}
}
