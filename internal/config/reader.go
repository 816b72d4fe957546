package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

// Load resolves the configuration: defaults, then ~/.todoc/config.toml if it
// exists, then environment variables. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := defaults()

	p, err := filePath()
	if err != nil {
		return nil, err
	}
	if _, err := toml.DecodeFile(p, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg, nil
}
