// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config is the database bootstrap configuration.
type Config struct {
	DBPath    string `env:"TRANSFIGURR_DB_PATH" envDefault:"config/db/database.db"`
	LogLevel  string `env:"TRANSFIGURR_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"TRANSFIGURR_LOG_FORMAT" envDefault:"text"`
}

// Load reads Config from the environment, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
