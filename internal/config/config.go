// Package config provides application configuration management.
// Configuration is loaded from environment variables; command line flags
// override individual fields afterwards.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"github.com/mmynk/ticketapp/internal/auth"
	"github.com/mmynk/ticketapp/pkg/logging"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	DBPath    string `env:"TICKETAPP_DB_PATH" envDefault:"./data/ticketapp.db"`
	Ephemeral bool   `env:"TICKETAPP_EPHEMERAL" envDefault:"false"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile receives logs while the terminal UI owns the screen.
	// Empty means discard.
	LogFile string `env:"TICKETAPP_LOG_FILE"`

	// Credentials
	PasswordMode      string `env:"TICKETAPP_PASSWORD_MODE" envDefault:"bcrypt"`
	MinPasswordLength int    `env:"TICKETAPP_MIN_PASSWORD_LENGTH" envDefault:"1"`

	// Metrics textfile written after each command. Empty disables it.
	MetricsFile string `env:"TICKETAPP_METRICS_FILE"`
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom is Load with an explicit environment, for tests.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	if !c.Ephemeral && c.DBPath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if _, err := auth.NewHasher(c.PasswordMode); err != nil {
		return err
	}
	if c.MinPasswordLength < 1 {
		return fmt.Errorf("minimum password length must be at least 1, got %d", c.MinPasswordLength)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
