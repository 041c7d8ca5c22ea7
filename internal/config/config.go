// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server struct {
		Port            int           `envconfig:"PORT" default:"8080"`
		CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
		ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	}

	DB struct {
		Path string `envconfig:"DB_PATH" default:"./data/ledger.db"`
	}

	Auth struct {
		JWTSecret     string        `envconfig:"JWT_SECRET"`
		TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}

	Ledger struct {
		// Verify compares cached balances with a full recompute on every read.
		Verify bool `envconfig:"VERIFY_LEDGER" default:"false"`
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenDuration <= 0 {
		return fmt.Errorf("TOKEN_DURATION must be positive, got %s", c.Auth.TokenDuration)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Server.Port)
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
