// Package config loads the service configuration from the environment.
//
// Values are read from an optional .env file and from the process
// environment; the process environment wins when both define a key.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"LISTACOMPRAS_HTTP_ADDR" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"LISTACOMPRAS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Database        DatabaseConfig
	Log             LogConfig
}

type DatabaseConfig struct {
	DSN             string        `env:"LISTACOMPRAS_DATABASE_DSN"`
	MaxOpenConns    int           `env:"LISTACOMPRAS_DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"LISTACOMPRAS_DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"LISTACOMPRAS_DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"LISTACOMPRAS_DB_AUTO_MIGRATE" envDefault:"false"`
}

type LogConfig struct {
	Level  string `env:"LISTACOMPRAS_LOG_LEVEL" envDefault:"info"`
	Format string `env:"LISTACOMPRAS_LOG_FORMAT" envDefault:"json"`
}

// Load reads envFile, if it exists, and the process environment into a
// Config. An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for k, v := range env.ToMap(os.Environ()) {
		vars[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("LISTACOMPRAS_DATABASE_DSN is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("LISTACOMPRAS_DB_MAX_OPEN_CONNS must be positive, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("LISTACOMPRAS_DB_MAX_IDLE_CONNS must not be negative, got %d", c.Database.MaxIdleConns)
	}
	if c.HTTPAddr == "" {
		return errors.New("LISTACOMPRAS_HTTP_ADDR is required")
	}
	return nil
}
