/*
config.go - Process configuration

PURPOSE:
  Reads server settings from the environment, after loading an optional
  .env file. Command-line flags in cmd/server override a few of these.

VARIABLES:
  PORT                            HTTP port (default 5000)
  ENVIRONMENT                     development | production (default development)
  LOG_LEVEL                       zerolog level (default info)
  CAMPSITE_STORE                  sqlite | memory (default sqlite)
  CAMPSITE_DB_PATH                SQLite path, ":memory:" allowed (default campsite.db)
  CAMPSITE_POLICY_FILE            Optional YAML/JSON policy document
  CAMPSITE_TIMEZONE               IANA zone used for "today" (default Local)
  CAMPSITE_ALLOWED_ORIGINS        Comma-separated CORS origins
  CAMPSITE_ALERT_SWEEP_INTERVAL   Alert sweep period, 0 disables (default 15m)
  CAMPSITE_SHUTDOWN_TIMEOUT       Graceful shutdown budget (default 30s)
  CAMPSITE_OTEL_ENABLED           Export traces over OTLP/HTTP (default false)
  CAMPSITE_OTEL_ENDPOINT          OTLP/HTTP collector URL

SEE ALSO:
  - cmd/server/main.go: Flag overrides and startup
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config is the server configuration.
type Config struct {
	Port        int    `env:"PORT"        envDefault:"5000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"   envDefault:"info"`

	Store      string `env:"CAMPSITE_STORE"       envDefault:"sqlite"`
	DBPath     string `env:"CAMPSITE_DB_PATH"     envDefault:"campsite.db"`
	PolicyFile string `env:"CAMPSITE_POLICY_FILE"`
	Timezone   string `env:"CAMPSITE_TIMEZONE"`

	AllowedOrigins     []string      `env:"CAMPSITE_ALLOWED_ORIGINS"      envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5000"`
	AlertSweepInterval time.Duration `env:"CAMPSITE_ALERT_SWEEP_INTERVAL" envDefault:"15m"`
	ShutdownTimeout    time.Duration `env:"CAMPSITE_SHUTDOWN_TIMEOUT"     envDefault:"30s"`

	OTelEnabled  bool   `env:"CAMPSITE_OTEL_ENABLED"  envDefault:"false"`
	OTelEndpoint string `env:"CAMPSITE_OTEL_ENDPOINT" envDefault:"http://localhost:4318"`
}

// Load reads .env (when present) and the environment, then validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the current environment without touching .env.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported store: %s", c.Store)
	}
	if c.AlertSweepInterval < 0 {
		return fmt.Errorf("alert sweep interval must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Location resolves Timezone. Empty means the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IsDevelopment reports whether human-readable console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}
