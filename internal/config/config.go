// Package config loads service settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/database"
	"github.com/caarlos0/env/v11"
)

// Store names the persistence backend for the board registry.
type Store string

const (
	StoreMemory   Store = "memory"
	StoreSQLite   Store = "sqlite"
	StorePostgres Store = "postgres"
)

// Config holds every runtime setting. Defaults suit local development.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Store           Store         `env:"BOARDS_STORE" envDefault:"memory"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"boards.db"`
	RenewalWindow   int           `env:"RENEWAL_WINDOW_DAYS" envDefault:"30"`
	SweepInterval   time.Duration `env:"RENEWAL_SWEEP_INTERVAL" envDefault:"1h"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	StaffToken      string        `env:"STAFF_TOKEN"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DB database.Config `envPrefix:"DB_"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the registry cannot run with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return fmt.Errorf("BOARDS_STORE must be one of memory, sqlite, postgres; got %q", c.Store)
	}
	if c.RenewalWindow <= 0 {
		return fmt.Errorf("RENEWAL_WINDOW_DAYS must be positive, got %d", c.RenewalWindow)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("RENEWAL_SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
	}
	return nil
}

// RenewalWindowDuration converts the configured day count to a duration.
func (c Config) RenewalWindowDuration() time.Duration {
	return time.Duration(c.RenewalWindow) * 24 * time.Hour
}
