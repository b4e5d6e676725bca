// Package config provides centralized configuration management for the
// importer. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Required only when
	// persisting; validate-only runs work without it.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// ImportConfig holds tool-list processing settings.
type ImportConfig struct {
	// ProgramsFile is the path to the program routing rules (default: programs.yaml)
	ProgramsFile string `env:"IMPORT_PROGRAMS_FILE" default:"programs.yaml"`

	// MaxConcurrent is the maximum number of files processed in parallel (default: 4)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"4"`

	// Timeout is the maximum duration for a full import (default: 10m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"10m"`

	// Debug enables per-row diagnostics such as deleted-row anomalies (default: false)
	Debug bool `env:"IMPORT_DEBUG" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// String returns a safe representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	dbURL := "(unset)"
	if c.Database.URL != "" {
		dbURL = "(set, masked)"
	}
	return fmt.Sprintf("database=%s max_conns=%d programs_file=%s max_concurrent=%d log_level=%s",
		dbURL, c.Database.MaxConns, c.Import.ProgramsFile, c.Import.MaxConcurrent, c.Logging.Level)
}
