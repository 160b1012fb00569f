// Package config loads sqlchain settings from defaults, an optional YAML
// file, and SQLCHAIN_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/zoobzio/sqlchain/exec"
)

// EnvPrefix marks environment variables read by Load. Nested keys are
// separated by a double underscore: SQLCHAIN_DATABASE__POOL__MAX_OPEN.
const EnvPrefix = "SQLCHAIN_"

// Config is the top-level configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig selects and sizes the database connection.
type DatabaseConfig struct {
	Driver string      `koanf:"driver" validate:"omitempty,oneof=postgres postgresql pgx mysql mariadb sqlite sqlite3 sqlserver mssql"`
	DSN    string      `koanf:"dsn"`
	Pool   PoolConfig  `koanf:"pool"`
	Query  QueryConfig `koanf:"query"`
}

// PoolConfig sizes the connection pool. Zero keeps the driver default.
type PoolConfig struct {
	MaxOpen     int           `koanf:"max_open" validate:"gte=0,lte=2147483647"`
	MaxIdle     int           `koanf:"max_idle" validate:"gte=0,lte=2147483647"`
	MaxLifetime time.Duration `koanf:"max_lifetime" validate:"gte=0"`
	MaxIdleTime time.Duration `koanf:"max_idle_time" validate:"gte=0"`
}

// QueryConfig controls statement logging.
type QueryConfig struct {
	SlowThreshold time.Duration `koanf:"slow_threshold" validate:"gte=0"`
	LogParameters bool          `koanf:"log_parameters"`
	MaxLogLength  int           `koanf:"max_log_length" validate:"gte=0"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Load reads configuration with priority, highest first:
// 1. SQLCHAIN_ environment variables
// 2. the YAML file at path, when path is not empty
// 3. defaults
func Load(path string) (*Config, error) {
	return load(path, os.Environ)
}

func load(path string, environ func() []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   environ,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func defaults() map[string]any {
	s := exec.DefaultSettings()
	return map[string]any{
		"database.driver":               "postgres",
		"database.dsn":                  "",
		"database.pool.max_open":        10,
		"database.pool.max_idle":        5,
		"database.pool.max_lifetime":    "30m",
		"database.pool.max_idle_time":   "5m",
		"database.query.slow_threshold": s.SlowThreshold.String(),
		"database.query.log_parameters": false,
		"database.query.max_log_length": s.MaxQueryLength,

		"log.level":  "info",
		"log.pretty": false,
	}
}

// transformEnv maps SQLCHAIN_DATABASE__POOL__MAX_OPEN to database.pool.max_open.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), value
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.Database.Pool.MaxOpen > 0 && cfg.Database.Pool.MaxIdle > cfg.Database.Pool.MaxOpen {
		return errors.New("database.pool.max_idle must not exceed database.pool.max_open")
	}
	return nil
}

// connection holds the fields needed to reach a server.
type connection struct {
	Driver string `validate:"required"`
	DSN    string `validate:"required"`
}

// ValidateConnection checks that a driver and DSN are set. Commands that
// never connect skip it.
func (c DatabaseConfig) ValidateConnection() error {
	err := validate.Struct(connection{Driver: c.Driver, DSN: c.DSN})
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("database.%s is required", strings.ToLower(verrs[0].Field()))
	}
	return err
}

// Dialect returns the exec dialect for the configured driver.
func (c DatabaseConfig) Dialect() (exec.Dialect, error) {
	return exec.DialectFor(c.Driver)
}

// PoolSettings converts the pool section for exec.
func (c DatabaseConfig) PoolSettings() exec.PoolSettings {
	return exec.PoolSettings{
		MaxOpen:     c.Pool.MaxOpen,
		MaxIdle:     c.Pool.MaxIdle,
		MaxLifetime: c.Pool.MaxLifetime,
		MaxIdleTime: c.Pool.MaxIdleTime,
	}
}

// QuerySettings converts the query section for exec.
func (c DatabaseConfig) QuerySettings() exec.Settings {
	return exec.Settings{
		SlowThreshold:  c.Query.SlowThreshold,
		LogParameters:  c.Query.LogParameters,
		MaxQueryLength: c.Query.MaxLogLength,
	}
}
