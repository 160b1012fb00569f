package exec

import (
	"time"

	"github.com/rs/zerolog"
)

// Settings control statement tracking.
type Settings struct {
	// SlowThreshold is the duration above which statements log at warn.
	SlowThreshold time.Duration

	// LogParameters adds bound arguments to statement logs.
	LogParameters bool

	// MaxQueryLength truncates logged SQL and arguments. Zero disables truncation.
	MaxQueryLength int
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		SlowThreshold:  200 * time.Millisecond,
		MaxQueryLength: 1000,
	}
}

// PoolSettings size a database/sql connection pool.
type PoolSettings struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

type options struct {
	logger   zerolog.Logger
	settings Settings
}

// Option configures a pool.
type Option func(*options)

// WithLogger sets the statement logger. The default logger discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSettings replaces the tracking settings.
func WithSettings(s Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zerolog.Nop(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
