// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config holds the process configuration of the ncerr tools.
//
// Values come from defaults, NCERR_* environment variables (Load) and
// functional options, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/poiesic/ncerr/core"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ncerr"

var (
	// ErrDBPathRequired is returned when neither a database path nor in-memory storage is configured.
	ErrDBPathRequired = errors.New("database path required unless in-memory storage is used")

	// ErrInvalidLogLevel is returned for a log level other than debug, info, warn or error.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidPoolSize is returned for a negative pool size.
	ErrInvalidPoolSize = errors.New("pool size cannot be negative")

	// ErrInvalidReportInterval is returned for a report interval below 1.
	ErrInvalidReportInterval = errors.New("report interval must be greater than 0")

	// ErrInvalidSessionMap is returned for a malformed session map.
	ErrInvalidSessionMap = errors.New("invalid session map")
)

// Config holds configuration for the translation engine and its tools.
type Config struct {
	// DBPath is the BadgerDB directory holding session errors.
	DBPath string `envconfig:"DB_PATH"`

	// InMemory keeps session errors in memory only.
	InMemory bool `envconfig:"IN_MEMORY" default:"false"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// PoolSize is the number of batch workers. 0 uses one worker per CPU.
	PoolSize int `envconfig:"POOL_SIZE" default:"0"`

	// ReportInterval reports batch progress every N jobs.
	// Default: 100
	ReportInterval int `envconfig:"REPORT_INTERVAL" default:"100"`

	// Strict makes contract violations panic.
	Strict bool `envconfig:"STRICT" default:"false"`

	// SessionMap lists live sessions as "internal:public" pairs.
	// Example: "42:7,43:8"
	SessionMap string `envconfig:"SESSION_MAP" default:""`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDBPath sets the database directory.
func WithDBPath(path string) ConfigOption {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithInMemory selects in-memory storage.
func WithInMemory(inMemory bool) ConfigOption {
	return func(c *Config) {
		c.InMemory = inMemory
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithPoolSize sets the number of batch workers.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithReportInterval sets the progress report interval.
func WithReportInterval(interval int) ConfigOption {
	return func(c *Config) {
		c.ReportInterval = interval
	}
}

// WithStrict enables strict contract checking.
func WithStrict(strict bool) ConfigOption {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithSessionMap sets the session map.
func WithSessionMap(sessionMap string) ConfigOption {
	return func(c *Config) {
		c.SessionMap = sessionMap
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		ReportInterval: 100,
	}
}

// NewConfig creates a new Config with the given options applied to the defaults.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads the configuration from NCERR_* environment variables and applies opts on top.
func Load(opts ...ConfigOption) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" && !c.InMemory {
		return ErrDBPathRequired
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoolSize, c.PoolSize)
	}
	if c.ReportInterval < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidReportInterval, c.ReportInterval)
	}
	if _, err := c.Sessions(); err != nil {
		return err
	}
	return nil
}

// Sessions parses SessionMap into internal to public session ids.
func (c *Config) Sessions() (map[core.SessionID]uint32, error) {
	return ParseSessionMap(c.SessionMap)
}

// ParseSessionMap parses "internal:public" pairs separated by commas.
func ParseSessionMap(raw string) (map[core.SessionID]uint32, error) {
	result := make(map[core.SessionID]uint32)

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		internal, public, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q (expected internal:public)", ErrInvalidSessionMap, entry)
		}

		id, err := strconv.ParseUint(strings.TrimSpace(internal), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: internal id in %q: %w", ErrInvalidSessionMap, entry, err)
		}
		publicID, err := strconv.ParseUint(strings.TrimSpace(public), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: public id in %q: %w", ErrInvalidSessionMap, entry, err)
		}
		if _, dup := result[core.SessionID(id)]; dup {
			return nil, fmt.Errorf("%w: duplicate internal id %d", ErrInvalidSessionMap, id)
		}

		result[core.SessionID(id)] = uint32(publicID)
	}

	return result, nil
}

// ParseLogLevel maps debug, info, warn or error (any case) to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w %q: must be one of debug, info, warn, error", ErrInvalidLogLevel, level)
}
