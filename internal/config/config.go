// Package config loads and validates service configuration from YAML files
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30 * time.Second
	defaultDatabasePort    = 5432
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultRedisAddress    = "localhost:6379"
)

// QueryModeJoin resolves sources with a batched junction-table join;
// QueryModeProc calls the problems_with_sources() stored function instead.
const (
	QueryModeJoin = "join"
	QueryModeProc = "proc"
)

type Config struct {
	Debug    bool           `env:"APP_DEBUG" yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Fixtures FixturesConfig `yaml:"fixtures"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// DatabaseConfig describes the optional backing store. An empty Host means
// the store is not configured and the service serves fixture data only.
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"       yaml:"host"`
	Port            int           `env:"DB_PORT"       yaml:"port"`
	User            string        `env:"DB_USER"       yaml:"user"`
	Password        string        `env:"DB_PASSWORD"   yaml:"password"`
	DBName          string        `env:"DB_NAME"       yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"    yaml:"sslmode"`
	QueryMode       string        `env:"DB_QUERY_MODE" yaml:"query_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Configured reports whether a backing store endpoint was provided at all.
func (d DatabaseConfig) Configured() bool {
	return d.Host != ""
}

// RedisConfig holds Redis connection settings for the optional event stream.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"`
}

// FixturesConfig points at an optional on-disk override for the embedded
// fallback dataset. When set, the file is watched and hot-reloaded.
type FixturesConfig struct {
	Path string `env:"FIXTURES_PATH" yaml:"path"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Database.Configured() {
		if c.Database.Port <= 0 {
			return errors.New("database.port must be positive when database.host is set")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required when database.host is set")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required when database.host is set")
		}
		if c.Database.QueryMode != QueryModeJoin && c.Database.QueryMode != QueryModeProc {
			return fmt.Errorf("database.query_mode must be %q or %q", QueryModeJoin, QueryModeProc)
		}
	}
	return nil
}

// Load reads configuration from path, applies defaults and env overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(cfg)
	// env always wins, including over defaults
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Database.Configured() {
		if cfg.Database.Port == 0 {
			cfg.Database.Port = defaultDatabasePort
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.QueryMode == "" {
			cfg.Database.QueryMode = QueryModeJoin
		}
		if cfg.Database.MaxOpenConns == 0 {
			cfg.Database.MaxOpenConns = defaultMaxOpenConns
		}
		if cfg.Database.MaxIdleConns == 0 {
			cfg.Database.MaxIdleConns = defaultMaxIdleConns
		}
		if cfg.Database.ConnMaxLifetime == 0 {
			cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime
		}
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
}
