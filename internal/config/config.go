// Package config loads process configuration for the gostudio binary from
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"

	goStudio "github.com/MrEthical07/goStudio"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config holds the server settings. Defaults come from the struct tags.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`

	// StoreDriver selects the persistence backend: "sqlite" or "redis".
	StoreDriver string `env:"STORE_DRIVER,default=sqlite"`
	SQLiteDSN   string `env:"SQLITE_DSN,default=gostudio.db"`
	RedisAddr   string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPrefix string `env:"REDIS_PREFIX,default=gs"`

	// JWTSecret is the HMAC signing key, at least 32 bytes.
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTTTL       time.Duration `env:"JWT_TTL,default=24h"`
	JWTAlgorithm string        `env:"JWT_ALGORITHM,default=hs256"`

	LogLevel string `env:"LOG_LEVEL,default=info"`

	// CORSOrigins is a semicolon separated list.
	CORSOrigins    []string `env:"CORS_ORIGINS,default=*"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST,default=40"`

	// Seed inserts the demo users and teachers at startup.
	Seed bool `env:"SEED,default=false"`
}

// Load decodes the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the process-level settings. Engine settings derived from
// the JWT variables are validated by goStudio.Config.Validate.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLiteDSN == "" {
			return errors.New("SQLITE_DSN must be set when STORE_DRIVER=sqlite")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR must be set when STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst == 0 {
		return errors.New("RATE_LIMIT_BURST must be positive when RATE_LIMIT_RPS is set")
	}
	return nil
}

// SlogLevel maps LogLevel to an slog.Level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EngineConfig returns the engine defaults with the JWT settings applied.
func (c *Config) EngineConfig() goStudio.Config {
	cfg := goStudio.DefaultConfig()
	cfg.JWT.Secret = []byte(c.JWTSecret)
	cfg.JWT.TTL = c.JWTTTL
	cfg.JWT.SigningMethod = strings.ToLower(c.JWTAlgorithm)
	return cfg
}
