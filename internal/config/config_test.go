package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "gostudio.db", cfg.SQLiteDSN)
	assert.Equal(t, "gs", cfg.RedisPrefix)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.Seed)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example;https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "11")
	t.Setenv("SEED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.InDelta(t, 5.5, cfg.RateLimitRPS, 0.001)
	assert.Equal(t, 11, cfg.RateLimitBurst)
	assert.True(t, cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	engineCfg := cfg.EngineConfig()
	assert.Equal(t, "hs512", engineCfg.JWT.SigningMethod)
	assert.Equal(t, 2*time.Hour, engineCfg.JWT.TTL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestValidateRateLimit(t *testing.T) {
	cfg := Config{StoreDriver: DriverSQLite, SQLiteDSN: "x.db", RateLimitRPS: 10}
	assert.Error(t, cfg.Validate())

	cfg.RateLimitBurst = 10
	assert.NoError(t, cfg.Validate())

	cfg.RateLimitRPS = 0
	cfg.RateLimitBurst = 0
	assert.NoError(t, cfg.Validate(), "zero rps disables limiting")
}

func TestEngineConfigValidatesSecret(t *testing.T) {
	cfg := Config{JWTSecret: "short", JWTTTL: time.Hour, JWTAlgorithm: "hs256"}
	engineCfg := cfg.EngineConfig()
	assert.Error(t, engineCfg.Validate())

	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	engineCfg = cfg.EngineConfig()
	assert.NoError(t, engineCfg.Validate())
}
