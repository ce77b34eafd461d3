package goStudio

import (
	"errors"
	"time"
)

// Config holds every Engine tunable. Obtain a populated value from
// [DefaultConfig], adjust it, and pass it to [Builder.WithConfig].
type Config struct {
	JWT        JWTConfig
	Password   PasswordConfig
	Account    AccountConfig
	Validation ValidationConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the session token codec.
type JWTConfig struct {
	TTL           time.Duration
	SigningMethod string // "hs256" (default) or "hs512"
	// Secret is the symmetric signing key, at least 32 bytes. It is copied
	// at Build and never exposed again.
	Secret []byte
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds the Argon2id cost parameters. Memory is in KiB.
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
ACCOUNT CONFIG
====================================
*/

// AccountConfig controls self-service account lifecycle.
type AccountConfig struct {
	RegistrationEnabled bool
	SelfDeleteEnabled   bool
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// ValidationConfig bounds the shape of caller input. Lengths count runes.
type ValidationConfig struct {
	MaxIdentifierLength  int
	MinNameLength        int
	MaxNameLength        int
	MinPasswordLength    int
	MaxPasswordLength    int
	MaxSessionNameLength int
	MaxDescriptionLength int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls in-process counters and latency histograms.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the production defaults. The JWT secret is left
// empty and must be supplied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			TTL:           24 * time.Hour,
			SigningMethod: "hs256",
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Account: AccountConfig{
			RegistrationEnabled: true,
			SelfDeleteEnabled:   true,
		},
		Validation: ValidationConfig{
			MaxIdentifierLength:  50,
			MinNameLength:        3,
			MaxNameLength:        20,
			MinPasswordLength:    6,
			MaxPasswordLength:    40,
			MaxSessionNameLength: 50,
			MaxDescriptionLength: 2500,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.Secret = cloneBytes(cfg.JWT.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate returns the first violated constraint. It never mutates c.
func (c *Config) Validate() error {
	// JWT
	if c.JWT.TTL <= 0 {
		return errors.New("JWT TTL must be > 0")
	}
	if c.JWT.TTL%time.Second != 0 {
		return errors.New("JWT TTL must be a whole number of seconds")
	}
	if c.JWT.SigningMethod != "hs256" && c.JWT.SigningMethod != "hs512" {
		return errors.New("unsupported JWT signing method")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT Secret must be at least 32 bytes")
	}

	// Password
	if c.Password.Memory < 8*1024 {
		return errors.New("Password Memory must be >= 8192 KB")
	}
	if c.Password.Time < 1 {
		return errors.New("Password Time must be >= 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("Password Parallelism must be >= 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("Password SaltLength must be >= 16")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("Password KeyLength must be >= 16")
	}

	// Validation
	v := c.Validation
	if v.MaxIdentifierLength <= 0 {
		return errors.New("Validation MaxIdentifierLength must be > 0")
	}
	if v.MinNameLength < 1 || v.MaxNameLength < v.MinNameLength {
		return errors.New("Validation name bounds are inconsistent")
	}
	if v.MinPasswordLength < 1 || v.MaxPasswordLength < v.MinPasswordLength {
		return errors.New("Validation password bounds are inconsistent")
	}
	if v.MaxSessionNameLength <= 0 || v.MaxDescriptionLength <= 0 {
		return errors.New("Validation session bounds must be > 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when enabled")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}
