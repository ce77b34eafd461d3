package security

import "time"

// Thresholds below which BuildReport emits a warning.
const (
	MinArgon2MemoryKiB = 19 * 1024
	MaxTokenTTL        = 7 * 24 * time.Hour
	hs512SecretBytes   = 64
)

type PasswordReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

type Report struct {
	SigningAlgorithm    string
	TokenTTL            time.Duration
	SecretBytes         int
	Argon2              PasswordReport
	RegistrationEnabled bool
	SelfDeleteEnabled   bool
	AuditEnabled        bool
	MetricsEnabled      bool
	Warnings            []string
}

type ReportInput struct {
	SigningAlgorithm    string
	TokenTTL            time.Duration
	SecretBytes         int
	Password            PasswordReport
	RegistrationEnabled bool
	SelfDeleteEnabled   bool
	AuditEnabled        bool
	AuditDropIfFull     bool
	MetricsEnabled      bool
}

// BuildReport copies input into a Report and lists the settings that are
// valid but weaker than recommended. Warnings never contain secret material.
func BuildReport(input ReportInput) Report {
	var warnings []string
	if input.Password.Memory < MinArgon2MemoryKiB {
		warnings = append(warnings, "argon2 memory is below 19 MiB")
	}
	if input.TokenTTL > MaxTokenTTL {
		warnings = append(warnings, "token ttl exceeds 7 days and tokens cannot be revoked")
	}
	if input.SigningAlgorithm == "HS512" && input.SecretBytes < hs512SecretBytes {
		warnings = append(warnings, "HS512 secret is shorter than 64 bytes")
	}
	if input.AuditEnabled && input.AuditDropIfFull {
		warnings = append(warnings, "audit events are dropped when the buffer is full")
	}

	return Report{
		SigningAlgorithm:    input.SigningAlgorithm,
		TokenTTL:            input.TokenTTL,
		SecretBytes:         input.SecretBytes,
		Argon2:              input.Password,
		RegistrationEnabled: input.RegistrationEnabled,
		SelfDeleteEnabled:   input.SelfDeleteEnabled,
		AuditEnabled:        input.AuditEnabled,
		MetricsEnabled:      input.MetricsEnabled,
		Warnings:            warnings,
	}
}
