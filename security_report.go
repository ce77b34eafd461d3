package goStudio

import (
	"time"

	"github.com/MrEthical07/goStudio/internal/security"
)

// SecurityReport summarizes the security-relevant configuration of a built
// Engine. It contains no secret material.
type SecurityReport struct {
	SigningAlgorithm    string
	TokenTTL            time.Duration
	SecretBytes         int
	Argon2              PasswordConfigReport
	RegistrationEnabled bool
	SelfDeleteEnabled   bool
	AuditEnabled        bool
	MetricsEnabled      bool
	// Warnings lists accepted settings that are weaker than recommended.
	Warnings []string
}

type PasswordConfigReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func (e *Engine) SecurityReport() SecurityReport {
	if e == nil || e.jwtManager == nil || e.passwordHash == nil {
		return SecurityReport{}
	}

	params := e.passwordHash.Params()
	r := security.BuildReport(security.ReportInput{
		SigningAlgorithm: e.jwtManager.Algorithm(),
		TokenTTL:         e.jwtManager.TTL(),
		SecretBytes:      len(e.config.JWT.Secret),
		Password: security.PasswordReport{
			Memory:      params.Memory,
			Time:        params.Time,
			Parallelism: params.Parallelism,
			SaltLength:  params.SaltLength,
			KeyLength:   params.KeyLength,
		},
		RegistrationEnabled: e.config.Account.RegistrationEnabled,
		SelfDeleteEnabled:   e.config.Account.SelfDeleteEnabled,
		AuditEnabled:        e.config.Audit.Enabled,
		AuditDropIfFull:     e.config.Audit.DropIfFull,
		MetricsEnabled:      e.config.Metrics.Enabled,
	})

	return SecurityReport{
		SigningAlgorithm:    r.SigningAlgorithm,
		TokenTTL:            r.TokenTTL,
		SecretBytes:         r.SecretBytes,
		Argon2:              PasswordConfigReport(r.Argon2),
		RegistrationEnabled: r.RegistrationEnabled,
		SelfDeleteEnabled:   r.SelfDeleteEnabled,
		AuditEnabled:        r.AuditEnabled,
		MetricsEnabled:      r.MetricsEnabled,
		Warnings:            r.Warnings,
	}
}
