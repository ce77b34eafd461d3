package goStudio

import (
	"log/slog"
	"time"

	internalaudit "github.com/MrEthical07/goStudio/internal/audit"
	"github.com/MrEthical07/goStudio/internal/flows"
	"github.com/MrEthical07/goStudio/jwt"
	"github.com/MrEthical07/goStudio/password"
)

// Engine is the booking service core. It owns the token codec, the password
// hasher and the audit dispatcher, and borrows the stores.
//
// Engine values are immutable after [Builder.Build] and safe for concurrent use.
type Engine struct {
	config       Config
	users        CredentialStore
	sessions     SessionStore
	teachers     TeacherStore
	jwtManager   *jwt.Manager
	passwordHash *password.Argon2
	audit        *internalaudit.Dispatcher
	metrics      *Metrics
	logger       *slog.Logger
	now          func() time.Time
	flows        flows.Service
}

// Close describes the close operation and its observable behavior.
//
// Close drains the audit dispatcher. Stores are owned by the caller and stay open.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped reports events discarded by a full dispatcher buffer.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot returns empty maps when metrics are disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Logger returns the engine's structured logger.
func (e *Engine) Logger() *slog.Logger {
	if e == nil || e.logger == nil {
		return discardLogger()
	}
	return e.logger
}

// TokenTTL returns the lifetime of issued tokens.
func (e *Engine) TokenTTL() time.Duration {
	if e == nil || e.jwtManager == nil {
		return 0
	}
	return e.jwtManager.TTL()
}

func (e *Engine) ready() bool {
	return e != nil && e.flows.Initialized()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
