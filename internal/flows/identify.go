package flows

import (
	"context"
	"fmt"
	"time"
)

// IdentifyRecord is the flow-local view of a principal.
type IdentifyRecord struct {
	UserID     int64
	Identifier string
	Admin      bool
}

type IdentifyMetrics struct {
	Authenticated    int
	TokenInvalid     int
	PrincipalMissing int
	LookupFailed     int
}

type IdentifyErrors struct {
	EngineNotReady error
	TokenInvalid   error
	PrincipalGone  error
}

type IdentifyDeps struct {
	VerifyToken func(string) (string, error)
	// FindByIdentifier returns nil, nil when no record exists.
	FindByIdentifier func(context.Context, string) (*IdentifyRecord, error)

	Now            func() time.Time
	MetricInc      func(int)
	ObserveLatency func(time.Duration)

	Metrics IdentifyMetrics
	Errors  IdentifyErrors
}

// RunIdentify resolves a bearer token to a principal record. It performs one
// signature check and at most one store read.
func RunIdentify(ctx context.Context, token string, deps IdentifyDeps) (*IdentifyRecord, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.ObserveLatency == nil {
		deps.ObserveLatency = func(time.Duration) {}
	}
	if deps.VerifyToken == nil || deps.FindByIdentifier == nil {
		return nil, deps.Errors.EngineNotReady
	}

	start := deps.Now()
	defer func() {
		deps.ObserveLatency(deps.Now().Sub(start))
	}()

	subject, err := deps.VerifyToken(token)
	if err != nil {
		deps.MetricInc(deps.Metrics.TokenInvalid)
		return nil, fmt.Errorf("%w: %w", deps.Errors.TokenInvalid, err)
	}

	rec, err := deps.FindByIdentifier(ctx, subject)
	if err != nil {
		deps.MetricInc(deps.Metrics.LookupFailed)
		return nil, fmt.Errorf("identify lookup: %w", err)
	}
	if rec == nil {
		deps.MetricInc(deps.Metrics.PrincipalMissing)
		return nil, deps.Errors.PrincipalGone
	}

	deps.MetricInc(deps.Metrics.Authenticated)
	return rec, nil
}
