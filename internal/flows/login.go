package flows

import (
	"context"
	"fmt"
	"strconv"
)

// LoginRecord is the flow-local view of a credential record.
type LoginRecord struct {
	UserID       int64
	Identifier   string
	PasswordHash string
	FirstName    string
	LastName     string
	Admin        bool
}

// LoginResult is the flow-local login response shape.
type LoginResult struct {
	Record LoginRecord
	Token  string
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	LoginSuccess int
	LoginFailure int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	LoginSuccess string
	LoginFailure string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady     error
	InvalidCredentials error
}

// LoginDeps captures login dependencies.
type LoginDeps struct {
	// FindByIdentifier returns nil, nil when no record exists.
	FindByIdentifier func(context.Context, string) (*LoginRecord, error)
	VerifyPassword   func(password, encodedHash string) (bool, error)
	VerifyAbsent     func(password string) bool
	IssueToken       func(subject string) (string, error)

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin verifies identifier and secret and issues a token on success.
// Unknown identifiers and wrong secrets fail identically, and both spend one
// full password verification.
func RunLogin(ctx context.Context, identifier, secret string, deps LoginDeps) (*LoginResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	if deps.FindByIdentifier == nil ||
		deps.VerifyPassword == nil ||
		deps.VerifyAbsent == nil ||
		deps.IssueToken == nil {
		return nil, deps.Errors.EngineNotReady
	}

	fail := func(userID, why string, err error) {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, userID, err, reason(why))
	}

	rec, err := deps.FindByIdentifier(ctx, identifier)
	if err != nil {
		fail("", "lookup_failed", err)
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if rec == nil {
		deps.VerifyAbsent(secret)
		fail("", "unknown_identifier", deps.Errors.InvalidCredentials)
		return nil, deps.Errors.InvalidCredentials
	}

	userID := strconv.FormatInt(rec.UserID, 10)
	ok, err := deps.VerifyPassword(secret, rec.PasswordHash)
	if err != nil {
		fail(userID, "hash_unreadable", deps.Errors.InvalidCredentials)
		return nil, deps.Errors.InvalidCredentials
	}
	if !ok {
		fail(userID, "secret_mismatch", deps.Errors.InvalidCredentials)
		return nil, deps.Errors.InvalidCredentials
	}

	token, err := deps.IssueToken(rec.Identifier)
	if err != nil {
		fail(userID, "token_issue_failed", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.EmitAudit(ctx, deps.Events.LoginSuccess, true, userID, nil, nil)

	return &LoginResult{Record: *rec, Token: token}, nil
}
