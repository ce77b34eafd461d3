package flows

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goStudio/session"
)

type RegisterRequest struct {
	Identifier string
	Password   string
	FirstName  string
	LastName   string
	Admin      bool
}

type RegisterResult struct {
	UserID     int64
	Identifier string
	CreatedAt  time.Time
}

type AccountCreateUserInput struct {
	Identifier   string
	PasswordHash string
	FirstName    string
	LastName     string
	Admin        bool
}

type AccountMetrics struct {
	RegisterSuccess   int
	RegisterDuplicate int
	RegisterFailure   int
	AccountDeleted    int
}

type AccountEvents struct {
	RegisterSuccess   string
	RegisterFailure   string
	RegisterDuplicate string
	AccountDeleted    string
	AccountDeleteDeny string
}

type AccountErrors struct {
	EngineNotReady              error
	Invalid                     error
	IdentifierTaken             error
	ProviderDuplicateIdentifier error
	UserNotFound                error
	PermissionDenied            error
}

type RegisterDeps struct {
	Validate           func(RegisterRequest) error
	ExistsByIdentifier func(context.Context, string) (bool, error)
	HashPassword       func(string) (string, error)
	CreateUser         func(context.Context, AccountCreateUserInput) (RegisterResult, error)

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics AccountMetrics
	Events  AccountEvents
	Errors  AccountErrors
}

// RunRegister creates a credential record. The existence check rejects the
// common duplicate before any hashing; a store-level duplicate rejection
// that races past the check is reported the same way.
func RunRegister(ctx context.Context, req RegisterRequest, deps RegisterDeps) (*RegisterResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	if deps.ExistsByIdentifier == nil || deps.HashPassword == nil || deps.CreateUser == nil {
		return nil, deps.Errors.EngineNotReady
	}

	if deps.Validate != nil {
		if err := deps.Validate(req); err != nil {
			deps.MetricInc(deps.Metrics.RegisterFailure)
			deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, reason("invalid_request"))
			return nil, err
		}
	}

	duplicate := func() (*RegisterResult, error) {
		deps.MetricInc(deps.Metrics.RegisterDuplicate)
		deps.EmitAudit(ctx, deps.Events.RegisterDuplicate, false, "", deps.Errors.IdentifierTaken, nil)
		return nil, deps.Errors.IdentifierTaken
	}

	exists, err := deps.ExistsByIdentifier(ctx, req.Identifier)
	if err != nil {
		deps.MetricInc(deps.Metrics.RegisterFailure)
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, reason("lookup_failed"))
		return nil, fmt.Errorf("register lookup: %w", err)
	}
	if exists {
		return duplicate()
	}

	hash, err := deps.HashPassword(req.Password)
	if err != nil {
		deps.MetricInc(deps.Metrics.RegisterFailure)
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, reason("hash_failed"))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := deps.CreateUser(ctx, AccountCreateUserInput{
		Identifier:   req.Identifier,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Admin:        req.Admin,
	})
	if err != nil {
		if deps.Errors.ProviderDuplicateIdentifier != nil && errors.Is(err, deps.Errors.ProviderDuplicateIdentifier) {
			return duplicate()
		}
		deps.MetricInc(deps.Metrics.RegisterFailure)
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, reason("create_failed"))
		return nil, fmt.Errorf("create user: %w", err)
	}

	deps.MetricInc(deps.Metrics.RegisterSuccess)
	deps.EmitAudit(ctx, deps.Events.RegisterSuccess, true, strconv.FormatInt(created.UserID, 10), nil, nil)

	return &created, nil
}

type DeleteAccountDeps struct {
	// FindIdentifierByID returns "" with no error when the user does not exist.
	FindIdentifierByID func(context.Context, int64) (string, error)
	// Authorize applies the self-only rule to the target identifier.
	Authorize          func(targetIdentifier string) bool
	DeleteByIdentifier func(context.Context, string) error
	// ListSessions and SaveSession, when set, remove the deleted user from
	// every participant set. Stores that cascade the delete leave nothing to
	// remove.
	ListSessions func(context.Context) ([]*session.Session, error)
	SaveSession  func(context.Context, *session.Session) error

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics AccountMetrics
	Events  AccountEvents
	Errors  AccountErrors
}

// RunDeleteAccount removes the account identified by userID when the caller
// is that account. Tokens already issued to it stay valid until expiry but
// no longer resolve to a principal.
func RunDeleteAccount(ctx context.Context, userID int64, deps DeleteAccountDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	if deps.FindIdentifierByID == nil || deps.Authorize == nil || deps.DeleteByIdentifier == nil {
		return deps.Errors.EngineNotReady
	}

	uid := strconv.FormatInt(userID, 10)
	identifier, err := deps.FindIdentifierByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete account lookup: %w", err)
	}
	if identifier == "" {
		return deps.Errors.UserNotFound
	}
	if !deps.Authorize(identifier) {
		deps.EmitAudit(ctx, deps.Events.AccountDeleteDeny, false, uid, deps.Errors.PermissionDenied, nil)
		return deps.Errors.PermissionDenied
	}

	if err := deps.DeleteByIdentifier(ctx, identifier); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := dropMemberships(ctx, userID, deps); err != nil {
		return fmt.Errorf("delete account memberships: %w", err)
	}

	deps.MetricInc(deps.Metrics.AccountDeleted)
	deps.EmitAudit(ctx, deps.Events.AccountDeleted, true, uid, nil, nil)
	return nil
}

func dropMemberships(ctx context.Context, userID int64, deps DeleteAccountDeps) error {
	if deps.ListSessions == nil || deps.SaveSession == nil {
		return nil
	}
	sessions, err := deps.ListSessions(ctx)
	if err != nil {
		return err
	}
	for _, sess := range sessions {
		next := sess.Clone()
		if !next.RemoveMember(userID) {
			continue
		}
		if err := deps.SaveSession(ctx, next); err != nil {
			return err
		}
	}
	return nil
}
