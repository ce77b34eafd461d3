package goStudio

import (
	"context"
	"strconv"
	"time"

	"github.com/MrEthical07/goStudio/internal/flows"
)

func (e *Engine) buildFlows() flows.Service {
	emit := func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string) {
		e.emitAudit(ctx, event, success, userID, err, meta)
	}
	inc := func(id int) {
		e.metricInc(MetricID(id))
	}

	findUser := func(ctx context.Context, identifier string) (*UserRecord, error) {
		return e.users.FindByIdentifier(ctx, identifier)
	}

	return flows.New(flows.Deps{
		Login: flows.LoginDeps{
			FindByIdentifier: func(ctx context.Context, identifier string) (*flows.LoginRecord, error) {
				rec, err := findUser(ctx, identifier)
				if err != nil || rec == nil {
					return nil, err
				}
				return &flows.LoginRecord{
					UserID:       rec.ID,
					Identifier:   rec.Identifier,
					PasswordHash: rec.PasswordHash,
					FirstName:    rec.FirstName,
					LastName:     rec.LastName,
					Admin:        rec.Admin,
				}, nil
			},
			VerifyPassword: e.passwordHash.Verify,
			VerifyAbsent:   e.passwordHash.VerifyAbsent,
			IssueToken:     e.jwtManager.Issue,
			MetricInc:      inc,
			EmitAudit:      emit,
			Metrics: flows.LoginMetrics{
				LoginSuccess: int(MetricLoginSuccess),
				LoginFailure: int(MetricLoginFailure),
			},
			Events: flows.LoginEvents{
				LoginSuccess: auditEventLoginSuccess,
				LoginFailure: auditEventLoginFailure,
			},
			Errors: flows.LoginErrors{
				EngineNotReady:     ErrEngineNotReady,
				InvalidCredentials: ErrInvalidCredentials,
			},
		},
		Register: flows.RegisterDeps{
			Validate: func(req flows.RegisterRequest) error {
				return e.config.Validation.register(RegisterRequest{
					Identifier: req.Identifier,
					Password:   req.Password,
					FirstName:  req.FirstName,
					LastName:   req.LastName,
				})
			},
			ExistsByIdentifier: e.users.ExistsByIdentifier,
			HashPassword:       e.passwordHash.Hash,
			CreateUser: func(ctx context.Context, in flows.AccountCreateUserInput) (flows.RegisterResult, error) {
				at := e.now().UTC()
				rec := &UserRecord{
					Identifier:   in.Identifier,
					PasswordHash: in.PasswordHash,
					FirstName:    in.FirstName,
					LastName:     in.LastName,
					Admin:        in.Admin,
					CreatedAt:    at,
					UpdatedAt:    at,
				}
				if err := e.users.Create(ctx, rec); err != nil {
					return flows.RegisterResult{}, err
				}
				return flows.RegisterResult{UserID: rec.ID, Identifier: rec.Identifier, CreatedAt: rec.CreatedAt}, nil
			},
			MetricInc: inc,
			EmitAudit: emit,
			Metrics:   e.accountMetrics(),
			Events:    e.accountEvents(),
			Errors:    e.accountErrors(),
		},
		DeleteAccount: flows.DeleteAccountDeps{
			FindIdentifierByID: func(ctx context.Context, id int64) (string, error) {
				rec, err := e.users.FindByID(ctx, id)
				if err != nil || rec == nil {
					return "", err
				}
				return rec.Identifier, nil
			},
			DeleteByIdentifier: e.users.DeleteByIdentifier,
			ListSessions:       e.sessions.List,
			SaveSession:        e.sessions.Save,
			MetricInc:          inc,
			EmitAudit:          emit,
			Metrics:            e.accountMetrics(),
			Events:             e.accountEvents(),
			Errors:             e.accountErrors(),
		},
		Identify: flows.IdentifyDeps{
			VerifyToken: e.jwtManager.Verify,
			FindByIdentifier: func(ctx context.Context, identifier string) (*flows.IdentifyRecord, error) {
				rec, err := findUser(ctx, identifier)
				if err != nil || rec == nil {
					return nil, err
				}
				return &flows.IdentifyRecord{UserID: rec.ID, Identifier: rec.Identifier, Admin: rec.Admin}, nil
			},
			Now:       e.now,
			MetricInc: inc,
			ObserveLatency: func(d time.Duration) {
				e.metricObserve(MetricIdentifyLatency, d)
			},
			Metrics: flows.IdentifyMetrics{
				Authenticated:    int(MetricIdentifyAuthenticated),
				TokenInvalid:     int(MetricIdentifyTokenInvalid),
				PrincipalMissing: int(MetricIdentifyPrincipalMissing),
				LookupFailed:     int(MetricIdentifyLookupFailed),
			},
			Errors: flows.IdentifyErrors{
				EngineNotReady: ErrEngineNotReady,
				TokenInvalid:   ErrTokenInvalid,
				PrincipalGone:  ErrPrincipalGone,
			},
		},
		Membership: flows.MembershipDeps{
			FindSession: e.sessions.FindByID,
			UserExists: func(ctx context.Context, id int64) (bool, error) {
				rec, err := e.users.FindByID(ctx, id)
				return rec != nil, err
			},
			SaveSession: e.sessions.Save,
			Now:         e.now,
			MetricInc:   inc,
			EmitAudit:   emit,
			Metrics: flows.MembershipMetrics{
				JoinSuccess:   int(MetricJoinSuccess),
				JoinRejected:  int(MetricJoinRejected),
				LeaveSuccess:  int(MetricLeaveSuccess),
				LeaveRejected: int(MetricLeaveRejected),
			},
			Events: flows.MembershipEvents{
				Join:  auditEventSessionJoin,
				Leave: auditEventSessionLeave,
			},
			Errors: flows.MembershipErrors{
				EngineNotReady:  ErrEngineNotReady,
				SessionNotFound: ErrSessionNotFound,
				UserNotFound:    ErrUserNotFound,
				AlreadyMember:   ErrAlreadyMember,
				NotMember:       ErrNotMember,
			},
		},
	})
}

func (e *Engine) accountMetrics() flows.AccountMetrics {
	return flows.AccountMetrics{
		RegisterSuccess:   int(MetricRegisterSuccess),
		RegisterDuplicate: int(MetricRegisterDuplicate),
		RegisterFailure:   int(MetricRegisterFailure),
		AccountDeleted:    int(MetricAccountDeleted),
	}
}

func (e *Engine) accountEvents() flows.AccountEvents {
	return flows.AccountEvents{
		RegisterSuccess:   auditEventRegisterSuccess,
		RegisterFailure:   auditEventRegisterFailure,
		RegisterDuplicate: auditEventRegisterDuplicate,
		AccountDeleted:    auditEventAccountDeleted,
		AccountDeleteDeny: auditEventAccountDeleteDenied,
	}
}

func (e *Engine) accountErrors() flows.AccountErrors {
	return flows.AccountErrors{
		EngineNotReady:              ErrEngineNotReady,
		Invalid:                     ErrMalformed,
		IdentifierTaken:             ErrIdentifierTaken,
		ProviderDuplicateIdentifier: ErrDuplicateIdentifier,
		UserNotFound:                ErrUserNotFound,
		PermissionDenied:            ErrPermissionDenied,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
