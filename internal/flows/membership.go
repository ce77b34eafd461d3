package flows

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MrEthical07/goStudio/session"
)

type MembershipMetrics struct {
	JoinSuccess   int
	JoinRejected  int
	LeaveSuccess  int
	LeaveRejected int
}

type MembershipEvents struct {
	Join  string
	Leave string
}

type MembershipErrors struct {
	EngineNotReady  error
	SessionNotFound error
	UserNotFound    error
	AlreadyMember   error
	NotMember       error
}

type MembershipDeps struct {
	// FindSession returns nil, nil when the session does not exist.
	FindSession func(context.Context, int64) (*session.Session, error)
	UserExists  func(context.Context, int64) (bool, error)
	SaveSession func(context.Context, *session.Session) error
	Now         func() time.Time

	MetricInc func(int)
	EmitAudit AuditFunc

	Metrics MembershipMetrics
	Events  MembershipEvents
	Errors  MembershipErrors
}

func normalizeMembershipDeps(deps *MembershipDeps) bool {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = noopMetric
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = noopAudit
	}
	return deps.FindSession != nil && deps.UserExists != nil && deps.SaveSession != nil
}

// RunJoin moves (sessionID, userID) from NotMember to Member. Checks run in
// order: session exists, user exists, user not yet a member.
func RunJoin(ctx context.Context, sessionID, userID int64, deps MembershipDeps) error {
	if !normalizeMembershipDeps(&deps) {
		return deps.Errors.EngineNotReady
	}

	uid := strconv.FormatInt(userID, 10)
	meta := func() map[string]string {
		return map[string]string{"session_id": strconv.FormatInt(sessionID, 10)}
	}
	reject := func(err error) error {
		deps.MetricInc(deps.Metrics.JoinRejected)
		deps.EmitAudit(ctx, deps.Events.Join, false, uid, err, meta)
		return err
	}

	sess, err := deps.FindSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("join lookup session: %w", err)
	}
	if sess == nil {
		return reject(deps.Errors.SessionNotFound)
	}

	exists, err := deps.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("join lookup user: %w", err)
	}
	if !exists {
		return reject(deps.Errors.UserNotFound)
	}

	next := sess.Clone()
	if !next.AddMember(userID) {
		return reject(deps.Errors.AlreadyMember)
	}
	next.UpdatedAt = deps.Now().UTC()

	if err := deps.SaveSession(ctx, next); err != nil {
		return fmt.Errorf("join save session: %w", err)
	}

	deps.MetricInc(deps.Metrics.JoinSuccess)
	deps.EmitAudit(ctx, deps.Events.Join, true, uid, nil, meta)
	return nil
}

// RunLeave moves (sessionID, userID) from Member to NotMember. A user that
// does not exist is simply not a member; it is not reported separately.
func RunLeave(ctx context.Context, sessionID, userID int64, deps MembershipDeps) error {
	if !normalizeMembershipDeps(&deps) {
		return deps.Errors.EngineNotReady
	}

	uid := strconv.FormatInt(userID, 10)
	meta := func() map[string]string {
		return map[string]string{"session_id": strconv.FormatInt(sessionID, 10)}
	}
	reject := func(err error) error {
		deps.MetricInc(deps.Metrics.LeaveRejected)
		deps.EmitAudit(ctx, deps.Events.Leave, false, uid, err, meta)
		return err
	}

	sess, err := deps.FindSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("leave lookup session: %w", err)
	}
	if sess == nil {
		return reject(deps.Errors.SessionNotFound)
	}

	next := sess.Clone()
	if !next.RemoveMember(userID) {
		return reject(deps.Errors.NotMember)
	}
	next.UpdatedAt = deps.Now().UTC()

	if err := deps.SaveSession(ctx, next); err != nil {
		return fmt.Errorf("leave save session: %w", err)
	}

	deps.MetricInc(deps.Metrics.LeaveSuccess)
	deps.EmitAudit(ctx, deps.Events.Leave, true, uid, nil, meta)
	return nil
}
