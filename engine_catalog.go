package goStudio

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goStudio/permission"
)

// Sessions lists every session in ID order.
func (e *Engine) Sessions(ctx context.Context) ([]*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	return e.sessions.List(ctx)
}

func (e *Engine) Session(ctx context.Context, id int64) (*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	s, err := e.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// CreateSession describes the createsession operation and its observable behavior.
//
// CreateSession requires an administrator, validates in and requires the
// referenced teacher to exist. The new session has no participants.
func (e *Engine) CreateSession(ctx context.Context, p *Principal, in SessionInput) (*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if err := e.requireAdmin(ctx, p, "create_session"); err != nil {
		return nil, err
	}
	if err := e.checkSessionInput(ctx, in); err != nil {
		return nil, err
	}

	at := e.now().UTC()
	s := &Session{
		Name:        in.Name,
		Date:        in.Date.UTC(),
		TeacherID:   in.TeacherID,
		Description: in.Description,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	if err := e.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	e.metricInc(MetricSessionCreated)
	e.emitAudit(ctx, auditEventSessionCreated, true, formatID(p.ID), nil, sessionMeta(s.ID))
	return s, nil
}

// UpdateSession describes the updatesession operation and its observable behavior.
//
// UpdateSession replaces the mutable fields of an existing session and keeps
// its participants and creation time.
func (e *Engine) UpdateSession(ctx context.Context, p *Principal, id int64, in SessionInput) (*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if err := e.requireAdmin(ctx, p, "update_session"); err != nil {
		return nil, err
	}
	if err := e.checkSessionInput(ctx, in); err != nil {
		return nil, err
	}

	current, err := e.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrSessionNotFound
	}

	next := current.Clone()
	next.Name = in.Name
	next.Date = in.Date.UTC()
	next.TeacherID = in.TeacherID
	next.Description = in.Description
	next.UpdatedAt = e.now().UTC()

	if err := e.sessions.Save(ctx, next); err != nil {
		return nil, err
	}

	e.metricInc(MetricSessionUpdated)
	e.emitAudit(ctx, auditEventSessionUpdated, true, formatID(p.ID), nil, sessionMeta(id))
	return next, nil
}

func (e *Engine) DeleteSession(ctx context.Context, p *Principal, id int64) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	if err := e.requireAdmin(ctx, p, "delete_session"); err != nil {
		return err
	}

	current, err := e.sessions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrSessionNotFound
	}
	if err := e.sessions.Delete(ctx, id); err != nil {
		return err
	}

	e.metricInc(MetricSessionDeleted)
	e.emitAudit(ctx, auditEventSessionDeleted, true, formatID(p.ID), nil, sessionMeta(id))
	return nil
}

func (e *Engine) Teachers(ctx context.Context) ([]*Teacher, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	return e.teachers.List(ctx)
}

func (e *Engine) Teacher(ctx context.Context, id int64) (*Teacher, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	t, err := e.teachers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTeacherNotFound
	}
	return t, nil
}

// User returns the record for id. PasswordHash is cleared.
func (e *Engine) User(ctx context.Context, id int64) (*UserRecord, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	rec, err := e.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrUserNotFound
	}
	out := *rec
	out.PasswordHash = ""
	return &out, nil
}

// DeleteAccount describes the deleteaccount operation and its observable behavior.
//
// DeleteAccount removes the account id when p is that account. It returns
// ErrUserNotFound when id does not exist and ErrPermissionDenied when p is
// anyone else, administrators included.
func (e *Engine) DeleteAccount(ctx context.Context, p *Principal, id int64) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	if !e.config.Account.SelfDeleteEnabled {
		return ErrPermissionDenied
	}
	return e.flows.DeleteAccount(ctx, id, func(target string) bool {
		return permission.SelfOnly(p, target).Allowed()
	})
}

func (e *Engine) requireAdmin(ctx context.Context, p *Principal, action string) error {
	if permission.AdminOnly(p).Allowed() {
		return nil
	}
	e.emitAudit(ctx, auditEventAdminDenied, false, principalID(p), ErrPermissionDenied, func() map[string]string {
		return map[string]string{"action": action}
	})
	return ErrPermissionDenied
}

func (e *Engine) checkSessionInput(ctx context.Context, in SessionInput) error {
	if err := e.config.Validation.session(in); err != nil {
		return err
	}
	t, err := e.teachers.FindByID(ctx, in.TeacherID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: teacher %d does not exist", ErrMalformed, in.TeacherID)
	}
	return nil
}

func sessionMeta(id int64) func() map[string]string {
	return func() map[string]string {
		return map[string]string{"session_id": formatID(id)}
	}
}

func principalID(p *Principal) string {
	if p == nil {
		return ""
	}
	return formatID(p.ID)
}
