package goStudio

import (
	"context"
	"errors"

	internalaudit "github.com/MrEthical07/goStudio/internal/audit"
	"github.com/MrEthical07/goStudio/session"
)

const (
	auditEventLoginSuccess        = "login_success"
	auditEventLoginFailure        = "login_failure"
	auditEventRegisterSuccess     = "register_success"
	auditEventRegisterFailure     = "register_failure"
	auditEventRegisterDuplicate   = "register_duplicate"
	auditEventAccountDeleted      = "account_deleted"
	auditEventAccountDeleteDenied = "account_delete_denied"
	auditEventSessionJoin         = "session_join"
	auditEventSessionLeave        = "session_leave"
	auditEventSessionCreated      = "session_created"
	auditEventSessionUpdated      = "session_updated"
	auditEventSessionDeleted      = "session_deleted"
	auditEventAdminDenied         = "admin_denied"
)

// AuditErrorCode is the stable, non-sensitive error label carried by audit events.
type AuditErrorCode string

const (
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrPermissionDenied   AuditErrorCode = "permission_denied"
	auditErrUnauthenticated    AuditErrorCode = "unauthenticated"
	auditErrSessionNotFound    AuditErrorCode = "session_not_found"
	auditErrUserNotFound       AuditErrorCode = "user_not_found"
	auditErrNotFound           AuditErrorCode = "not_found"
	auditErrAlreadyMember      AuditErrorCode = "already_member"
	auditErrNotMember          AuditErrorCode = "not_member"
	auditErrDuplicate          AuditErrorCode = "duplicate"
	auditErrMalformed          AuditErrorCode = "malformed"
	auditErrUnavailable        AuditErrorCode = "backend_unavailable"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := internalaudit.NewEvent(eventType, e.now())
	event.UserID = userID
	event.IP = clientIPFromContext(ctx)
	event.RequestID = requestIDFromContext(ctx)
	event.Success = success
	if sid, ok := metadata["session_id"]; ok {
		event.SessionID = sid
		delete(metadata, "session_id")
		if len(metadata) == 0 {
			metadata = nil
		}
	}
	event.Metadata = metadata
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrUnauthorized):
		return auditErrPermissionDenied
	case errors.Is(err, ErrUnauthenticated):
		return auditErrUnauthenticated
	case errors.Is(err, ErrSessionNotFound):
		return auditErrSessionNotFound
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrNotFound):
		return auditErrNotFound
	case errors.Is(err, ErrAlreadyMember):
		return auditErrAlreadyMember
	case errors.Is(err, ErrNotMember):
		return auditErrNotMember
	case errors.Is(err, ErrIdentifierTaken),
		errors.Is(err, ErrDuplicateIdentifier):
		return auditErrDuplicate
	case errors.Is(err, ErrMalformed):
		return auditErrMalformed
	case errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, session.ErrRedisUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
