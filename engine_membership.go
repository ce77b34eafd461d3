package goStudio

import "context"

// JoinSession adds userID to the participants of sessionID.
//
// Errors, in check order: ErrSessionNotFound, ErrUserNotFound, ErrAlreadyMember.
// A rejected join leaves the stored session untouched.
func (e *Engine) JoinSession(ctx context.Context, sessionID, userID int64) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	return e.flows.Join(ctx, sessionID, userID)
}

// LeaveSession removes userID from the participants of sessionID.
//
// Errors: ErrSessionNotFound, then ErrNotMember. An unknown userID is
// reported as ErrNotMember.
func (e *Engine) LeaveSession(ctx context.Context, sessionID, userID int64) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	return e.flows.Leave(ctx, sessionID, userID)
}
