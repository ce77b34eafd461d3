package goStudio

import "context"

// Identify describes the identify operation and its observable behavior.
//
// Identify verifies token and resolves its subject with one credential store
// read. Token faults match ErrTokenInvalid, a subject that no longer exists
// matches ErrPrincipalGone, and store faults are returned wrapped. Identify
// never caches.
func (e *Engine) Identify(ctx context.Context, token string) (*Principal, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	rec, err := e.flows.Identify(ctx, token)
	if err != nil {
		return nil, err
	}

	return &Principal{
		ID:         rec.UserID,
		Identifier: rec.Identifier,
		Admin:      rec.Admin,
	}, nil
}
