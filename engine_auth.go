package goStudio

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goStudio/internal/flows"
)

// Login describes the login operation and its observable behavior.
//
// Login returns ErrInvalidCredentials for an unknown identifier and for a
// wrong secret alike, after the same amount of hashing work. On success it
// issues a token whose subject is the identifier. Login persists nothing.
func (e *Engine) Login(ctx context.Context, identifier, secret string) (*LoginResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	start := e.now()
	defer func() {
		e.metricObserve(MetricLoginLatency, e.now().Sub(start))
	}()

	res, err := e.flows.Login(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Principal: &Principal{
			ID:         res.Record.UserID,
			Identifier: res.Record.Identifier,
			Admin:      res.Record.Admin,
		},
		Token:     res.Token,
		FirstName: res.Record.FirstName,
		LastName:  res.Record.LastName,
	}, nil
}

// Register describes the register operation and its observable behavior.
//
// Register validates the request shape, rejects a taken identifier with
// ErrIdentifierTaken, hashes the secret and creates a non-admin record. The
// returned record never carries the hash.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*UserRecord, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if !e.config.Account.RegistrationEnabled {
		return nil, fmt.Errorf("%w: registration disabled", ErrUnauthorized)
	}
	req.Admin = false
	return e.createUser(ctx, req)
}

// CreateUser registers an account honoring req.Admin. It is meant for
// operator tooling and seeding; it bypasses Config.Account.RegistrationEnabled.
func (e *Engine) CreateUser(ctx context.Context, req RegisterRequest) (*UserRecord, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	return e.createUser(ctx, req)
}

func (e *Engine) createUser(ctx context.Context, req RegisterRequest) (*UserRecord, error) {
	res, err := e.flows.Register(ctx, flows.RegisterRequest{
		Identifier: req.Identifier,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Admin:      req.Admin,
	})
	if err != nil {
		return nil, err
	}

	return &UserRecord{
		ID:         res.UserID,
		Identifier: res.Identifier,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Admin:      req.Admin,
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.CreatedAt,
	}, nil
}

// IssueToken signs a token for an existing identifier without checking a
// secret. Operator tooling only.
func (e *Engine) IssueToken(ctx context.Context, identifier string) (string, error) {
	if !e.ready() {
		return "", ErrEngineNotReady
	}
	rec, err := e.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrUserNotFound
	}
	return e.jwtManager.Issue(rec.Identifier)
}
