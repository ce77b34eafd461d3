package goStudio

import (
	"context"
	"time"

	"github.com/MrEthical07/goStudio/session"
)

// Principal is the authenticated identity bound to one request. It is built
// from a verified token and a store read, and never persisted.
type Principal struct {
	ID         int64
	Identifier string
	Admin      bool
}

// Authenticated reports whether p denotes a real identity. Safe on nil.
func (p *Principal) Authenticated() bool {
	return p != nil && p.Identifier != ""
}

// Subject returns the token subject (the email). Safe on nil.
func (p *Principal) Subject() string {
	if p == nil {
		return ""
	}
	return p.Identifier
}

// IsAdmin reports the administrator flag. Safe on nil.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Admin
}

// UserRecord is the persisted credential record of one user.
type UserRecord struct {
	ID           int64
	Identifier   string
	PasswordHash string
	FirstName    string
	LastName     string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal projects the record onto the request identity.
func (u *UserRecord) Principal() *Principal {
	if u == nil {
		return nil
	}
	return &Principal{ID: u.ID, Identifier: u.Identifier, Admin: u.Admin}
}

// Session is a scheduled class with its participant set.
type Session = session.Session

// Teacher is a read-only catalog entry.
type Teacher struct {
	ID        int64
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterRequest carries the fields of a self-service registration.
type RegisterRequest struct {
	Identifier string
	Password   string
	FirstName  string
	LastName   string
	// Admin is honored only by administrative tooling (seed, CLI); the HTTP
	// registration action never sets it.
	Admin bool
}

// LoginResult is returned by [Engine.Login].
type LoginResult struct {
	Principal *Principal
	Token     string
	FirstName string
	LastName  string
}

// SessionInput is the mutable part of a session accepted from callers.
type SessionInput struct {
	Name        string
	Date        time.Time
	TeacherID   int64
	Description string
}

// CredentialStore persists credential records. Find methods return
// (nil, nil) when no record matches.
type CredentialStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*UserRecord, error)
	FindByID(ctx context.Context, id int64) (*UserRecord, error)
	ExistsByIdentifier(ctx context.Context, identifier string) (bool, error)
	// Create assigns rec.ID. Stores that enforce uniqueness return
	// an error matching ErrDuplicateIdentifier on collision.
	Create(ctx context.Context, rec *UserRecord) error
	DeleteByIdentifier(ctx context.Context, identifier string) error
}

// SessionStore persists booking sessions. FindByID returns (nil, nil) when
// the session does not exist; Delete of a missing session is not an error.
type SessionStore interface {
	FindByID(ctx context.Context, id int64) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Create(ctx context.Context, s *Session) error
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id int64) error
}

// TeacherStore serves the teacher catalog. FindByID returns (nil, nil) when
// the teacher does not exist.
type TeacherStore interface {
	FindByID(ctx context.Context, id int64) (*Teacher, error)
	List(ctx context.Context) ([]*Teacher, error)
	Create(ctx context.Context, t *Teacher) error
}

// Stores groups the persistence collaborators required by the Engine.
type Stores struct {
	Users    CredentialStore
	Sessions SessionStore
	Teachers TeacherStore
}
