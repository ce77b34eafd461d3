package goStudio

import (
	"errors"
	"fmt"
)

// Error categories. Every domain error returned by Engine matches exactly one
// of these with errors.Is.
var (
	// ErrUnauthenticated means the request carries no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means the identity is known but the action is refused.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the action contradicts current state.
	ErrConflict = errors.New("conflict")
	// ErrMalformed means the input failed shape validation.
	ErrMalformed = errors.New("malformed request")
)

var (
	ErrTokenInvalid  = fmt.Errorf("%w: token invalid", ErrUnauthenticated)
	ErrPrincipalGone = fmt.Errorf("%w: principal no longer exists", ErrUnauthenticated)

	// ErrInvalidCredentials is returned for both an unknown identifier and a
	// wrong secret.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrPermissionDenied   = fmt.Errorf("%w: permission denied", ErrUnauthorized)

	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrTeacherNotFound = fmt.Errorf("%w: teacher", ErrNotFound)

	ErrIdentifierTaken = fmt.Errorf("%w: identifier already taken", ErrConflict)
	ErrAlreadyMember   = fmt.Errorf("%w: user already participates", ErrConflict)
	ErrNotMember       = fmt.Errorf("%w: user does not participate", ErrConflict)
)

var (
	// ErrDuplicateIdentifier is returned by stores that enforce identifier
	// uniqueness when a create collides with an existing record.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	// ErrStoreUnavailable wraps backend transport failures.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEngineNotReady is returned when an Engine was not produced by Build.
	ErrEngineNotReady = errors.New("engine not initialized")
)
