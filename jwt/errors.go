package jwt

import "errors"

// ErrInvalid is the single failure category reported by Verify.
var ErrInvalid = errors.New("invalid token")

// Reason records why a token was rejected. It exists for logs only.
type Reason uint8

const (
	ReasonUnknown Reason = iota
	ReasonMalformed
	ReasonForged
	ReasonExpired
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformed:
		return "malformed"
	case ReasonForged:
		return "forged"
	case ReasonExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// InvalidError is returned by Verify. errors.Is(err, ErrInvalid) holds for
// every InvalidError.
type InvalidError struct {
	Reason Reason
	Err    error
}

func invalid(reason Reason, cause error) *InvalidError {
	return &InvalidError{Reason: reason, Err: cause}
}

func (e *InvalidError) Error() string {
	if e.Err == nil {
		return ErrInvalid.Error() + " (" + e.Reason.String() + ")"
	}
	return ErrInvalid.Error() + " (" + e.Reason.String() + "): " + e.Err.Error()
}

// Is reports ErrInvalid as a match so callers never need the concrete type.
func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the rejection reason from err, or ReasonUnknown.
func ReasonOf(err error) Reason {
	var ie *InvalidError
	if errors.As(err, &ie) {
		return ie.Reason
	}
	return ReasonUnknown
}
