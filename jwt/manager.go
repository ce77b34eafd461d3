package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretBytes = 32

// SigningMethod selects the HMAC variant used to sign tokens.
type SigningMethod string

const (
	// MethodHS256 signs with HMAC-SHA256.
	MethodHS256 SigningMethod = "hs256"
	// MethodHS512 signs with HMAC-SHA512.
	MethodHS512 SigningMethod = "hs512"
)

// Config configures a [Manager]. The secret is copied at construction and
// never read from the Config again.
type Config struct {
	TTL           time.Duration
	SigningMethod SigningMethod
	Secret        []byte

	// Now overrides the wall clock. Nil means time.Now.
	Now func() time.Time
}

// Manager is the token codec. It is immutable after NewManager and safe for
// concurrent use.
type Manager struct {
	ttl    time.Duration
	method jwt.SigningMethod
	secret []byte
	now    func() time.Time
}

// NewManager validates cfg and returns a ready codec.
func NewManager(cfg Config) (*Manager, error) {
	ttl := cfg.TTL.Truncate(time.Second)
	if ttl <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if len(cfg.Secret) < minSecretBytes {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", minSecretBytes)
	}

	var method jwt.SigningMethod
	switch SigningMethod(strings.ToLower(string(cfg.SigningMethod))) {
	case MethodHS256, "":
		method = jwt.SigningMethodHS256
	case MethodHS512:
		method = jwt.SigningMethodHS512
	default:
		return nil, errors.New("unsupported signing method")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &Manager{
		ttl:    ttl,
		method: method,
		secret: secret,
		now:    now,
	}, nil
}

// TTL returns the fixed validity window applied to every issued token.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Algorithm returns the JWS "alg" header value, e.g. "HS256".
func (m *Manager) Algorithm() string {
	return m.method.Alg()
}

// Issue signs a token for subject with iat = now and exp = now + TTL.
// Claims have whole-second resolution: iat is truncated and exp is rounded
// up, so the token never expires before now + TTL.
func (m *Manager) Issue(subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("token subject is empty")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	if whole := expiresAt.Truncate(time.Second); whole.Before(expiresAt) {
		expiresAt = whole.Add(time.Second)
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now.Truncate(time.Second)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	return jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
}

// Verify checks the signature and expiry of tokenStr and returns the embedded
// subject. Failures are always an *InvalidError wrapping ErrInvalid.
func (m *Manager) Verify(tokenStr string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return "", classify(err)
	}
	if !token.Valid {
		return "", invalid(ReasonMalformed, jwt.ErrTokenInvalidClaims)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", invalid(ReasonMalformed, errors.New("missing subject"))
	}

	return claims.Subject, nil
}

// classify maps parser errors onto a Reason. The parser verifies the
// signature before it validates claims, so an expired token with a bad
// signature is reported as forged.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return invalid(ReasonMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return invalid(ReasonForged, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return invalid(ReasonExpired, err)
	default:
		return invalid(ReasonMalformed, err)
	}
}
