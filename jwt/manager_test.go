package jwt

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T, clock *fakeClock, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		TTL:           ttl,
		SigningMethod: MethodHS256,
		Secret:        testSecret,
		Now:           clock.Now,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestIssueVerifyRoundTripWithinWindow(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(t, clock, time.Hour)

	token, err := m.Issue("yoga@studio.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", token)
	}

	for _, elapsed := range []time.Duration{0, time.Second, 30 * time.Minute, time.Hour - time.Millisecond} {
		clock := newFakeClock()
		clock.Advance(elapsed)
		verifier := newTestManager(t, clock, time.Hour)

		subject, err := verifier.Verify(token)
		if err != nil {
			t.Fatalf("elapsed %s: verify: %v", elapsed, err)
		}
		if subject != "yoga@studio.com" {
			t.Fatalf("elapsed %s: expected subject yoga@studio.com, got %q", elapsed, subject)
		}
	}
}

func TestVerifyExpiredAtWindowBoundary(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(t, clock, time.Minute)

	token, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(time.Minute)
	_, err = m.Verify(token)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid at exp, got %v", err)
	}
	if got := ReasonOf(err); got != ReasonExpired {
		t.Fatalf("expected expired reason, got %s", got)
	}

	clock.Advance(24 * time.Hour)
	if _, err := m.Verify(token); ReasonOf(err) != ReasonExpired {
		t.Fatalf("expected expired long after exp, got %v", err)
	}
}

func TestSubSecondIssueValidForWholeWindow(t *testing.T) {
	clock := newFakeClock()
	clock.Advance(900 * time.Millisecond)
	m := newTestManager(t, clock, time.Hour)

	token, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(time.Hour - 500*time.Millisecond)
	subject, err := m.Verify(token)
	if err != nil {
		t.Fatalf("expected valid token just before the window closes, got %v", err)
	}
	if subject != "u1" {
		t.Fatalf("unexpected subject %q", subject)
	}

	clock.Advance(500 * time.Millisecond)
	if _, err := m.Verify(token); err != nil {
		t.Fatalf("expiry is rounded up to the next second, got %v", err)
	}

	clock.Advance(100 * time.Millisecond)
	if _, err := m.Verify(token); ReasonOf(err) != ReasonExpired {
		t.Fatalf("expected expired after the rounded exp, got %v", err)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	clock := newFakeClock()
	issuer, err := NewManager(Config{
		TTL:    time.Hour,
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		Now:    clock.Now,
	})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	verifier := newTestManager(t, clock, time.Hour)

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if got := ReasonOf(err); got != ReasonForged {
		t.Fatalf("expected forged reason, got %s", got)
	}
}

func TestVerifyExpiredAndForgedReportsForged(t *testing.T) {
	clock := newFakeClock()
	issuer, err := NewManager(Config{
		TTL:    time.Minute,
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		Now:    clock.Now,
	})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	verifier := newTestManager(t, clock, time.Minute)

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	clock.Advance(time.Hour)

	if _, err := verifier.Verify(token); ReasonOf(err) != ReasonForged {
		t.Fatalf("expected forged reason, got %v", err)
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(t, clock, time.Hour)

	claims := gjwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: gjwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS512, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(token); ReasonOf(err) != ReasonForged {
		t.Fatalf("expected algorithm mismatch to be forged, got %v", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(t, clock, time.Hour)

	claims := gjwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: gjwt.NewNumericDate(clock.Now().Add(time.Hour)),
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodNone, claims).SignedString(gjwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected none algorithm to be rejected, got %v", err)
	}
}

func TestVerifyMalformedInputs(t *testing.T) {
	m := newTestManager(t, newFakeClock(), time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30"} {
		_, err := m.Verify(input)
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("input %q: expected ErrInvalid, got %v", input, err)
		}
		if got := ReasonOf(err); got != ReasonMalformed {
			t.Fatalf("input %q: expected malformed reason, got %s", input, got)
		}
	}
}

func TestVerifyRequiresExpiry(t *testing.T) {
	m := newTestManager(t, newFakeClock(), time.Hour)

	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS256, gjwt.RegisteredClaims{Subject: "u1"}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected token without exp to be rejected, got %v", err)
	}
}

func TestVerifyRequiresSubject(t *testing.T) {
	clock := newFakeClock()
	m := newTestManager(t, clock, time.Hour)

	claims := gjwt.RegisteredClaims{ExpiresAt: gjwt.NewNumericDate(clock.Now().Add(time.Hour))}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.Verify(token); ReasonOf(err) != ReasonMalformed {
		t.Fatalf("expected missing subject to be malformed, got %v", err)
	}
}

func TestNewManagerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero ttl", Config{Secret: testSecret}},
		{"sub-second ttl", Config{TTL: 500 * time.Millisecond, Secret: testSecret}},
		{"short secret", Config{TTL: time.Hour, Secret: []byte("short")}},
		{"unknown method", Config{TTL: time.Hour, Secret: testSecret, SigningMethod: "rs256"}},
	}
	for _, tc := range cases {
		if _, err := NewManager(tc.cfg); err == nil {
			t.Fatalf("%s: expected config error", tc.name)
		}
	}
}

func TestSecretIsCopiedAtConstruction(t *testing.T) {
	clock := newFakeClock()
	secret := append([]byte(nil), testSecret...)
	m, err := NewManager(Config{TTL: time.Hour, Secret: secret, Now: clock.Now})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	secret[0] ^= 0xff

	if _, err := m.Verify(token); err != nil {
		t.Fatalf("mutating caller secret must not affect manager: %v", err)
	}
}

func TestHS512RoundTrip(t *testing.T) {
	clock := newFakeClock()
	m, err := NewManager(Config{TTL: time.Hour, SigningMethod: MethodHS512, Secret: testSecret, Now: clock.Now})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if m.Algorithm() != "HS512" {
		t.Fatalf("expected HS512, got %s", m.Algorithm())
	}

	token, err := m.Issue("john.doe@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	subject, err := m.Verify(token)
	if err != nil || subject != "john.doe@example.com" {
		t.Fatalf("unexpected verify result %q, %v", subject, err)
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	m := newTestManager(t, newFakeClock(), time.Hour)
	if _, err := m.Issue("  "); err == nil {
		t.Fatal("expected empty subject to be rejected")
	}
}
