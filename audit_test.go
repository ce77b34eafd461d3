package goStudio

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func withAudit(sink AuditSink) func(*Config, *Builder) {
	return func(c *Config, b *Builder) {
		c.Audit.Enabled = sink != nil
		c.Audit.BufferSize = 16
		c.Audit.DropIfFull = false
		b.WithAuditSink(sink)
	}
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	sink := &countingSink{}
	env := newTestEnv(t, func(c *Config, b *Builder) {
		c.Audit.Enabled = false
		b.WithAuditSink(sink)
	})
	env.register(t, "ana@studio.com", "secret1", false)
	_, _ = env.engine.Login(context.Background(), "ana@studio.com", "wrong1")
	env.engine.Close()

	if sink.count.Load() != 0 {
		t.Fatalf("expected no audit sink calls when disabled, got %d", sink.count.Load())
	}
}

func TestAuditLoginFailureFields(t *testing.T) {
	sink := NewChannelSink(8)
	env := newTestEnv(t, withAudit(sink))
	env.register(t, "ana@studio.com", "super-secret", false)
	drain(sink)

	ctx := WithRequestID(WithClientIP(context.Background(), "198.51.100.33"), "req-1")
	_, _ = env.engine.Login(ctx, "ana@studio.com", "wrong-secret")

	ev := next(t, sink)
	if ev.EventType != auditEventLoginFailure || ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.IP != "198.51.100.33" || ev.RequestID != "req-1" {
		t.Fatalf("context fields missing: %+v", ev)
	}
	if ev.Error != string(auditErrInvalidCredentials) {
		t.Fatalf("expected invalid_credentials, got %q", ev.Error)
	}
	if ev.ID == "" || !ev.Timestamp.Equal(testNow) {
		t.Fatalf("expected id and clock timestamp, got %q %v", ev.ID, ev.Timestamp)
	}
	for _, v := range ev.Metadata {
		if v == "wrong-secret" || v == "super-secret" {
			t.Fatal("secret leaked in metadata")
		}
	}
}

func TestAuditJoinCarriesSessionID(t *testing.T) {
	sink := NewChannelSink(8)
	env := newTestEnv(t, withAudit(sink))
	u := env.register(t, "ana@studio.com", "secret1", false)
	s := seedSession(t, env)
	drain(sink)

	if err := env.engine.JoinSession(context.Background(), s.ID, u.ID); err != nil {
		t.Fatalf("JoinSession: %v", err)
	}
	ev := next(t, sink)
	if ev.EventType != auditEventSessionJoin || !ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.SessionID != formatID(s.ID) || ev.UserID != formatID(u.ID) {
		t.Fatalf("expected session %d user %d, got %+v", s.ID, u.ID, ev)
	}
	if ev.Metadata != nil {
		t.Fatalf("session_id must be lifted out of metadata, got %v", ev.Metadata)
	}
}

func TestAuditErrorCodes(t *testing.T) {
	cases := map[error]AuditErrorCode{
		nil:                    "",
		ErrInvalidCredentials:  auditErrInvalidCredentials,
		ErrPermissionDenied:    auditErrPermissionDenied,
		ErrTokenInvalid:        auditErrUnauthenticated,
		ErrSessionNotFound:     auditErrSessionNotFound,
		ErrTeacherNotFound:     auditErrNotFound,
		ErrAlreadyMember:       auditErrAlreadyMember,
		ErrNotMember:           auditErrNotMember,
		ErrIdentifierTaken:     auditErrDuplicate,
		ErrMalformed:           auditErrMalformed,
		ErrStoreUnavailable:    auditErrUnavailable,
		errors.New("anything"): auditErrInternal,
	}
	for err, want := range cases {
		if got := auditErrorCode(err); got != want {
			t.Fatalf("auditErrorCode(%v) = %q, want %q", err, got, want)
		}
	}
}

func drain(sink *ChannelSink) {
	for {
		select {
		case <-sink.Events():
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func next(t *testing.T, sink *ChannelSink) AuditEvent {
	t.Helper()
	select {
	case ev := <-sink.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event")
	}
	return AuditEvent{}
}
