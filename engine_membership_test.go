package goStudio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func seedSession(t *testing.T, env *testEnv) *Session {
	t.Helper()
	s := &Session{Name: "Hatha", Date: testNow.Add(48 * time.Hour), TeacherID: 1, Description: "Slow class"}
	if err := env.sessions.Create(context.Background(), s); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func TestJoinLeaveRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	u := env.register(t, "ana@studio.com", "secret1", false)
	s := seedSession(t, env)
	ctx := context.Background()

	if err := env.engine.JoinSession(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("JoinSession: %v", err)
	}
	got, _ := env.engine.Session(ctx, s.ID)
	if !got.HasMember(u.ID) {
		t.Fatal("expected membership after join")
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected UpdatedAt=%v, got %v", testNow, got.UpdatedAt)
	}

	if err := env.engine.LeaveSession(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("LeaveSession: %v", err)
	}
	got, _ = env.engine.Session(ctx, s.ID)
	if got.HasMember(u.ID) || len(got.Members) != 0 {
		t.Fatalf("expected empty membership, got %v", got.Members)
	}
}

func TestJoinTwiceConflicts(t *testing.T) {
	env := newTestEnv(t, nil)
	u := env.register(t, "ana@studio.com", "secret1", false)
	s := seedSession(t, env)
	ctx := context.Background()

	if err := env.engine.JoinSession(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("JoinSession: %v", err)
	}
	saves := env.sessions.saves

	err := env.engine.JoinSession(ctx, s.ID, u.ID)
	if !errors.Is(err, ErrAlreadyMember) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if env.sessions.saves != saves {
		t.Fatal("rejected join must not save")
	}
	got, _ := env.engine.Session(ctx, s.ID)
	if len(got.Members) != 1 {
		t.Fatalf("user must appear once, got %v", got.Members)
	}
}

func TestJoinErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	u := env.register(t, "ana@studio.com", "secret1", false)
	s := seedSession(t, env)
	ctx := context.Background()

	if err := env.engine.JoinSession(ctx, 999, u.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := env.engine.JoinSession(ctx, 999, 999); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing session is checked first, got %v", err)
	}
	if err := env.engine.JoinSession(ctx, s.ID, 999); !errors.Is(err, ErrUserNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLeaveErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	u := env.register(t, "ana@studio.com", "secret1", false)
	s := seedSession(t, env)
	ctx := context.Background()

	if err := env.engine.LeaveSession(ctx, 999, u.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := env.engine.LeaveSession(ctx, s.ID, u.ID); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
	if err := env.engine.LeaveSession(ctx, s.ID, 999); !errors.Is(err, ErrNotMember) {
		t.Fatalf("unknown user must be ErrNotMember, got %v", err)
	}
}

func TestJoinKeepsOtherMembers(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.register(t, "ana@studio.com", "secret1", false)
	b := env.register(t, "ben@studio.com", "secret1", false)
	s := seedSession(t, env)
	ctx := context.Background()

	_ = env.engine.JoinSession(ctx, s.ID, a.ID)
	_ = env.engine.JoinSession(ctx, s.ID, b.ID)
	_ = env.engine.LeaveSession(ctx, s.ID, a.ID)

	got, _ := env.engine.Session(ctx, s.ID)
	if len(got.Members) != 1 || got.Members[0] != b.ID {
		t.Fatalf("expected only %d, got %v", b.ID, got.Members)
	}
}

func TestConcurrentJoinsDistinctUsers(t *testing.T) {
	env := newTestEnv(t, nil)
	s := seedSession(t, env)
	ctx := context.Background()

	// Distinct sessions per goroutine keep the read-modify-write sequences
	// independent; the engine itself adds no locking.
	var ids []int64
	var sessions []int64
	for i := 0; i < 8; i++ {
		u := env.register(t, "u"+string(rune('a'+i))+"@studio.com", "secret1", false)
		ids = append(ids, u.ID)
		if i == 0 {
			sessions = append(sessions, s.ID)
			continue
		}
		sessions = append(sessions, seedSession(t, env).ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids))
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- env.engine.JoinSession(ctx, sessions[i], ids[i])
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("JoinSession: %v", err)
		}
	}
	if got := env.engine.MetricsSnapshot().Counters[MetricJoinSuccess]; got != uint64(len(ids)) {
		t.Fatalf("expected %d joins, got %d", len(ids), got)
	}
}
