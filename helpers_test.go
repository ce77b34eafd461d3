package goStudio

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testConfig() Config {
	cfg := defaultConfig()
	cfg.JWT.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.JWT.TTL = time.Hour
	cfg.Password = PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
	return cfg
}

type memUsers struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*UserRecord
	lookups int
	fail    error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[int64]*UserRecord{}}
}

func (m *memUsers) FindByIdentifier(_ context.Context, identifier string) (*UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.fail != nil {
		return nil, m.fail
	}
	for _, u := range m.byID {
		if u.Identifier == identifier {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByID(_ context.Context, id int64) (*UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *memUsers) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	u, err := m.FindByIdentifier(ctx, identifier)
	return u != nil, err
}

func (m *memUsers) Create(_ context.Context, rec *UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Identifier == rec.Identifier {
			return ErrDuplicateIdentifier
		}
	}
	m.nextID++
	rec.ID = m.nextID
	stored := *rec
	m.byID[rec.ID] = &stored
	return nil
}

func (m *memUsers) DeleteByIdentifier(_ context.Context, identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.byID {
		if u.Identifier == identifier {
			delete(m.byID, id)
		}
	}
	return nil
}

type memSessions struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*Session
	saves  int
}

func newMemSessions() *memSessions {
	return &memSessions{byID: map[int64]*Session{}}
}

func (m *memSessions) FindByID(_ context.Context, id int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id].Clone(), nil
}

func (m *memSessions) List(context.Context) ([]*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memSessions) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	m.byID[s.ID] = s.Clone()
	return nil
}

func (m *memSessions) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.byID[s.ID] = s.Clone()
	return nil
}

func (m *memSessions) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memTeachers struct {
	mu   sync.Mutex
	list []*Teacher
}

func (m *memTeachers) FindByID(_ context.Context, id int64) (*Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.list {
		if t.ID == id {
			out := *t
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memTeachers) List(context.Context) ([]*Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Teacher, 0, len(m.list))
	for _, t := range m.list {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (m *memTeachers) Create(_ context.Context, t *Teacher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = int64(len(m.list) + 1)
	c := *t
	m.list = append(m.list, &c)
	return nil
}

type testEnv struct {
	engine   *Engine
	users    *memUsers
	sessions *memSessions
	teachers *memTeachers
	clock    *time.Time
}

func newTestEnv(t *testing.T, mutate func(*Config, *Builder)) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    newMemUsers(),
		sessions: newMemSessions(),
		teachers: &memTeachers{},
	}
	now := testNow
	env.clock = &now

	cfg := testConfig()
	b := New()
	if mutate != nil {
		mutate(&cfg, b)
	}
	engine, err := b.
		WithConfig(cfg).
		WithStores(Stores{Users: env.users, Sessions: env.sessions, Teachers: env.teachers}).
		WithClock(func() time.Time { return *env.clock }).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	env.engine = engine
	return env
}

func (env *testEnv) register(t *testing.T, email, pw string, admin bool) *UserRecord {
	t.Helper()
	rec, err := env.engine.CreateUser(context.Background(), RegisterRequest{
		Identifier: email,
		Password:   pw,
		FirstName:  "Test",
		LastName:   "User",
		Admin:      admin,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return rec
}

var errBackend = errors.New("backend down")
