package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/internal/sqlstore"
)

type testServer struct {
	engine  *goStudio.Engine
	handler http.Handler
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = sqlstore.Migrate(ctx, db)
	require.NoError(t, err)

	cfg := goStudio.DefaultConfig()
	cfg.JWT.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.Password = goStudio.PasswordConfig{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	engine, err := goStudio.New().
		WithConfig(cfg).
		WithStores(goStudio.Stores{
			Users:    sqlstore.NewUsers(db),
			Sessions: sqlstore.NewSessions(db),
			Teachers: sqlstore.NewTeachers(db),
		}).
		Build()
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	_, err = goStudio.Seed(ctx, engine, goStudio.DefaultSeed())
	require.NoError(t, err)

	return &testServer{engine: engine, handler: NewRouter(engine, opts)}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) jwtResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out jwtResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func (s *testServer) admin(t *testing.T) jwtResponse {
	return s.login(t, "yoga@studio.com", "test!1234")
}

func (s *testServer) member(t *testing.T) jwtResponse {
	return s.login(t, "john.doe@example.com", "password123")
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	return msg.Message
}

func (s *testServer) doRaw(t *testing.T, method, path, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
