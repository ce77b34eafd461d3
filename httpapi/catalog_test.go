package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeachers(t *testing.T) {
	srv := newTestServer(t, Options{})
	token := srv.member(t).Token

	rec := srv.do(t, http.MethodGet, "/api/teacher", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []teacherDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "Margot", list[0].FirstName)

	rec = srv.do(t, http.MethodGet, "/api/teacher/"+itoa(list[1].ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/teacher/99", token, nil).Code)
}

func TestUsers(t *testing.T) {
	srv := newTestServer(t, Options{})
	admin := srv.admin(t)
	member := srv.member(t)

	rec := srv.do(t, http.MethodGet, "/api/user/"+itoa(member.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, strings.ToLower(body), "password")

	var u userDTO
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	assert.Equal(t, "john.doe@example.com", u.Email)
	assert.False(t, u.Admin)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/user/999", admin.Token, nil).Code)

	t.Run("only the owner may delete", func(t *testing.T) {
		path := "/api/user/" + itoa(member.ID)
		assert.Equal(t, http.StatusUnauthorized, srv.do(t, http.MethodDelete, path, admin.Token, nil).Code)
		assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodDelete, "/api/user/999", admin.Token, nil).Code)
		assert.Equal(t, http.StatusOK, srv.do(t, http.MethodDelete, path, member.Token, nil).Code)
		assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, path, admin.Token, nil).Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("gostudio_login_success_total 0\n"))
	})
	srv := newTestServer(t, Options{Metrics: metrics})

	rec := srv.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeMessage(t, rec))

	rec = srv.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gostudio_login_success_total")
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := srv.do(t, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := srv.doRaw(t, http.MethodGet, "/healthz", "")
	assert.NotEqual(t, rec.Header().Get(requestIDHeader), req.Header().Get(requestIDHeader))
}
