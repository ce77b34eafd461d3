package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	goStudio "github.com/MrEthical07/goStudio"
)

func serveGuard(guard func(http.Handler) http.Handler, p *goStudio.Principal) (int, bool) {
	reached := false
	h := guard(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(goStudio.WithPrincipal(req.Context(), p))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, reached
}

func TestRequireAuthenticated(t *testing.T) {
	if code, reached := serveGuard(RequireAuthenticated, nil); code != http.StatusUnauthorized || reached {
		t.Fatalf("expected 401 without principal, got %d reached=%v", code, reached)
	}
	p := &goStudio.Principal{ID: 1, Identifier: "ana@studio.com"}
	if code, reached := serveGuard(RequireAuthenticated, p); code != http.StatusOK || !reached {
		t.Fatalf("expected pass-through, got %d reached=%v", code, reached)
	}
}

func TestRequireAdmin(t *testing.T) {
	member := &goStudio.Principal{ID: 1, Identifier: "ana@studio.com"}
	admin := &goStudio.Principal{ID: 2, Identifier: "yoga@studio.com", Admin: true}

	if code, _ := serveGuard(RequireAdmin, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", code)
	}
	if code, _ := serveGuard(RequireAdmin, member); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for member, got %d", code)
	}
	if code, reached := serveGuard(RequireAdmin, admin); code != http.StatusOK || !reached {
		t.Fatalf("expected admin pass-through, got %d", code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in    string
		token string
		state headerState
	}{
		{"", "", headerAbsent},
		{"Bearer abc", "abc", headerPresent},
		{"Bearer  abc ", "abc", headerPresent},
		{"Bearer ", "", headerMalformed},
		{"Token abc", "", headerMalformed},
	}
	for _, tc := range cases {
		token, state := bearerToken(tc.in)
		if token != tc.token || state != tc.state {
			t.Fatalf("bearerToken(%q) = %q,%d want %q,%d", tc.in, token, state, tc.token, tc.state)
		}
	}
}
