package middleware

import (
	"net/http"
	"strings"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/permission"
)

type headerState uint8

const (
	headerAbsent headerState = iota
	headerMalformed
	headerPresent
)

const unauthorizedBody = `{"message":"Error: Unauthorized"}`

// RequireAuthenticated answers 401 unless Identify bound a principal.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := goStudio.PrincipalFrom(r.Context()); !ok {
			deny(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 401 unless the bound principal is an administrator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := goStudio.PrincipalFrom(r.Context())
		if !permission.AdminOnly(p).Allowed() {
			deny(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}

func bearerToken(value string) (string, headerState) {
	if value == "" {
		return "", headerAbsent
	}

	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", headerMalformed
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", headerMalformed
	}

	return token, headerPresent
}
