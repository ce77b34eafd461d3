package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/jwt"
)

// Resolver turns a bearer token into a principal. *goStudio.Engine
// implements it.
type Resolver interface {
	Identify(ctx context.Context, token string) (*goStudio.Principal, error)
}

// Identify binds the principal carried by the Authorization header, if any.
// Every failure mode (no header, malformed header, invalid token, vanished
// user, store fault, panic in the resolver) lets the request through
// unauthenticated; guards further down decide whether that is acceptable.
func Identify(resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if resolver != nil {
				if p := resolve(ctx, resolver, logger, r.Header.Get("Authorization")); p != nil {
					ctx = goStudio.WithPrincipal(ctx, p)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(ctx context.Context, resolver Resolver, logger *slog.Logger, header string) (p *goStudio.Principal) {
	token, state := bearerToken(header)
	switch state {
	case headerAbsent:
		return nil
	case headerMalformed:
		logger.DebugContext(ctx, "authorization header malformed")
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "identify panicked", "panic", fmt.Sprint(rec))
			p = nil
		}
	}()

	p, err := resolver.Identify(ctx, token)
	switch {
	case err == nil:
		return p
	case errors.Is(err, goStudio.ErrTokenInvalid):
		logger.DebugContext(ctx, "token rejected", "reason", jwt.ReasonOf(err).String())
	case errors.Is(err, goStudio.ErrPrincipalGone):
		logger.DebugContext(ctx, "token subject no longer exists")
	default:
		logger.WarnContext(ctx, "identify failed", "error", err)
	}
	return nil
}
