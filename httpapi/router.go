package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/middleware"
)

// Options configures the router around an Engine.
type Options struct {
	Logger *slog.Logger
	// Metrics is mounted at GET /metrics when non-nil.
	Metrics http.Handler
	// Health backs GET /healthz; nil always reports healthy.
	Health      func(ctx context.Context) error
	CORSOrigins []string
	RateLimit   RateLimitConfig
}

type handler struct {
	engine *goStudio.Engine
	logger *slog.Logger
}

// NewRouter builds the HTTP handler. The middleware order is: rate limit
// (keyed on the socket peer), RealIP, request context, request log, panic
// recovery, CORS, identification.
func NewRouter(engine *goStudio.Engine, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{engine: engine, logger: logger}

	r := chi.NewRouter()
	if opts.RateLimit.RequestsPerSecond > 0 {
		r.Use(RateLimiter(opts.RateLimit))
	}
	r.Use(chimw.RealIP)
	r.Use(requestContext)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
	r.Use(middleware.Identify(engine, logger))

	r.Get("/healthz", healthHandler(opts.Health))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)
		r.Post("/auth/register", h.register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated)

			r.Get("/session", h.listSessions)
			r.Post("/session", h.createSession)
			r.Get("/session/{id}", h.getSession)
			r.Put("/session/{id}", h.updateSession)
			r.Delete("/session/{id}", h.deleteSession)
			r.Post("/session/{id}/participate/{userId}", h.participate)
			r.Delete("/session/{id}/participate/{userId}", h.noLongerParticipate)

			r.Get("/teacher", h.listTeachers)
			r.Get("/teacher/{id}", h.getTeacher)

			r.Get("/user/{id}", h.getUser)
			r.Delete("/user/{id}", h.deleteUser)
		})
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}
}

func healthHandler(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	}
}
