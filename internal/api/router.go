package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	apiMiddleware "github.com/phrazzld/employee-api/internal/api/middleware"
	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/service"
	"github.com/phrazzld/employee-api/internal/service/auth"
	"github.com/phrazzld/employee-api/internal/store"
)

// readyTimeout bounds the store ping behind /ready.
const readyTimeout = 2 * time.Second

// RouterDeps are the dependencies of the HTTP router.
type RouterDeps struct {
	AuthService     service.AuthService
	EmployeeService service.EmployeeService
	JWTService      auth.JWTService
	Store           store.Pinger
	AllowedOrigins  []string
	Logger          *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := logger.Component(deps.Logger, "http")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(log))
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	}))

	operations := NewOperationHandler(deps.AuthService, deps.EmployeeService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.JWTService)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/operations", operations.Execute)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", redact.ErrAttr(err))
		}
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if deps.Store != nil {
			if err := deps.Store.Ping(ctx); err != nil {
				logger.FromContextOrDefault(r.Context(), log).
					Warn("readiness check failed", redact.ErrAttr(err))
				shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
					map[string]string{"status": "unavailable"})
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})

	return r
}
