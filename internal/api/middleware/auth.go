package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/service/auth"
)

// AuthMiddleware verifies bearer tokens for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate verifies the Authorization header when one is present and
// places the claims in the request context. Requests without the header
// pass through unchanged; a present but invalid header is rejected with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				shared.CodeUnauthenticated, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					shared.CodeUnauthenticated, "Token expired", err, shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					shared.CodeUnauthenticated, "Invalid token", err, shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					shared.CodeInternal, "Authentication error", err)
			}
			return
		}

		ctx := shared.WithClaims(r.Context(), claims)
		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("user_id", claims.UserID))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
