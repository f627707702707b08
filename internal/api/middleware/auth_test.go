package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/mocks"
	"github.com/phrazzld/employee-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	validClaims := &auth.Claims{UserID: "64f0c2a1b2c3d4e5f6a7b8c9", Username: "alice"}

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "valid-token":
				return validClaims, nil
			case "expired-token":
				return nil, auth.ErrExpiredToken
			case "broken-service":
				return nil, errors.New("keystore unavailable")
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}
	middleware := NewAuthMiddleware(jwtService)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantClaims bool
		wantMsg    string
	}{
		{name: "no header passes through", header: "", wantStatus: http.StatusOK},
		{name: "valid token", header: "Bearer valid-token", wantStatus: http.StatusOK, wantClaims: true},
		{name: "lowercase scheme", header: "bearer valid-token", wantStatus: http.StatusOK, wantClaims: true},
		{name: "expired token", header: "Bearer expired-token", wantStatus: http.StatusUnauthorized, wantMsg: "Token expired"},
		{name: "invalid token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization format"},
		{name: "missing token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid authorization format"},
		{name: "validator failure", header: "Bearer broken-service", wantStatus: http.StatusInternalServerError, wantMsg: "Authentication error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotClaims *auth.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims, _ = shared.GetClaims(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/operations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantClaims {
				require.NotNil(t, gotClaims)
				assert.Equal(t, validClaims.UserID, gotClaims.UserID)
			} else {
				assert.Nil(t, gotClaims)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
				assert.NotContains(t, rec.Body.String(), "keystore")
			}
		})
	}
}

func TestTrace(t *testing.T) {
	t.Parallel()

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
	})

	rec := httptest.NewRecorder()
	Trace(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, traceID, 2*shared.TraceIDLength)
	assert.Equal(t, traceID, rec.Header().Get(shared.TraceIDHeader))
}
