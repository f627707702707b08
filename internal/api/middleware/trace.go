package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/platform/logger"
)

// Trace adds a trace ID to the request context and response headers, and
// stores a request-scoped logger carrying it. It should be applied early in
// the chain so every later handler logs with the trace ID.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
