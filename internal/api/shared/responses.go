package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
)

// Wire error codes.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// ErrorBody is one entry of the errors array.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	TraceID string `json:"trace_id,omitempty"`
}

// Envelope is the response body of every operation: exactly one of Data
// and Errors is set.
type Envelope struct {
	Data   map[string]interface{} `json:"data,omitempty"`
	Errors []ErrorBody            `json:"errors,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Used for rejected credentials.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", redact.ErrAttr(err))
	}
}

// RespondWithData writes a successful operation result under data.<name>.
func RespondWithData(w http.ResponseWriter, r *http.Request, name string, result interface{}) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{
		Data: map[string]interface{}{name: result},
	})
}

// RespondWithError writes a single-entry error envelope.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending error response",
		"status_code", status,
		"code", code,
		"message", message,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{
		Errors: []ErrorBody{{Message: message, Code: code, TraceID: traceID}},
	})
}

// RespondWithErrorAndLog writes an error envelope carrying only userMessage
// and logs the redacted err.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
// - 4xx with WithElevatedLogLevel: logged at WARN level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code string,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("code", code),
		slog.String("user_message", userMessage),
	}

	// The raw error never reaches the response body.
	if err != nil {
		logAttrs = append(logAttrs,
			redact.ErrAttr(err),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{
		Errors: []ErrorBody{{Message: userMessage, Code: code, TraceID: traceID}},
	})
}
