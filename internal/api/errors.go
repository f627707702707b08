package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/domain"
)

// msgInternal is the only text ever shown for Internal failures.
const msgInternal = "An unexpected error occurred"

// MapErrorToStatusCode maps an operation error to its HTTP status. Errors
// that are not a *domain.Error are Internal.
func MapErrorToStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToCode maps an operation error to its wire code.
func MapErrorToCode(err error) string {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return shared.CodeBadUserInput
	case domain.KindUnauthenticated:
		return shared.CodeUnauthenticated
	case domain.KindNotFound:
		return shared.CodeNotFound
	case domain.KindConflict:
		return shared.CodeConflict
	default:
		return shared.CodeInternal
	}
}

// GetSafeErrorMessage returns the caller-facing message. Internal errors
// always produce the same opaque text, so causes never leak.
func GetSafeErrorMessage(err error) string {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) || domainErr.Kind == domain.KindInternal || domainErr.Message == "" {
		return msgInternal
	}
	return domainErr.Message
}

// HandleAPIError writes the error envelope for err. Rejected credentials are
// logged at WARN, Internal at ERROR, other caller mistakes at DEBUG.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var opts []shared.ResponseOption
	if domain.KindOf(err) == domain.KindUnauthenticated {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(
		w,
		r,
		MapErrorToStatusCode(err),
		MapErrorToCode(err),
		GetSafeErrorMessage(err),
		err,
		opts...,
	)
}
