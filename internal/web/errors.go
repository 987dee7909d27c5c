package web

// errors.go maps domain errors onto HTTP responses.
//
// Validation and conflict errors reach the client with their detail intact;
// anything unrecognized is logged with the request id and returned as a
// generic 500 so internals never leak.

import (
	"errors"
	"net/http"

	"github.com/flexnit/flexnit/internal/auth"
	"github.com/flexnit/flexnit/internal/catalog"
	"github.com/flexnit/flexnit/internal/logging"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapError(err)

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"status", status,
			"error", err.Error(),
		)
	} else {
		logger.Warn("request rejected",
			"path", r.URL.Path,
			"method", r.Method,
			"status", status,
			"error", err.Error(),
		)
	}

	writeJSONStatus(w, status, body)
}

func mapError(err error) (int, errorResponse) {
	var ve *catalog.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field}
	}

	var ce *catalog.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict, errorResponse{Error: ce.Error()}
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNoSession):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, catalog.ErrTooManyImports):
		return http.StatusTooManyRequests, errorResponse{Error: catalog.ErrTooManyImports.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "Something went wrong."}
	}
}
