// Package http provides the HTTP handlers and routing for the task
// tracker API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError translates a domain error to its HTTP status code and
// writes a JSON error body. Unclassified errors become 500 with a
// generic message; the detail is only logged.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrUnknownUser):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidEnum),
		errors.Is(err, models.ErrMissingFilter),
		errors.Is(err, models.ErrInvalidPage),
		errors.Is(err, models.ErrEmptyComment):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrEmailTaken):
		status = http.StatusConflict
	default:
		logger.Error("unclassified error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
