// internal/app/features/errors/errors.go
//
// Package errors centralizes how feature handlers turn failures into
// JSON responses. Store packages return sentinel errors and never touch
// HTTP; the mapping from sentinel to status code lives here so every
// handler reports the same failure the same way.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	taskstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/tasks"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrorLogger writes error responses and logs server-side failures.
// Client mistakes (4xx) are not logged; they are the caller's problem.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Write sends a JSON error body with the given status.
func (e *ErrorLogger) Write(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, msg)
}

// ServerError logs the underlying error and sends a generic 500. The
// real error never leaks to the client.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, err error, op string) {
	e.log.Error("request failed",
		zap.String("op", op),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, "internal server error")
}

// StoreError maps a store sentinel to its HTTP status. Anything
// unrecognized is treated as a server error.
func (e *ErrorLogger) StoreError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if status, msg, ok := mapStoreError(err); ok {
		WriteJSON(w, status, msg)
		return
	}
	e.ServerError(w, r, err, op)
}

func mapStoreError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound, "not found", true
	case errors.Is(err, teamstore.ErrNoTeam):
		return http.StatusNotFound, err.Error(), true
	case errors.Is(err, userstore.ErrDuplicateEmail),
		errors.Is(err, userstore.ErrBadRole),
		errors.Is(err, userstore.ErrMissingField),
		errors.Is(err, teamstore.ErrTeamExists),
		errors.Is(err, teamstore.ErrUnknownMember),
		errors.Is(err, teamstore.ErrMissingName),
		errors.Is(err, taskstore.ErrValidation),
		errors.Is(err, taskstore.ErrBadStatus),
		errors.Is(err, taskstore.ErrBadPriority):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}

// WriteJSON writes a bare {"message": ...} error body. Middleware and
// handlers that have no ErrorLogger in scope use this directly.
func WriteJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
