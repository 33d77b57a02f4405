package errors_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	taskstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/tasks"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestStoreError_Mapping(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no documents", mongo.ErrNoDocuments, http.StatusNotFound},
		{"no team", teamstore.ErrNoTeam, http.StatusNotFound},
		{"duplicate email", userstore.ErrDuplicateEmail, http.StatusBadRequest},
		{"team exists", teamstore.ErrTeamExists, http.StatusBadRequest},
		{"unknown member", teamstore.ErrUnknownMember, http.StatusBadRequest},
		{"task validation", taskstore.ErrValidation, http.StatusBadRequest},
		{"bad status", taskstore.ErrBadStatus, http.StatusBadRequest},
		{"bad priority", taskstore.ErrBadPriority, http.StatusBadRequest},
		{"unknown error", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			el.StoreError(rec, req, tt.err, "test")
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type: got %q", ct)
			}
		})
	}
}

func TestServerError_HidesDetail(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	el.ServerError(rec, req, stderrors.New("connection string with secrets"), "test")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); body == "" || body != "{\"message\":\"internal server error\"}\n" {
		t.Errorf("body leaks detail or malformed: %q", body)
	}
}
