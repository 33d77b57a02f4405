// internal/app/features/accounts/handler.go
package accounts

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/teampolicy"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs an accounts Handler.
func NewHandler(users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, ErrLog: errLog, Log: logger}
}

// List handles GET /api/accounts. Reads are open to any signed-in
// user; assignee pickers and the roster page need the full list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "accounts.list")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(users)
}

// Get handles GET /api/accounts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "accounts.get")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

type roleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PUT /api/accounts/{id}/role. Only the lead can
// promote or demote; the store itself performs no policy check, so
// this is the enforcement point.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanPromote(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can change roles")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateRole(ctx, id, req.Role); err != nil {
		h.ErrLog.StoreError(w, r, err, "accounts.updaterole")
		return
	}

	h.Log.Info("role changed",
		zap.String("user_id", id.Hex()),
		zap.String("role", req.Role))

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/accounts/{id}. Lead-only. Tasks created
// by the account keep their created_by reference.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanPromote(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can delete accounts")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "accounts.delete")
		return
	}
	if n == 0 {
		h.ErrLog.Write(w, http.StatusNotFound, "not found")
		return
	}

	h.Log.Info("account deleted", zap.String("user_id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid account id")
		return primitive.NilObjectID, false
	}
	return id, true
}
