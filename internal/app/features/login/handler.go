// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/credentials"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(users *userstore.Store, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sm,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// invalidCredentials is the single failure message for login. An
// unknown email and a wrong password are indistinguishable to the
// caller.
const invalidCredentials = "invalid credentials"

// Authenticate handles POST /api/login.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.Write(w, http.StatusUnauthorized, invalidCredentials)
			return
		}
		h.ErrLog.ServerError(w, r, err, "login.lookup")
		return
	}

	if err := credentials.Verify(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, credentials.ErrMismatch) {
			h.Log.Info("login rejected", zap.String("user_id", user.ID.Hex()))
			h.ErrLog.Write(w, http.StatusUnauthorized, invalidCredentials)
			return
		}
		// Corrupt hash or bcrypt failure: a server problem, not the
		// caller's.
		h.ErrLog.ServerError(w, r, err, "login.verify")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		h.ErrLog.ServerError(w, r, err, "login.signin")
		return
	}

	h.Log.Info("login succeeded", zap.String("user_id", user.ID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
