// internal/app/features/signup/handler.go
package signup

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
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

// NewHandler constructs a signup Handler.
func NewHandler(users *userstore.Store, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sm,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Create handles POST /api/signup. A successful signup also signs the
// new account in, so the client can call authenticated endpoints right
// away.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	hash, err := credentials.Hash(req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrTooShort) {
			h.ErrLog.Write(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ErrLog.ServerError(w, r, err, "signup.hash")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	})
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "signup.create")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		h.ErrLog.ServerError(w, r, err, "signup.signin")
		return
	}

	h.Log.Info("account created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}
