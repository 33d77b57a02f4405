// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler constructs a logout Handler.
func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sm, Log: logger}
}

// Serve handles POST /api/logout. Logout always succeeds: a missing or
// undecodable session still gets the deletion cookie.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("logout", zap.String("user_id", u.ID))
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("logout: sign-out failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
