// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the accounts subrouter, mounted under /api/accounts.
// Every endpoint requires a session; the lead-only operations enforce
// their own policy in the handler.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/role", h.UpdateRole)
	r.Delete("/{id}", h.Delete)

	return r
}
