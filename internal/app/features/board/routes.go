// internal/app/features/board/routes.go
package board

import (
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the board subrouter, mounted under /api/board.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/summary", h.Summary)
	r.Get("/assignees/{id}/tasks", h.AssigneeTasks)
	r.Get("/assignees/{id}/completion", h.AssigneeCompletion)

	return r
}
