// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the tasks subrouter, mounted under /api/tasks.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Patch)
	r.Post("/{id}/move", h.Move)
	r.Post("/{id}/assign", h.Assign)
	r.Post("/{id}/priority", h.SetPriority)
	r.Delete("/{id}", h.Delete)

	return r
}
