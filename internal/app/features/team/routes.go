// internal/app/features/team/routes.go
package team

import (
	"net/http"

	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the team subrouter, mounted under /api/team. The
// resume upload handler is injected so the upload endpoint can live at
// its natural place on the roster without this package depending on
// the blob store.
func Routes(h *Handler, uploadResume http.HandlerFunc, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/", h.Create)
	r.Get("/", h.Get)
	r.Post("/members", h.AddMember)
	r.Delete("/members/{id}", h.RemoveMember)
	r.Post("/members/{id}/resume", uploadResume)
	r.Put("/lead", h.SetLead)

	return r
}
