// internal/app/features/resumes/routes.go
package resumes

import (
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the download subrouter, mounted under /api/resumes.
// The upload endpoint is registered on the team router (the roster
// owns it); see team.Routes.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/{ref}", h.Download)
	return r
}
