// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the login subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Authenticate) // mounted under /api/login
	return r
}
