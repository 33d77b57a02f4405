// internal/app/features/signup/routes.go
package signup

import "github.com/go-chi/chi/v5"

// Routes returns the signup subrouter. Signup is the one account
// endpoint that must work signed out.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create) // mounted under /api/signup
	return r
}
