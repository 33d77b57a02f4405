package auth

import "net/http"

// WithTestUser injects a session user directly into the request
// context, bypassing cookie decoding. Only for use in tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
