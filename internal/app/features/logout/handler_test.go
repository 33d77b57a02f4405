package logout_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shreshthUnderscore/agile-ai/internal/app/features/logout"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/shreshthUnderscore/agile-ai/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *logout.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "agileai_session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return logout.NewHandler(sm, zap.NewNop())
}

func TestServe(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/api/logout", testutil.MemberUser())
	rec := testutil.NewRecorder()

	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)

	// The response carries an expired session cookie.
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a deletion cookie")
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("cookie MaxAge: got %d, want -1", cookies[0].MaxAge)
	}
}

func TestServe_SignedOut(t *testing.T) {
	h := newHandler(t)

	// Logging out without a session still succeeds.
	req := testutil.NewRequest(http.MethodPost, "/api/logout")
	rec := testutil.NewRecorder()

	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)
}
