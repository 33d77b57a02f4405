package signup_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/features/signup"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"github.com/shreshthUnderscore/agile-ai/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *signup.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "agileai_session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return signup.NewHandler(userstore.New(db), sm, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
}

func TestCreate(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	rec := testutil.NewRecorder()

	h.Create(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var user struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	rec.DecodeJSON(t, &user)
	if user.ID == "" {
		t.Error("expected id in response")
	}
	if user.Role != "member" {
		t.Errorf("role: got %q, want default member", user.Role)
	}

	// The credential never appears in the response body.
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaks credential material: %s", rec.Body.String())
	}

	// Signup signs the caller in.
	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestCreate_ShortPassword(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	rec := testutil.NewRecorder()

	h.Create(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	h := newHandler(t)

	body := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	}

	rec := testutil.NewRecorder()
	h.Create(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/api/signup", body))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.Create(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/api/signup", body))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "already exists")
}

func TestCreate_InvalidJSON(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewRequest(http.MethodPost, "/api/signup")
	rec := testutil.NewRecorder()

	h.Create(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}
