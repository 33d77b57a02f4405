package accounts_test

import (
	"net/http"
	"testing"

	"github.com/shreshthUnderscore/agile-ai/internal/app/features/accounts"
	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"github.com/shreshthUnderscore/agile-ai/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*accounts.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := accounts.NewHandler(userstore.New(db), uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestList(t *testing.T) {
	h, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMemberUser(ctx, "Alice", "alice@example.com")
	fixtures.CreateLead(ctx, "Bob", "bob@example.com")

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/accounts", testutil.MemberUser())
	rec := testutil.NewRecorder()

	h.List(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var users []struct {
		Email string `json:"email"`
	}
	rec.DecodeJSON(t, &users)
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
}

func TestGet_NotFound(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/accounts/x", testutil.MemberUser())
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	h.Get(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestGet_BadID(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/accounts/nope", testutil.MemberUser())
	req = testutil.WithChiURLParam(req, "id", "nope")
	rec := testutil.NewRecorder()

	h.Get(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestUpdateRole(t *testing.T) {
	h, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fixtures.CreateMemberUser(ctx, "Alice", "alice@example.com")

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPut, "/api/accounts/x/role",
		map[string]string{"role": models.RoleLead}, testutil.LeadUser())
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()

	h.UpdateRole(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)
}

func TestUpdateRole_MemberForbidden(t *testing.T) {
	h, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fixtures.CreateMemberUser(ctx, "Alice", "alice@example.com")

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPut, "/api/accounts/x/role",
		map[string]string{"role": models.RoleLead}, testutil.MemberUser())
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()

	h.UpdateRole(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestDelete(t *testing.T) {
	h, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fixtures.CreateMemberUser(ctx, "Alice", "alice@example.com")

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/accounts/x", testutil.LeadUser())
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec := testutil.NewRecorder()

	h.Delete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)

	// A second delete reports 404.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/accounts/x", testutil.LeadUser())
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec = testutil.NewRecorder()

	h.Delete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete_MemberForbidden(t *testing.T) {
	h, _ := setup(t)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/accounts/x", testutil.MemberUser())
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	h.Delete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}
