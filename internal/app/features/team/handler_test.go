package team_test

import (
	"net/http"
	"testing"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/features/team"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"github.com/shreshthUnderscore/agile-ai/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*team.Handler, *teamstore.Store, *userstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	teams := teamstore.New(db)
	users := userstore.New(db)
	h := team.NewHandler(teams, users, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, teams, users, testutil.NewFixtures(t, db)
}

func asUser(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func TestCreate_PromotesCreator(t *testing.T) {
	h, _, users, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateMemberUser(ctx, "Alice", "alice@example.com")

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/team",
		map[string]string{"name": "Apollo"}, asUser(creator))
	rec := testutil.NewRecorder()

	h.Create(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Members []any    `json:"members"`
		LeadID  *string  `json:"lead_id"`
	}
	rec.DecodeJSON(t, &created)
	if created.Name != "Apollo" {
		t.Errorf("name: got %q", created.Name)
	}
	if len(created.Members) != 0 {
		t.Errorf("expected empty roster, got %d", len(created.Members))
	}
	if created.LeadID == nil || *created.LeadID != creator.ID.Hex() {
		t.Errorf("lead_id: got %v, want creator id", created.LeadID)
	}

	// The creator's account is now a lead.
	got, err := users.GetByID(ctx, creator.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != models.RoleLead {
		t.Errorf("creator role: got %q, want lead", got.Role)
	}
}

func TestCreate_SecondTeamRejected(t *testing.T) {
	h, _, _, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateMemberUser(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateMemberUser(ctx, "Bob", "bob@example.com")

	rec := testutil.NewRecorder()
	h.Create(rec.ResponseRecorder, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/team",
		map[string]string{"name": "First"}, asUser(alice)))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.Create(rec.ResponseRecorder, testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/team",
		map[string]string{"name": "Second"}, asUser(bob)))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "already exists")
}

func TestGet_NoTeam(t *testing.T) {
	h, _, _, _ := setup(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/team", testutil.MemberUser())
	rec := testutil.NewRecorder()

	h.Get(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestAddMember_MemberForbidden(t *testing.T) {
	h, _, _, _ := setup(t)

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/team/members",
		map[string]string{"name": "Carol", "role": "Engineer"}, testutil.MemberUser())
	rec := testutil.NewRecorder()

	h.AddMember(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestAddMember(t *testing.T) {
	h, teams, _, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := teams.Create(ctx, "Apollo", primitive.NewObjectID()); err != nil {
		t.Fatalf("team create: %v", err)
	}

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/api/team/members",
		map[string]string{"name": "Carol", "role": "Engineer"}, testutil.LeadUser())
	rec := testutil.NewRecorder()

	h.AddMember(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var member struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	rec.DecodeJSON(t, &member)
	if member.ID == "" || member.Name != "Carol" || member.Role != "Engineer" {
		t.Errorf("unexpected member: %+v", member)
	}
}

func TestRemoveMember_AbsentIsNoContent(t *testing.T) {
	h, teams, _, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := teams.Create(ctx, "Apollo", primitive.NewObjectID()); err != nil {
		t.Fatalf("team create: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/team/members/x", testutil.LeadUser())
	req = testutil.WithChiURLParam(req, "id", primitive.NewObjectID().Hex())
	rec := testutil.NewRecorder()

	h.RemoveMember(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)
}

func TestSetLead_UnknownMember(t *testing.T) {
	h, teams, _, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := teams.Create(ctx, "Apollo", primitive.NewObjectID()); err != nil {
		t.Fatalf("team create: %v", err)
	}

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPut, "/api/team/lead",
		map[string]string{"member_id": primitive.NewObjectID().Hex()}, testutil.LeadUser())
	rec := testutil.NewRecorder()

	h.SetLead(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "not on the roster")
}

func TestSetLead(t *testing.T) {
	h, teams, _, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := teams.Create(ctx, "Apollo", primitive.NewObjectID()); err != nil {
		t.Fatalf("team create: %v", err)
	}
	carol, err := teams.AddMember(ctx, "Carol", "Engineer")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPut, "/api/team/lead",
		map[string]string{"member_id": carol.ID.Hex()}, testutil.LeadUser())
	rec := testutil.NewRecorder()

	h.SetLead(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)

	got, err := teams.Get(ctx)
	if err != nil {
		t.Fatalf("team get: %v", err)
	}
	if got.LeadID == nil || *got.LeadID != carol.ID {
		t.Errorf("lead_id: got %v, want %v", got.LeadID, carol.ID)
	}
}
