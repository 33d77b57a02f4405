package teampolicy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/teampolicy"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestAs(role string) *http.Request {
	r := httptest.NewRequest("POST", "/api/team", nil)
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Role: role,
	})
}

func TestCanCreateTeam(t *testing.T) {
	if !teampolicy.CanCreateTeam(requestAs("member")) {
		t.Error("member should be allowed to create the team")
	}
	if !teampolicy.CanCreateTeam(requestAs("lead")) {
		t.Error("lead should be allowed to create the team")
	}
	if teampolicy.CanCreateTeam(httptest.NewRequest("POST", "/api/team", nil)) {
		t.Error("unauthenticated request should be denied")
	}
}

func TestCanManageRoster(t *testing.T) {
	if teampolicy.CanManageRoster(requestAs("member")) {
		t.Error("member should not manage the roster")
	}
	if !teampolicy.CanManageRoster(requestAs("lead")) {
		t.Error("lead should manage the roster")
	}
}

func TestCanPromote(t *testing.T) {
	if teampolicy.CanPromote(requestAs("member")) {
		t.Error("member should not promote")
	}
	if !teampolicy.CanPromote(requestAs("lead")) {
		t.Error("lead should promote")
	}
}
