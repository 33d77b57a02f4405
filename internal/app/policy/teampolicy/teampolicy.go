// Package teampolicy provides authorization decisions for the team
// registry and role promotions.
//
// Authorization rules:
//   - Any signed-in user can create the team (and becomes its lead).
//   - Only the lead can add/remove roster members, reassign the lead,
//     promote users, or delete accounts.
package teampolicy

import (
	"net/http"

	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/rules"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/authz"
)

// CanCreateTeam reports whether the current user may create the team.
// Members are allowed; the operation itself fails when a team already
// exists.
func CanCreateTeam(r *http.Request) bool {
	role, _, _, ok := authz.UserCtx(r)
	return ok && rules.Allowed(role, rules.CreateTeam)
}

// CanManageRoster reports whether the current user may add or remove
// team members or change the designated lead.
func CanManageRoster(r *http.Request) bool {
	role, _, _, ok := authz.UserCtx(r)
	return ok && rules.Allowed(role, rules.ManageRoster)
}

// CanPromote reports whether the current user may change another
// user's role. The user store itself performs no policy check (callers
// enforce), so every promotion path must come through here.
func CanPromote(r *http.Request) bool {
	role, _, _, ok := authz.UserCtx(r)
	return ok && rules.Allowed(role, rules.Promote)
}
