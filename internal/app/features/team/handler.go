// internal/app/features/team/handler.go
package team

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/teampolicy"
	teamstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/teams"
	userstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/users"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/authz"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/timeouts"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Teams  *teamstore.Store
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a team Handler. The users store is needed
// because creating the team promotes the creator to lead.
func NewHandler(teams *teamstore.Store, users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Teams: teams, Users: users, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/team. Any signed-in user may create the
// team; doing so makes them the lead. The promotion is visible on
// their very next request because the session middleware refetches the
// user per request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanCreateTeam(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "sign in to create a team")
		return
	}
	_, _, actorID, _ := authz.UserCtx(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Teams.Create(ctx, req.Name, actorID)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "team.create")
		return
	}

	// Promote the creator. The team is already in; a failed promotion
	// leaves a team whose lead has member role, so it is a hard error.
	if err := h.Users.UpdateRole(ctx, actorID, models.RoleLead); err != nil {
		h.ErrLog.ServerError(w, r, err, "team.promote")
		return
	}

	h.Log.Info("team created",
		zap.String("team_id", team.ID.Hex()),
		zap.String("lead_user_id", actorID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(team)
}

// Get handles GET /api/team. The roster comes back in insertion order.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Teams.Get(ctx)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "team.get")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(team)
}

type memberRequest struct {
	Name string `json:"name"`
	Role string `json:"role"` // free-text job title, not an authz role
}

// AddMember handles POST /api/team/members. Lead-only.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanManageRoster(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can manage the roster")
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.Teams.AddMember(ctx, req.Name, req.Role)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "team.addmember")
		return
	}

	h.Log.Info("roster member added", zap.String("member_id", member.ID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(member)
}

// RemoveMember handles DELETE /api/team/members/{id}. Lead-only.
// Removing an id that is not on the roster still returns 204; the
// operation is idempotent. Tasks assigned to the member and a lead_id
// pointing at them are left as-is.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanManageRoster(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can manage the roster")
		return
	}

	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Teams.RemoveMember(ctx, memberID); err != nil {
		h.ErrLog.StoreError(w, r, err, "team.removemember")
		return
	}

	h.Log.Info("roster member removed", zap.String("member_id", memberID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

type leadRequest struct {
	MemberID string `json:"member_id"`
}

// SetLead handles PUT /api/team/lead. Lead-only; the new lead must be
// on the roster.
func (h *Handler) SetLead(w http.ResponseWriter, r *http.Request) {
	if !teampolicy.CanManageRoster(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can manage the roster")
		return
	}

	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Teams.SetLead(ctx, memberID); err != nil {
		h.ErrLog.StoreError(w, r, err, "team.setlead")
		return
	}

	h.Log.Info("team lead changed", zap.String("member_id", memberID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
