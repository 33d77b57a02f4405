// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is a roster entry: a person on the team, with a free-text
// job title and an optional pointer at an uploaded resume. It is not a
// login principal; see the note on Team.LeadID.
type TeamMember struct {
	ID        primitive.ObjectID `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"` // job title, free text
	ResumeRef string             `bson:"resume_ref,omitempty" json:"resume_ref,omitempty"`
	AddedAt   time.Time          `bson:"added_at" json:"added_at"`
}

// Team is the single team for a deployment. Members are embedded in
// insertion order, which is also the listing order.
//
// LeadID is loosely typed on purpose: immediately after team creation
// it holds the creating User's id (no roster entry exists yet); once
// SetLead is called it holds a TeamMember id. Nothing reconciles the
// two id spaces, and removing the lead's roster entry leaves LeadID
// pointing at a member that no longer exists. Both states are
// tolerated.
type Team struct {
	ID      primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name    string              `bson:"name" json:"name"`
	Members []TeamMember        `bson:"members" json:"members"`
	LeadID  *primitive.ObjectID `bson:"lead_id,omitempty" json:"lead_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Member returns the roster entry with the given id, if present.
func (t *Team) Member(id primitive.ObjectID) (TeamMember, bool) {
	for _, m := range t.Members {
		if m.ID == id {
			return m, true
		}
	}
	return TeamMember{}, false
}
