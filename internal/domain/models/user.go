// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. A user signs up as a member; creating the team (or an
// explicit promotion by the current lead) makes them the lead.
const (
	RoleMember = "member"
	RoleLead   = "lead"
)

// IsValidRole reports whether role is one of the two recognized roles.
func IsValidRole(role string) bool {
	return role == RoleMember || role == RoleLead
}

// User is a login principal. It is distinct from a TeamMember roster
// entry: the two are linked only informally (see Team.LeadID).
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`   // lowercase, diacritics-stripped
	Email  string             `bson:"email" json:"email"` // stored normalized (lowercase)

	// PasswordHash is a bcrypt hash. The plaintext credential is never
	// stored and the hash never leaves the server.
	PasswordHash string `bson:"password_hash" json:"-"`

	Role string `bson:"role" json:"role"` // member | lead

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
