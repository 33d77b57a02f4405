package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/shreshthUnderscore/agile-ai/internal/app/system/normalize"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrTeamExists is returned by Create when the deployment already
	// has its team; there is exactly one per deployment.
	ErrTeamExists = errors.New("a team already exists")

	// ErrNoTeam is returned by roster operations before the team has
	// been created.
	ErrNoTeam = errors.New("no team exists yet")

	// ErrUnknownMember is returned by SetLead when the member id is not
	// in the roster.
	ErrUnknownMember = errors.New("member is not on the roster")

	ErrMissingName = errors.New("team name is required")
)

// Store provides access to the teams collection. The collection holds
// at most one document; roster entries are embedded on it in insertion
// order.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// Get returns the team. Returns ErrNoTeam when none has been created.
func (s *Store) Get(ctx context.Context) (*models.Team, error) {
	var t models.Team
	err := s.c.FindOne(ctx, bson.M{}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoTeam
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the team with an empty roster. leadID is the creating
// user's id; it is recorded as the designated lead even though no
// roster entry exists for it yet (SetLead later replaces it with a
// member id). Fails with ErrTeamExists when a team is already present.
//
// The existence check and the insert are two operations, not one; the
// reference system assumes a single active session, so the window is
// accepted rather than guarded.
func (s *Store) Create(ctx context.Context, name string, leadID primitive.ObjectID) (models.Team, error) {
	name = normalize.Name(name)
	if name == "" {
		return models.Team{}, ErrMissingName
	}

	n, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return models.Team{}, err
	}
	if n > 0 {
		return models.Team{}, ErrTeamExists
	}

	now := time.Now()
	t := models.Team{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Members:   []models.TeamMember{},
		LeadID:    &leadID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// AddMember appends a roster entry with a fresh id and returns it.
// Listing order is insertion order, which $push preserves.
func (s *Store) AddMember(ctx context.Context, name, roleTitle string) (models.TeamMember, error) {
	name = normalize.Name(name)
	if name == "" {
		return models.TeamMember{}, ErrMissingName
	}

	m := models.TeamMember{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Role:    normalize.Name(roleTitle),
		AddedAt: time.Now(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{}, bson.M{
		"$push": bson.M{"members": m},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return models.TeamMember{}, err
	}
	if res.MatchedCount == 0 {
		return models.TeamMember{}, ErrNoTeam
	}
	return m, nil
}

// RemoveMember pulls the roster entry with the given id. Removing an
// absent id is a no-op, not an error. The designated lead_id is left
// untouched even when it references the removed member, and tasks
// assigned to the member keep their assignee_id; both stale references
// are tolerated states.
func (s *Store) RemoveMember(ctx context.Context, memberID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{}, bson.M{
		"$pull": bson.M{"members": bson.M{"id": memberID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoTeam
	}
	return nil
}

// SetLead designates a roster member as the team lead. Fails with
// ErrUnknownMember when the id is not in the roster.
func (s *Store) SetLead(ctx context.Context, memberID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"members.id": memberID},
		bson.M{"$set": bson.M{
			"lead_id":    memberID,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish "no team" from "member not on roster" so the
		// transport layer can map them to different responses.
		n, err := s.c.CountDocuments(ctx, bson.M{})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoTeam
		}
		return ErrUnknownMember
	}
	return nil
}

// SetMemberResume records the blob reference for a member's uploaded
// resume. Fails with ErrUnknownMember when the member is not on the
// roster.
func (s *Store) SetMemberResume(ctx context.Context, memberID primitive.ObjectID, resumeRef string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"members.id": memberID},
		bson.M{"$set": bson.M{
			"members.$.resume_ref": resumeRef,
			"updated_at":           time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUnknownMember
	}
	return nil
}
