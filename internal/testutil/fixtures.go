package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data directly in
// the database, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a user with the given role. The stored password
// hash is not a usable credential; login tests go through the store.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: "$2a$10$fixture-not-a-real-credential",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateLead creates a user with the lead role.
func (f *Fixtures) CreateLead(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleLead)
}

// CreateMemberUser creates a user with the member role.
func (f *Fixtures) CreateMemberUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleMember)
}

// CreateTeam creates the singleton team with the given roster.
func (f *Fixtures) CreateTeam(ctx context.Context, name string, leadID primitive.ObjectID, members ...models.TeamMember) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	if members == nil {
		members = []models.TeamMember{}
	}
	team := models.Team{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Members:   members,
		LeadID:    &leadID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// RosterMember builds an embedded roster entry (does not persist it).
func RosterMember(name, roleTitle string) models.TeamMember {
	return models.TeamMember{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Role:    roleTitle,
		AddedAt: time.Now().UTC(),
	}
}

// CreateTask creates a task with the given status, priority, and
// optional assignee.
func (f *Fixtures) CreateTask(ctx context.Context, title, status, priority string, assignee *primitive.ObjectID, createdBy primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "fixture task",
		Status:      status,
		Priority:    priority,
		AssigneeID:  assignee,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
