package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/shreshthUnderscore/agile-ai/internal/app/system/normalize"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user
	// with an email that is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrBadRole is returned for a role outside the member/lead pair.
	ErrBadRole = errors.New(`role must be "member"|"lead"`)

	// ErrMissingField is returned when a required signup field is blank
	// after normalization.
	ErrMissingField = errors.New("name, email, and password hash are required")
)

// Store provides access to the users collection. It performs input
// normalization and field validation but no authorization: policy
// checks belong to the callers.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing and validating fields.
// The caller supplies PasswordHash already hashed; this store never
// sees a plaintext credential.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	u.Role = normalize.Role(u.Role)

	if u.Name == "" || u.Email == "" || u.PasswordHash == "" {
		return models.User{}, ErrMissingField
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, ErrBadRole
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments when
// the user does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user ordered by creation time. The roster page
// and assignee pickers read this; reads are unrestricted.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole sets a user's role. No policy check happens here — the
// callers (team creation, explicit promotion) enforce authorization.
// Returns mongo.ErrNoDocuments when the user does not exist.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	if !models.IsValidRole(role) {
		return ErrBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a user account. Returns the number of documents
// deleted (0 or 1). Tasks created by the user keep their created_by
// reference; nothing is cascaded.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
