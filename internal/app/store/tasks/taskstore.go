package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/shreshthUnderscore/agile-ai/internal/app/system/htmlsanitize"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/normalize"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrValidation is returned when a required field is empty or an
	// enum field carries an unknown value.
	ErrValidation = errors.New("title and description are required")

	// ErrBadStatus is returned for a status outside the four board
	// columns.
	ErrBadStatus = errors.New(`status must be "todo"|"inProgress"|"review"|"done"`)

	// ErrBadPriority is returned for an unknown priority.
	ErrBadPriority = errors.New(`priority must be "low"|"medium"|"high"|"critical"`)
)

// Store provides access to the tasks collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Create inserts a new task. Status is always initialized to todo —
// any status on the input is discarded. Priority defaults to medium.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.Title = htmlsanitize.Strip(normalize.Name(t.Title))
	t.Description = htmlsanitize.Strip(normalize.Name(t.Description))
	t.Status = models.StatusTodo
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	if t.Title == "" || t.Description == "" {
		return models.Task{}, ErrValidation
	}
	if !models.IsValidPriority(t.Priority) {
		return models.Task{}, ErrBadPriority
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Filter narrows List. Nil/empty fields match everything.
type Filter struct {
	Status   string
	Priority string
	Assignee *primitive.ObjectID
}

// List returns tasks matching the filter, oldest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Task, error) {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.Assignee != nil {
		q["assignee_id"] = *f.Assignee
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update holds the patchable task fields. Every field is optional; a
// nil pointer means "leave unchanged". This is the explicit-structure
// replacement for a free-form patch map: only fields that are present
// are applied, field by field.
type Update struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *primitive.ObjectID
	DueDate     *time.Time
}

// HasAssigneeOrPriority reports whether the patch touches fields that
// members are not allowed to change through the generic edit path.
func (u Update) HasAssigneeOrPriority() bool {
	return u.AssigneeID != nil || u.Priority != nil
}

// Apply patches the task with the fields present in upd. Returns
// mongo.ErrNoDocuments when the task is absent, ErrValidation when a
// present title or description is empty, and ErrBadStatus /
// ErrBadPriority for unknown enum values.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now()}

	if upd.Title != nil {
		title := htmlsanitize.Strip(normalize.Name(*upd.Title))
		if title == "" {
			return ErrValidation
		}
		set["title"] = title
	}
	if upd.Description != nil {
		desc := htmlsanitize.Strip(normalize.Name(*upd.Description))
		if desc == "" {
			return ErrValidation
		}
		set["description"] = desc
	}
	if upd.Status != nil {
		if !models.IsValidStatus(*upd.Status) {
			return ErrBadStatus
		}
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		if !models.IsValidPriority(*upd.Priority) {
			return ErrBadPriority
		}
		set["priority"] = *upd.Priority
	}
	if upd.AssigneeID != nil {
		set["assignee_id"] = *upd.AssigneeID
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Move sets a task's status. Every status is reachable from every
// other status, including moves out of done; repeating a move is a
// state-level no-op.
func (s *Store) Move(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.IsValidStatus(status) {
		return ErrBadStatus
	}
	return s.setField(ctx, id, "status", status)
}

// Assign points a task at a roster member. The member id is not
// validated against the roster: assignment to an id that was since
// removed produces a stale reference, which readers tolerate.
func (s *Store) Assign(ctx context.Context, id, assigneeID primitive.ObjectID) error {
	return s.setField(ctx, id, "assignee_id", assigneeID)
}

// SetPriority changes a task's priority.
func (s *Store) SetPriority(ctx context.Context, id primitive.ObjectID, priority string) error {
	if !models.IsValidPriority(priority) {
		return ErrBadPriority
	}
	return s.setField(ctx, id, "priority", priority)
}

// Delete removes a task. Returns mongo.ErrNoDocuments when absent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) setField(ctx context.Context, id primitive.ObjectID, field string, value any) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		field:        value,
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
