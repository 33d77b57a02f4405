package taskqueries

import (
	"context"

	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CompletionCounts holds an assignee's done/total task counts.
type CompletionCounts struct {
	Done  int
	Total int
}

// Ratio applies the zero-guarded completion ratio to the counts.
func (c CompletionCounts) Ratio() float64 {
	return CompletionRatio(c.Done, c.Total)
}

// CountCompletionForAssignee groups the assignee's tasks by status on
// the server and returns done/total counts. An assignee with no tasks
// yields zero counts, not an error.
func CountCompletionForAssignee(
	ctx context.Context,
	db *mongo.Database,
	assigneeID primitive.ObjectID,
) (CompletionCounts, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"assignee_id": assigneeID}},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cur, err := db.Collection("tasks").Aggregate(ctx, pipeline)
	if err != nil {
		return CompletionCounts{}, err
	}
	defer cur.Close(ctx)

	var counts CompletionCounts
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return CompletionCounts{}, err
		}
		counts.Total += row.Count
		if row.Status == models.StatusDone {
			counts.Done = row.Count
		}
	}
	if err := cur.Err(); err != nil {
		return CompletionCounts{}, err
	}
	return counts, nil
}
