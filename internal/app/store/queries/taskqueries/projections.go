// Package taskqueries provides read-only derived views over tasks for
// the board dashboards. Projections are recomputed on each query; the
// collections are small and nothing here caches or invalidates.
package taskqueries

import (
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CountByStatus folds tasks into a per-status count. Every status
// appears in the result, zero or not, so board columns render without
// key checks.
func CountByStatus(tasks []models.Task) map[string]int {
	counts := make(map[string]int, 4)
	for _, s := range models.Statuses() {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// CountByPriority folds tasks into a per-priority count, with every
// priority present in the result.
func CountByPriority(tasks []models.Task) map[string]int {
	counts := make(map[string]int, 4)
	for _, p := range models.Priorities() {
		counts[p] = 0
	}
	for _, t := range tasks {
		counts[t.Priority]++
	}
	return counts
}

// ForAssignee returns the tasks assigned to the given member, in the
// order they appear in tasks. Stale assignee references (the member
// may have been removed from the roster) are returned like any other.
func ForAssignee(tasks []models.Task, memberID primitive.ObjectID) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.AssigneeID != nil && *t.AssigneeID == memberID {
			out = append(out, t)
		}
	}
	return out
}

// CompletionRatio returns doneCount/totalCount for the given counts.
// An assignee with no tasks has a ratio of 0, not a division fault.
func CompletionRatio(doneCount, totalCount int) float64 {
	if totalCount == 0 {
		return 0
	}
	return float64(doneCount) / float64(totalCount)
}
