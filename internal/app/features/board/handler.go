// internal/app/features/board/handler.go
package board

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/store/queries/taskqueries"
	taskstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/tasks"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/timeouts"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the read-only board views. Everything here is
// recomputed per request; there is no caching layer to invalidate.
type Handler struct {
	DB     *mongo.Database
	Tasks  *taskstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a board Handler. The raw database handle is
// needed for the completion aggregation.
func NewHandler(db *mongo.Database, tasks *taskstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Tasks: tasks, ErrLog: errLog, Log: logger}
}

type summaryResponse struct {
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	Total      int            `json:"total"`
}

// Summary handles GET /api/board/summary: task counts per status and
// priority, with every column present even when zero.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.List(ctx, taskstore.Filter{})
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "board.summary")
		return
	}

	resp := summaryResponse{
		ByStatus:   taskqueries.CountByStatus(tasks),
		ByPriority: taskqueries.CountByPriority(tasks),
		Total:      len(tasks),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// AssigneeTasks handles GET /api/board/assignees/{id}/tasks. An
// assignee with nothing assigned gets an empty list; ids that were
// removed from the roster still resolve to their (stale) tasks.
func (h *Handler) AssigneeTasks(w http.ResponseWriter, r *http.Request) {
	assignee, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.List(ctx, taskstore.Filter{Assignee: &assignee})
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "board.assigneetasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tasks)
}

type completionResponse struct {
	Done  int     `json:"done"`
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// AssigneeCompletion handles GET /api/board/assignees/{id}/completion.
// The counts come from a server-side aggregation; an assignee with no
// tasks reports a ratio of 0.
func (h *Handler) AssigneeCompletion(w http.ResponseWriter, r *http.Request) {
	assignee, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts, err := taskqueries.CountCompletionForAssignee(ctx, h.DB, assignee)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "board.completion")
		return
	}

	resp := completionResponse{
		Done:  counts.Done,
		Total: counts.Total,
		Ratio: counts.Ratio(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid assignee id")
		return primitive.NilObjectID, false
	}
	return id, true
}
