// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	uierrors "github.com/shreshthUnderscore/agile-ai/internal/app/features/errors"
	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/taskpolicy"
	taskstore "github.com/shreshthUnderscore/agile-ai/internal/app/store/tasks"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/authz"
	"github.com/shreshthUnderscore/agile-ai/internal/app/system/timeouts"
	"github.com/shreshthUnderscore/agile-ai/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Tasks  *taskstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a tasks Handler.
func NewHandler(tasks *taskstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Tasks: tasks, ErrLog: errLog, Log: logger}
}

type createRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Create handles POST /api/tasks. Any signed-in user can create a
// task; it always lands in the todo column regardless of the payload.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !taskpolicy.CanCreateTask(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "sign in to create tasks")
		return
	}
	_, _, actorID, _ := authz.UserCtx(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedBy:   actorID,
	}
	if req.AssigneeID != "" {
		assignee, err := primitive.ObjectIDFromHex(req.AssigneeID)
		if err != nil {
			h.ErrLog.Write(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		task.AssigneeID = &assignee
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Tasks.Create(ctx, task)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.create")
		return
	}

	h.Log.Info("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("created_by", actorID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

// List handles GET /api/tasks with optional status, priority, and
// assignee query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := taskstore.Filter{
		Status:   query.Get(r, "status"),
		Priority: query.Get(r, "priority"),
	}
	if raw := query.Get(r, "assignee"); raw != "" {
		assignee, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.ErrLog.Write(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		f.Assignee = &assignee
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.List(ctx, f)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "tasks.list")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.get")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(task)
}

type patchRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// Patch handles PATCH /api/tasks/{id}. Fields absent from the body are
// left untouched. The lead can patch any task and any field; a member
// can patch only a task assigned to them, and may not change its
// assignee or priority through this path.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	upd := taskstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if req.AssigneeID != nil {
		assignee, err := primitive.ObjectIDFromHex(*req.AssigneeID)
		if err != nil {
			h.ErrLog.Write(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		upd.AssigneeID = &assignee
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The ownership check needs the task's current assignee.
	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.patch.load")
		return
	}
	if !taskpolicy.CanEditTask(r, task) {
		h.ErrLog.Write(w, http.StatusForbidden, "you may only edit tasks assigned to you")
		return
	}
	if !authz.IsLead(r) && upd.HasAssigneeOrPriority() {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can change assignee or priority")
		return
	}

	if err := h.Tasks.Apply(ctx, id, upd); err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.patch")
		return
	}

	updated, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.patch.reload")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

type moveRequest struct {
	Status string `json:"status"`
}

// Move handles POST /api/tasks/{id}/move. Any signed-in user can move
// any task between columns; repeating a move is a no-op.
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	if !taskpolicy.CanMoveTask(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "sign in to move tasks")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Tasks.Move(ctx, id, req.Status); err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.move")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type assignRequest struct {
	AssigneeID string `json:"assignee_id"`
}

// Assign handles POST /api/tasks/{id}/assign. Lead-only. The assignee
// id is not checked against the roster; see the store note on stale
// references.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	if !taskpolicy.CanAssignTask(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can assign tasks")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	assignee, err := primitive.ObjectIDFromHex(req.AssigneeID)
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid assignee id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Tasks.Assign(ctx, id, assignee); err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.assign")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type priorityRequest struct {
	Priority string `json:"priority"`
}

// SetPriority handles POST /api/tasks/{id}/priority. Lead-only.
func (h *Handler) SetPriority(w http.ResponseWriter, r *http.Request) {
	if !taskpolicy.CanChangePriority(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can change priority")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req priorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Tasks.SetPriority(ctx, id, req.Priority); err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.priority")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/tasks/{id}. Lead-only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !taskpolicy.CanDeleteTask(r) {
		h.ErrLog.Write(w, http.StatusForbidden, "only the team lead can delete tasks")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Tasks.Delete(ctx, id); err != nil {
		h.ErrLog.StoreError(w, r, err, "tasks.delete")
		return
	}

	h.Log.Info("task deleted", zap.String("task_id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, http.StatusBadRequest, "invalid task id")
		return primitive.NilObjectID, false
	}
	return id, true
}
