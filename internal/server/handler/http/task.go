package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/middleware"
	"github.com/kvitkoaleksandr/TaskPro/internal/models"
	"github.com/kvitkoaleksandr/TaskPro/internal/service"
)

// TaskService defines the task engine operations required by the HTTP
// handlers.
type TaskService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Create(ctx context.Context, input service.TaskInput, caller models.Claims) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, input service.TaskInput, caller models.Claims) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID, caller models.Claims) error
	AssignExecutor(ctx context.Context, taskID, executorID uuid.UUID, caller models.Claims) (*models.Task, error)
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status string, caller models.Claims) (*models.Task, error)
	UpdatePriority(ctx context.Context, taskID uuid.UUID, priority string, caller models.Claims) (*models.Task, error)
	ListFiltered(ctx context.Context, authorID, executorID *uuid.UUID, page, size int) (*models.TaskPage, error)
}

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	// TaskService performs the underlying task operations.
	TaskService TaskService
	// Logger records request failures.
	Logger *zap.Logger
}

// taskRequest is the JSON payload for task creation and full update.
type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ExecutorID  *uuid.UUID `json:"executorId"`
}

func (req taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ExecutorID:  req.ExecutorID,
	}
}

// claims fetches the authenticated principal installed by the JWT
// middleware. The protected router guarantees its presence.
func claims(w http.ResponseWriter, r *http.Request) (models.Claims, bool) {
	c, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: models.ErrInvalidToken.Error()})
	}
	return c, ok
}

// pathID parses the {id} URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid task id"})
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /tasks/filter.
// Filters by authorId and/or executorId (at least one required; both
// mean the union of matches) with page/size pagination.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var authorID, executorID *uuid.UUID
	if raw := q.Get("authorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid authorId"})
			return
		}
		authorID = &id
	}
	if raw := q.Get("executorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid executorId"})
			return
		}
		executorID = &id
	}

	page, size := 0, 10
	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page"})
			return
		}
		page = v
	}
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid size"})
			return
		}
		size = v
	}

	result, err := h.TaskService.ListFiltered(r.Context(), authorID, executorID, page, size)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Create handles POST /tasks. Admin only; the caller becomes the
// task's author.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	task, err := h.TaskService.Create(r.Context(), req.toInput(), caller)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}. Admin only; overwrites all mutable
// fields of the task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	task, err := h.TaskService.Update(r.Context(), id, req.toInput(), caller)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}. Admin only; replies 204.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.Delete(r.Context(), id, caller); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Assign handles PATCH /tasks/{id}/assign?executorId=. Admin only.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	executorID, err := uuid.Parse(r.URL.Query().Get("executorId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid executorId"})
		return
	}

	task, err := h.TaskService.AssignExecutor(r.Context(), id, executorID, caller)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Status handles PATCH /tasks/{id}/status?status=. Executor only.
func (h *TaskHandler) Status(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.UpdateStatus(r.Context(), id, r.URL.Query().Get("status"), caller)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Priority handles PATCH /tasks/{id}/priority?priority=. Admin only.
func (h *TaskHandler) Priority(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.UpdatePriority(r.Context(), id, r.URL.Query().Get("priority"), caller)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
