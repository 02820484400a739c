package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// CommentService defines the comment log operations required by the
// HTTP handlers.
type CommentService interface {
	// Add appends a comment attributed to the caller.
	Add(ctx context.Context, taskID uuid.UUID, content string, caller models.Claims) (*models.Comment, error)
	// ListByTask fetches a task's comments in creation order.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error)
}

// CommentHandler handles HTTP requests for task comments.
type CommentHandler struct {
	// CommentService performs the underlying comment operations.
	CommentService CommentService
	// Logger records request failures.
	Logger *zap.Logger
}

// commentRequest is the JSON payload for adding a comment.
type commentRequest struct {
	Content string `json:"content"`
}

// Add handles POST /tasks/{id}/comments.
// Admins may comment on any task; other users only on tasks they
// currently execute.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := claims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	comment, err := h.CommentService.Add(r.Context(), id, req.Content, caller)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// List handles GET /tasks/{id}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	comments, err := h.CommentService.ListByTask(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
