package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// CommentRepository defines the comment persistence operations required
// by the comment service.
type CommentRepository interface {
	// Create appends a comment; a concurrently deleted parent task
	// yields models.ErrTaskNotFound.
	Create(ctx context.Context, comment *models.Comment) error
	// ListByTask fetches a task's comments in creation order.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error)
}

// TaskFinder is the slice of the task store the comment service needs.
type TaskFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
}

// CommentService manages the append-only comment log of tasks.
type CommentService struct {
	comments CommentRepository
	tasks    TaskFinder
	log      *zap.Logger
}

// NewCommentService constructs a CommentService from its collaborators.
func NewCommentService(comments CommentRepository, tasks TaskFinder, log *zap.Logger) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, log: log}
}

// Add appends a comment attributed to the caller. Admins may comment on
// any task; other users only on tasks they currently execute.
func (s *CommentService) Add(ctx context.Context, taskID uuid.UUID, content string, caller models.Claims) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.ErrEmptyComment
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := CanPerform(OpAddComment, caller, task); err != nil {
		s.log.Warn("comment denied",
			zap.String("task", taskID.String()),
			zap.String("caller", caller.UserID.String()))
		return nil, err
	}

	comment := &models.Comment{
		ID:       uuid.New(),
		TaskID:   taskID,
		AuthorID: caller.UserID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByTask fetches all comments of a task. Open to any authenticated
// caller; a missing task yields models.ErrTaskNotFound.
func (s *CommentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}
