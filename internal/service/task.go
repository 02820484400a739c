package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// TaskRepository defines the task persistence operations required by the
// mutation engine. Single-row mutations report a vanished task as
// models.ErrTaskNotFound so that check-then-mutate sequences stay atomic
// with respect to concurrent deletes.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetExecutor(ctx context.Context, taskID, executorID uuid.UUID) error
	SetStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) error
	SetPriority(ctx context.Context, taskID uuid.UUID, priority models.TaskPriority) error
	ListByAuthor(ctx context.Context, authorID uuid.UUID, page, size int) (*models.TaskPage, error)
	ListByExecutor(ctx context.Context, executorID uuid.UUID, page, size int) (*models.TaskPage, error)
	ListByAuthorOrExecutor(ctx context.Context, authorID, executorID uuid.UUID, page, size int) (*models.TaskPage, error)
}

// TaskInput carries the caller-supplied fields of a task. Status and
// priority arrive as raw tokens and are validated against their
// enumerations before any write.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	ExecutorID  *uuid.UUID
}

// TaskService is the authorization-aware task mutation engine. Every
// operation evaluates CanPerform before touching the store.
type TaskService struct {
	tasks TaskRepository
	users UserRepository
	log   *zap.Logger
}

// NewTaskService constructs a TaskService from its collaborators.
func NewTaskService(tasks TaskRepository, users UserRepository, log *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, log: log}
}

// GetByID fetches a single task. Open to any authenticated caller.
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Create persists a new task authored by the caller. Admin only. An
// omitted status defaults to PENDING and an omitted priority to MEDIUM;
// a present but unrecognized token is rejected, never coerced. A named
// executor must exist.
func (s *TaskService) Create(ctx context.Context, input TaskInput, caller models.Claims) (*models.Task, error) {
	if err := CanPerform(OpCreateTask, caller, nil); err != nil {
		s.log.Warn("task create denied", zap.String("caller", caller.UserID.String()))
		return nil, err
	}

	status := models.StatusPending
	if input.Status != "" {
		var err error
		if status, err = models.ParseStatus(input.Status); err != nil {
			return nil, err
		}
	}
	priority := models.PriorityMedium
	if input.Priority != "" {
		var err error
		if priority, err = models.ParsePriority(input.Priority); err != nil {
			return nil, err
		}
	}

	if input.ExecutorID != nil {
		if err := s.requireUser(ctx, *input.ExecutorID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AuthorID:    caller.UserID,
		ExecutorID:  input.ExecutorID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update overwrites the mutable fields of a task. Admin only. Status and
// priority tokens are required and validated; an omitted executor keeps
// the current assignment, a named one must exist. The author is never
// changed.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, input TaskInput, caller models.Claims) (*models.Task, error) {
	if err := CanPerform(OpUpdateTask, caller, nil); err != nil {
		s.log.Warn("task update denied", zap.String("caller", caller.UserID.String()))
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := models.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}
	priority, err := models.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	if input.ExecutorID != nil {
		if err := s.requireUser(ctx, *input.ExecutorID); err != nil {
			return nil, err
		}
		task.ExecutorID = input.ExecutorID
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = status
	task.Priority = priority

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. Admin only.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID, caller models.Claims) error {
	if err := CanPerform(OpDeleteTask, caller, nil); err != nil {
		s.log.Warn("task delete denied", zap.String("caller", caller.UserID.String()))
		return err
	}
	return s.tasks.Delete(ctx, id)
}

// AssignExecutor sets the task's executor. Admin only; the executor must
// exist.
func (s *TaskService) AssignExecutor(ctx context.Context, taskID, executorID uuid.UUID, caller models.Claims) (*models.Task, error) {
	if err := CanPerform(OpAssignExecutor, caller, nil); err != nil {
		s.log.Warn("executor assignment denied", zap.String("caller", caller.UserID.String()))
		return nil, err
	}
	if err := s.requireUser(ctx, executorID); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.SetExecutor(ctx, taskID, executorID); err != nil {
		return nil, err
	}
	task.ExecutorID = &executorID
	return task, nil
}

// UpdateStatus sets the task's status. Only the current executor may do
// this; the authorization check runs before the token is validated, and
// an invalid token leaves the task unmodified.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uuid.UUID, statusToken string, caller models.Claims) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := CanPerform(OpUpdateStatus, caller, task); err != nil {
		s.log.Warn("status update denied",
			zap.String("task", taskID.String()),
			zap.String("caller", caller.UserID.String()))
		return nil, err
	}

	status, err := models.ParseStatus(statusToken)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.SetStatus(ctx, taskID, status); err != nil {
		return nil, err
	}
	task.Status = status
	return task, nil
}

// UpdatePriority sets the task's priority. Admin only; the token is
// validated against the priority enumeration.
func (s *TaskService) UpdatePriority(ctx context.Context, taskID uuid.UUID, priorityToken string, caller models.Claims) (*models.Task, error) {
	if err := CanPerform(OpUpdatePriority, caller, nil); err != nil {
		s.log.Warn("priority update denied", zap.String("caller", caller.UserID.String()))
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	priority, err := models.ParsePriority(priorityToken)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.SetPriority(ctx, taskID, priority); err != nil {
		return nil, err
	}
	task.Priority = priority
	return task, nil
}

// ListFiltered returns one page of tasks matching the author and/or
// executor filter. At least one id must be supplied; when both are, the
// result is the union of matches. Open to any authenticated caller.
func (s *TaskService) ListFiltered(ctx context.Context, authorID, executorID *uuid.UUID, page, size int) (*models.TaskPage, error) {
	if page < 0 || size < 1 {
		return nil, models.ErrInvalidPage
	}

	switch {
	case authorID != nil && executorID != nil:
		return s.tasks.ListByAuthorOrExecutor(ctx, *authorID, *executorID, page, size)
	case authorID != nil:
		return s.tasks.ListByAuthor(ctx, *authorID, page, size)
	case executorID != nil:
		return s.tasks.ListByExecutor(ctx, *executorID, page, size)
	default:
		return nil, models.ErrMissingFilter
	}
}

func (s *TaskService) requireUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		s.log.Warn("referenced executor does not exist", zap.String("executor", id.String()))
		return models.ErrUserNotFound
	}
	return nil
}
