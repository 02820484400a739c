package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

const taskColumns = `id, title, description, status, priority, author_id, executor_id, created_at, updated_at`

// PostgresTaskRepository implements task persistence against a
// PostgreSQL database. All single-row mutations are guarded UPDATEs so
// that a concurrent delete surfaces as models.ErrTaskNotFound instead of
// a partial write.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using
// the provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

func scanTask(row interface{ Scan(...any) error }, task *models.Task) error {
	return row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AuthorID, &task.ExecutorID, &task.CreatedAt, &task.UpdatedAt,
	)
}

// Create persists a new task and fills in its timestamps.
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, author_id, executor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.AuthorID, task.ExecutorID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID fetches a task by id. A missing row surfaces as
// models.ErrTaskNotFound.
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := scanTask(r.DB.QueryRowContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	), &task)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select task by id: %w", err)
	}
	return &task, nil
}

// Update overwrites the mutable fields of a task in one statement.
func (r *PostgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, executor_id = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, task.Title, task.Description, task.Status, task.Priority, task.ExecutorID, task.ID,
	).Scan(&task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task by id. Comments go with it via the cascading
// foreign key.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// SetExecutor assigns the task to the given executor.
func (r *PostgresTaskRepository) SetExecutor(ctx context.Context, taskID, executorID uuid.UUID) error {
	return r.setField(ctx, taskID,
		`UPDATE tasks SET executor_id = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
		executorID)
}

// SetStatus updates the task's status.
func (r *PostgresTaskRepository) SetStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) error {
	return r.setField(ctx, taskID,
		`UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
		status)
}

// SetPriority updates the task's priority.
func (r *PostgresTaskRepository) SetPriority(ctx context.Context, taskID uuid.UUID, priority models.TaskPriority) error {
	return r.setField(ctx, taskID,
		`UPDATE tasks SET priority = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
		priority)
}

func (r *PostgresTaskRepository) setField(ctx context.Context, taskID uuid.UUID, query string, value any) error {
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, value, taskID).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("update task field: %w", err)
	}
	return nil
}

// ListByAuthor returns one page of tasks created by the given author.
func (r *PostgresTaskRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, page, size int) (*models.TaskPage, error) {
	return r.listWhere(ctx, `author_id = $1`, []any{authorID}, page, size)
}

// ListByExecutor returns one page of tasks assigned to the given
// executor.
func (r *PostgresTaskRepository) ListByExecutor(ctx context.Context, executorID uuid.UUID, page, size int) (*models.TaskPage, error) {
	return r.listWhere(ctx, `executor_id = $1`, []any{executorID}, page, size)
}

// ListByAuthorOrExecutor returns one page of tasks matching either the
// author or the executor. A task matching both appears once.
func (r *PostgresTaskRepository) ListByAuthorOrExecutor(ctx context.Context, authorID, executorID uuid.UUID, page, size int) (*models.TaskPage, error) {
	return r.listWhere(ctx, `author_id = $1 OR executor_id = $2`, []any{authorID, executorID}, page, size)
}

func (r *PostgresTaskRepository) listWhere(ctx context.Context, where string, args []any, page, size int) (*models.TaskPage, error) {
	var total int64
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM tasks WHERE `+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+taskColumns+` FROM tasks WHERE %s ORDER BY created_at, id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	rows, err := r.DB.QueryContext(ctx, query, append(args, size, page*size)...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return &models.TaskPage{Tasks: tasks, Total: total, Page: page, Size: size}, nil
}
