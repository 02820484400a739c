package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// PostgresCommentRepository implements comment persistence against a
// PostgreSQL database. The log is append-only: there is no update or
// delete operation.
type PostgresCommentRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
// using the provided *sql.DB.
func NewPostgresCommentRepository(db *sql.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{DB: db}
}

// Create appends a comment to its task's log and fills in the creation
// timestamp. The foreign key on task_id makes the append atomic with
// respect to a concurrent task delete: the insert fails and surfaces as
// models.ErrTaskNotFound.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO comments (id, task_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, comment.ID, comment.TaskID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
		if pqErr.Constraint == "comments_author_id_fkey" {
			return models.ErrUserNotFound
		}
		return models.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByTask fetches all comments of a task in creation order.
func (r *PostgresCommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, task_id, author_id, content, created_at
		FROM comments WHERE task_id = $1 ORDER BY created_at, id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}
