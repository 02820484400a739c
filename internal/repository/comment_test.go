package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

func setupCommentMock(t *testing.T) (*PostgresCommentRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCommentRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCommentCreate(t *testing.T) {
	repo, mock, cleanup := setupCommentMock(t)
	defer cleanup()

	comment := &models.Comment{
		ID:       uuid.New(),
		TaskID:   uuid.New(),
		AuthorID: uuid.New(),
		Content:  "looks good",
	}
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO comments (id, task_id, author_id, content)`)).
		WithArgs(comment.ID, comment.TaskID, comment.AuthorID, comment.Content).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	if err := repo.Create(context.Background(), comment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comment.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt not filled in: %v", comment.CreatedAt)
	}
}

func TestCommentCreate_TaskVanished(t *testing.T) {
	repo, mock, cleanup := setupCommentMock(t)
	defer cleanup()

	comment := &models.Comment{ID: uuid.New(), TaskID: uuid.New(), AuthorID: uuid.New(), Content: "late"}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO comments`)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "comments_task_id_fkey"})

	err := repo.Create(context.Background(), comment)
	if !errors.Is(err, models.ErrTaskNotFound) {
		t.Fatalf("error = %v; want ErrTaskNotFound", err)
	}
}

func TestCommentCreate_AuthorVanished(t *testing.T) {
	repo, mock, cleanup := setupCommentMock(t)
	defer cleanup()

	comment := &models.Comment{ID: uuid.New(), TaskID: uuid.New(), AuthorID: uuid.New(), Content: "ghost"}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO comments`)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "comments_author_id_fkey"})

	err := repo.Create(context.Background(), comment)
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("error = %v; want ErrUserNotFound", err)
	}
}

func TestCommentListByTask(t *testing.T) {
	repo, mock, cleanup := setupCommentMock(t)
	defer cleanup()

	taskID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "task_id", "author_id", "content", "created_at"}).
		AddRow(uuid.NewString(), taskID.String(), uuid.NewString(), "first", time.Now()).
		AddRow(uuid.NewString(), taskID.String(), uuid.NewString(), "second", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM comments WHERE task_id = $1 ORDER BY created_at, id`)).
		WithArgs(taskID).
		WillReturnRows(rows)

	comments, err := repo.ListByTask(context.Background(), taskID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "first" {
		t.Errorf("unexpected comments: %+v", comments)
	}
}
