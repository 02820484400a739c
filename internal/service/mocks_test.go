package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// Func-field mocks in the style of the repository interfaces: a nil
// field means the test does not expect that call.

type mockUserRepo struct {
	CreateFunc     func(ctx context.Context, user *models.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	ExistsByIDFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ExistsByIDFunc(ctx, id)
}

type mockCommentRepo struct {
	CreateFunc     func(ctx context.Context, comment *models.Comment) error
	ListByTaskFunc func(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return m.CreateFunc(ctx, comment)
}
func (m *mockCommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Comment, error) {
	return m.ListByTaskFunc(ctx, taskID)
}

type fakeIssuer struct {
	token string
	err   error
}

func (f *fakeIssuer) Issue(userID uuid.UUID, email string) (string, error) {
	return f.token, f.err
}

// memTaskRepo is an in-memory TaskRepository for end-to-end service
// tests. Mutations mirror the guarded-update semantics of the Postgres
// implementation: a missing task surfaces as models.ErrTaskNotFound.
type memTaskRepo struct {
	tasks map[uuid.UUID]*models.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[uuid.UUID]*models.Task{}}
}

func (r *memTaskRepo) Create(ctx context.Context, task *models.Task) error {
	now := time.Now()
	task.CreatedAt, task.UpdatedAt = now, now
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, models.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return models.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.tasks[id]; !ok {
		return models.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) SetExecutor(ctx context.Context, taskID, executorID uuid.UUID) error {
	task, ok := r.tasks[taskID]
	if !ok {
		return models.ErrTaskNotFound
	}
	task.ExecutorID = &executorID
	return nil
}

func (r *memTaskRepo) SetStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) error {
	task, ok := r.tasks[taskID]
	if !ok {
		return models.ErrTaskNotFound
	}
	task.Status = status
	return nil
}

func (r *memTaskRepo) SetPriority(ctx context.Context, taskID uuid.UUID, priority models.TaskPriority) error {
	task, ok := r.tasks[taskID]
	if !ok {
		return models.ErrTaskNotFound
	}
	task.Priority = priority
	return nil
}

func (r *memTaskRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, page, size int) (*models.TaskPage, error) {
	return r.list(func(t *models.Task) bool { return t.AuthorID == authorID }, page, size)
}

func (r *memTaskRepo) ListByExecutor(ctx context.Context, executorID uuid.UUID, page, size int) (*models.TaskPage, error) {
	return r.list(func(t *models.Task) bool { return t.IsExecutor(executorID) }, page, size)
}

func (r *memTaskRepo) ListByAuthorOrExecutor(ctx context.Context, authorID, executorID uuid.UUID, page, size int) (*models.TaskPage, error) {
	return r.list(func(t *models.Task) bool {
		return t.AuthorID == authorID || t.IsExecutor(executorID)
	}, page, size)
}

func (r *memTaskRepo) list(match func(*models.Task) bool, page, size int) (*models.TaskPage, error) {
	matches := []models.Task{}
	for _, task := range r.tasks {
		if match(task) {
			matches = append(matches, *task)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID.String() < matches[j].ID.String()
	})

	total := int64(len(matches))
	from := page * size
	if from > len(matches) {
		from = len(matches)
	}
	to := from + size
	if to > len(matches) {
		to = len(matches)
	}
	return &models.TaskPage{Tasks: matches[from:to], Total: total, Page: page, Size: size}, nil
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return models.ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *memUserRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}
