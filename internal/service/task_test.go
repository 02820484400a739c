package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
	"github.com/kvitkoaleksandr/TaskPro/internal/service"
)

func newTaskFixture() (*service.TaskService, *memTaskRepo, models.Claims, models.Claims) {
	adminUser := &models.User{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
	plainUser := &models.User{ID: uuid.New(), Email: "user@example.com", Role: models.RoleUser}

	tasks := newMemTaskRepo()
	users := newMemUserRepo(adminUser, plainUser)
	svc := service.NewTaskService(tasks, users, zap.NewNop())

	admin := models.Claims{UserID: adminUser.ID, Email: adminUser.Email, Role: models.RoleAdmin}
	user := models.Claims{UserID: plainUser.ID, Email: plainUser.Email, Role: models.RoleUser}
	return svc, tasks, admin, user
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates with defaults", func(t *testing.T) {
		svc, tasks, admin, _ := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "write report"}, admin)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, task.Status)
		assert.Equal(t, models.PriorityMedium, task.Priority)
		assert.Equal(t, admin.UserID, task.AuthorID)
		assert.Nil(t, task.ExecutorID)
		assert.Len(t, tasks.tasks, 1)
	})

	t.Run("non-admin is denied and nothing is persisted", func(t *testing.T) {
		svc, tasks, _, user := newTaskFixture()

		_, err := svc.Create(ctx, service.TaskInput{Title: "write report"}, user)
		assert.ErrorIs(t, err, models.ErrAccessDenied)
		assert.Empty(t, tasks.tasks)
	})

	t.Run("unknown executor", func(t *testing.T) {
		svc, tasks, admin, _ := newTaskFixture()

		ghost := uuid.New()
		_, err := svc.Create(ctx, service.TaskInput{Title: "t", ExecutorID: &ghost}, admin)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		assert.Empty(t, tasks.tasks)
	})

	t.Run("invalid status token is rejected, not coerced", func(t *testing.T) {
		svc, _, admin, _ := newTaskFixture()

		_, err := svc.Create(ctx, service.TaskInput{Title: "t", Status: "STARTED"}, admin)
		assert.ErrorIs(t, err, models.ErrInvalidEnum)
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("denied for anyone but the executor", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t", ExecutorID: &user.UserID}, admin)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, task.ID, "DONE", admin)
		assert.ErrorIs(t, err, models.ErrAccessDenied)
	})

	t.Run("executor may update, case-insensitively", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t", ExecutorID: &user.UserID}, admin)
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, task.ID, "done", user)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDone, updated.Status)
	})

	t.Run("invalid token leaves the task unmodified", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t", ExecutorID: &user.UserID}, admin)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, task.ID, "FINISHED", user)
		assert.ErrorIs(t, err, models.ErrInvalidEnum)

		current, err := svc.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, current.Status)
	})

	t.Run("missing task", func(t *testing.T) {
		svc, _, _, user := newTaskFixture()

		_, err := svc.UpdateStatus(ctx, uuid.New(), "DONE", user)
		assert.ErrorIs(t, err, models.ErrTaskNotFound)
	})
}

func TestTaskService_AssignExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment is visible on the next read", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
		require.NoError(t, err)

		_, err = svc.AssignExecutor(ctx, task.ID, user.UserID, admin)
		require.NoError(t, err)

		current, err := svc.GetByID(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, current.ExecutorID)
		assert.Equal(t, user.UserID, *current.ExecutorID)
	})

	t.Run("denied for non-admin", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
		require.NoError(t, err)

		_, err = svc.AssignExecutor(ctx, task.ID, user.UserID, user)
		assert.ErrorIs(t, err, models.ErrAccessDenied)
	})

	t.Run("unknown executor", func(t *testing.T) {
		svc, _, admin, _ := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
		require.NoError(t, err)

		_, err = svc.AssignExecutor(ctx, task.ID, uuid.New(), admin)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

func TestTaskService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("full update overwrites fields but not the author", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "old"}, admin)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, task.ID, service.TaskInput{
			Title:       "new",
			Description: "details",
			Status:      "in_progress",
			Priority:    "high",
			ExecutorID:  &user.UserID,
		}, admin)
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Title)
		assert.Equal(t, models.StatusInProgress, updated.Status)
		assert.Equal(t, models.PriorityHigh, updated.Priority)
		assert.Equal(t, admin.UserID, updated.AuthorID)
		require.NotNil(t, updated.ExecutorID)
		assert.Equal(t, user.UserID, *updated.ExecutorID)
	})

	t.Run("update denied for non-admin", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
		require.NoError(t, err)

		_, err = svc.Update(ctx, task.ID, service.TaskInput{Title: "x", Status: "DONE", Priority: "LOW"}, user)
		assert.ErrorIs(t, err, models.ErrAccessDenied)
	})

	t.Run("delete removes the task", func(t *testing.T) {
		svc, tasks, admin, _ := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, task.ID, admin))
		assert.Empty(t, tasks.tasks)

		assert.ErrorIs(t, svc.Delete(ctx, task.ID, admin), models.ErrTaskNotFound)
	})

	t.Run("priority update is admin-gated and enum-checked", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		task, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
		require.NoError(t, err)

		_, err = svc.UpdatePriority(ctx, task.ID, "HIGH", user)
		assert.ErrorIs(t, err, models.ErrAccessDenied)

		_, err = svc.UpdatePriority(ctx, task.ID, "urgent", admin)
		assert.ErrorIs(t, err, models.ErrInvalidEnum)

		updated, err := svc.UpdatePriority(ctx, task.ID, "high", admin)
		require.NoError(t, err)
		assert.Equal(t, models.PriorityHigh, updated.Priority)
	})
}

func TestTaskService_ListFiltered(t *testing.T) {
	ctx := context.Background()

	t.Run("requires at least one filter id", func(t *testing.T) {
		svc, _, _, _ := newTaskFixture()

		_, err := svc.ListFiltered(ctx, nil, nil, 0, 10)
		assert.ErrorIs(t, err, models.ErrMissingFilter)
	})

	t.Run("rejects bad pagination", func(t *testing.T) {
		svc, _, admin, _ := newTaskFixture()

		_, err := svc.ListFiltered(ctx, &admin.UserID, nil, -1, 10)
		assert.ErrorIs(t, err, models.ErrInvalidPage)

		_, err = svc.ListFiltered(ctx, &admin.UserID, nil, 0, 0)
		assert.ErrorIs(t, err, models.ErrInvalidPage)
	})

	t.Run("both ids return the union without duplicates", func(t *testing.T) {
		svc, _, admin, user := newTaskFixture()

		authored, err := svc.Create(ctx, service.TaskInput{Title: "authored"}, admin)
		require.NoError(t, err)
		executed, err := svc.Create(ctx, service.TaskInput{Title: "executed", ExecutorID: &user.UserID}, admin)
		require.NoError(t, err)

		page, err := svc.ListFiltered(ctx, &admin.UserID, &user.UserID, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Len(t, page.Tasks, 2)

		ids := map[uuid.UUID]bool{}
		for _, task := range page.Tasks {
			ids[task.ID] = true
		}
		assert.True(t, ids[authored.ID])
		assert.True(t, ids[executed.ID])
	})

	t.Run("pagination slices results", func(t *testing.T) {
		svc, _, admin, _ := newTaskFixture()

		for i := 0; i < 5; i++ {
			_, err := svc.Create(ctx, service.TaskInput{Title: "t"}, admin)
			require.NoError(t, err)
		}

		page, err := svc.ListFiltered(ctx, &admin.UserID, nil, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		assert.Len(t, page.Tasks, 2)
	})
}

// Full lifecycle: admin creates an unassigned task, cannot move its
// status, assigns an executor, and the executor completes it.
func TestTaskService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, _, admin, user := newTaskFixture()

	task, err := svc.Create(ctx, service.TaskInput{Title: "ship release"}, admin)
	require.NoError(t, err)
	require.Nil(t, task.ExecutorID)

	_, err = svc.UpdateStatus(ctx, task.ID, "DONE", admin)
	require.ErrorIs(t, err, models.ErrAccessDenied)

	_, err = svc.AssignExecutor(ctx, task.ID, user.UserID, admin)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, task.ID, "DONE", user)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)

	current, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, current.Status)
}
