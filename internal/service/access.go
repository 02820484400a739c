// Package service implements the business logic of the task tracker:
// registration and login, the authorization-gated task mutation engine,
// and the append-only comment log.
package service

import (
	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// Operation identifies an action checked by CanPerform.
type Operation string

const (
	OpCreateTask     Operation = "create task"
	OpUpdateTask     Operation = "update task"
	OpDeleteTask     Operation = "delete task"
	OpAssignExecutor Operation = "assign executor"
	OpUpdateStatus   Operation = "update status"
	OpUpdatePriority Operation = "update priority"
	OpAddComment     Operation = "add comment"
)

// CanPerform is the single authorization predicate for task operations.
// Structural operations (create/update/delete/assign/priority) require
// the ADMIN role; updating status requires being the task's current
// executor, admins included; commenting is open to admins on any task
// and to the current executor otherwise.
//
// task may be nil for structural operations, which depend only on the
// caller's role. A nil return means the operation is allowed; otherwise
// the returned *models.AccessError carries the reason for the denial.
func CanPerform(op Operation, caller models.Claims, task *models.Task) error {
	switch op {
	case OpCreateTask, OpUpdateTask, OpDeleteTask, OpAssignExecutor, OpUpdatePriority:
		if !caller.IsAdmin() {
			return &models.AccessError{Op: string(op), Reason: models.DenyNotAdmin}
		}
		return nil

	case OpUpdateStatus:
		if task.ExecutorID == nil {
			return &models.AccessError{Op: string(op), Reason: models.DenyUnassigned}
		}
		if !task.IsExecutor(caller.UserID) {
			return &models.AccessError{Op: string(op), Reason: models.DenyNotExecutor}
		}
		return nil

	case OpAddComment:
		if caller.IsAdmin() || task.IsExecutor(caller.UserID) {
			return nil
		}
		if task.ExecutorID == nil {
			return &models.AccessError{Op: string(op), Reason: models.DenyUnassigned}
		}
		return &models.AccessError{Op: string(op), Reason: models.DenyNotExecutor}

	default:
		return &models.AccessError{Op: string(op), Reason: "unknown operation"}
	}
}
