package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the operational state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// TaskPriority is the scheduling weight of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// ParseStatus matches token against the status enumeration,
// case-insensitively. Unknown tokens yield an *InvalidEnumError.
func ParseStatus(token string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(token)) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", &InvalidEnumError{Kind: "status", Token: token}
	}
}

// ParsePriority matches token against the priority enumeration,
// case-insensitively. Unknown tokens yield an *InvalidEnumError.
func ParsePriority(token string) (TaskPriority, error) {
	switch TaskPriority(strings.ToUpper(token)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", &InvalidEnumError{Kind: "priority", Token: token}
	}
}

// Task is a unit of work created by an admin and optionally assigned
// to an executor.
type Task struct {
	// ID is the unique identifier for the task.
	ID uuid.UUID `json:"id"`
	// Title is the short human-readable name of the task.
	Title string `json:"title"`
	// Description holds the full task text.
	Description string `json:"description"`
	// Status is the operational state, changed only by the executor.
	Status TaskStatus `json:"status"`
	// Priority is the scheduling weight, changed only by admins.
	Priority TaskPriority `json:"priority"`
	// AuthorID is the admin who created the task. Set once, immutable.
	AuthorID uuid.UUID `json:"authorId"`
	// ExecutorID is the user assigned to carry the task out.
	// Nil means unassigned, which is a valid state.
	ExecutorID *uuid.UUID `json:"executorId,omitempty"`
	// CreatedAt is when the task was persisted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the task was last mutated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsExecutor reports whether userID is the task's current executor.
// An unassigned task has no executor, so this is false for everyone.
func (t *Task) IsExecutor(userID uuid.UUID) bool {
	return t.ExecutorID != nil && *t.ExecutorID == userID
}

// TaskPage is one page of a filtered task listing together with the
// total number of matches across all pages.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}
