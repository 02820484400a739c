package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only note attached to a task. Comments are never
// edited or removed once written.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID uuid.UUID `json:"id"`
	// TaskID references the parent task.
	TaskID uuid.UUID `json:"taskId"`
	// AuthorID is the user the comment is attributed to.
	AuthorID uuid.UUID `json:"authorId"`
	// Content is the free-text body of the comment.
	Content string `json:"content"`
	// CreatedAt is when the comment was written.
	CreatedAt time.Time `json:"createdAt"`
}
