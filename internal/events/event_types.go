package events

import (
	"time"

	"github.com/spec-kit/task-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated       EventType = "task_created"
	EventTaskAssigned      EventType = "task_assigned"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventCommentAdded      EventType = "comment_added"
	EventCommentDeleted    EventType = "comment_deleted"
	EventUserStatusChanged EventType = "user_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID       string              `json:"task_id"`
	Priority     domain.TaskPriority `json:"priority"`
	AssignedToID *string             `json:"assigned_to_id,omitempty"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID       string                `json:"task_id"`
	AssignedToID string                `json:"assigned_to_id"`
	Strategy     domain.AssignmentType `json:"strategy"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	TaskID    string            `json:"task_id"`
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// CommentPayload payload for comment_added and comment_deleted.
type CommentPayload struct {
	TaskID    string `json:"task_id"`
	CommentID string `json:"comment_id"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}
