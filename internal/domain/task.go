package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority enumerates urgency levels.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether the priority is a known value.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// AssignmentType selects the task assignment strategy.
type AssignmentType string

const (
	AssignmentManual      AssignmentType = "MANUAL"
	AssignmentRandom      AssignmentType = "RANDOM"
	AssignmentLeastLoaded AssignmentType = "LEAST_LOADED"
)

// Task is the aggregate for work items. AssignedToID, when set, must
// reference a USER-role account.
type Task struct {
	ID           string
	Title        string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	CreatedByID  string
	AssignedToID *string
	UpdatedByID  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssignee reports whether the given user is the task's assignee.
func (t *Task) IsAssignee(userID string) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}
