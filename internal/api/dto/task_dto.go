package dto

import (
	"time"

	"github.com/spec-kit/task-service/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title        string              `json:"title" validate:"required,max=200"`
	Description  string              `json:"description" validate:"max=4000"`
	Priority     domain.TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssignedToID *string             `json:"assigned_to_id" validate:"omitempty,uuid"`
}

// UpdateTaskRequest payload. Absent fields stay unchanged.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=200"`
	Description *string              `json:"description" validate:"omitempty,max=4000"`
	Priority    *domain.TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *domain.TaskStatus   `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
}

// AssignTaskRequest payload. AssigneeID only applies to MANUAL.
type AssignTaskRequest struct {
	Strategy   domain.AssignmentType `json:"strategy" validate:"required,oneof=MANUAL RANDOM LEAST_LOADED"`
	AssigneeID *string               `json:"assignee_id" validate:"omitempty,uuid"`
}

// TaskListQuery captures task listing filters.
type TaskListQuery struct {
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	AssignedToID *string
	Page         int
	Size         int
}

// TaskResponse is the full task shape.
type TaskResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       domain.TaskStatus   `json:"status"`
	Priority     domain.TaskPriority `json:"priority"`
	CreatedByID  string              `json:"created_by_id"`
	AssignedToID *string             `json:"assigned_to_id"`
	UpdatedByID  *string             `json:"updated_by_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		CreatedByID:  task.CreatedByID,
		AssignedToID: task.AssignedToID,
		UpdatedByID:  task.UpdatedByID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// NewTaskResponses maps a slice of domain tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
