package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/observability"
	"github.com/spec-kit/task-service/internal/repository"
	"github.com/spec-kit/task-service/internal/service/strategy"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// CreateTaskInput carries new task data.
type CreateTaskInput struct {
	Title        string
	Description  string
	Priority     domain.TaskPriority
	AssignedToID *string
}

// UpdateTaskInput carries a partial task update. Nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
}

// ListTasksInput carries listing filters and pagination.
type ListTasksInput struct {
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	AssignedToID *string
	Page         int
	Size         int
}

// TaskService coordinates task lifecycle operations.
type TaskService struct {
	tasks      repository.TaskRepository
	strategies *strategy.Registry
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TaskDependencies bundles requirements for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	Strategies *strategy.Registry
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTaskService builds the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		strategies: deps.Strategies,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create opens a new task. Managers only. A direct assignee goes through
// the manual strategy so the same validation applies as on explicit
// assignment.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, input CreateTaskInput) (*domain.Task, error) {
	if !auth.CanCreateTask(actor.Role) {
		return nil, apperrors.NewForbidden("only managers may create tasks")
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(priority)})
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TaskStatusOpen,
		Priority:    priority,
		CreatedByID: actor.ID,
	}

	if input.AssignedToID != nil {
		manual, err := s.strategies.Get(domain.AssignmentManual)
		if err != nil {
			return nil, err
		}
		assignee, err := manual.Assign(ctx, task, input.AssignedToID)
		if err != nil {
			return nil, err
		}
		task.AssignedToID = &assignee.ID
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	observability.TasksCreatedTotal.Inc()
	s.publish(ctx, events.NewEvent(events.EventTaskCreated, actor.ID, events.TaskCreatedPayload{
		TaskID:       task.ID,
		Priority:     task.Priority,
		AssignedToID: task.AssignedToID,
	}))
	if task.AssignedToID != nil {
		s.publish(ctx, events.NewEvent(events.EventTaskAssigned, actor.ID, events.TaskAssignedPayload{
			TaskID:       task.ID,
			AssignedToID: *task.AssignedToID,
			Strategy:     domain.AssignmentManual,
		}))
	}

	s.logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("actor_id", actor.ID),
	)
	return task, nil
}

// Assign routes the task through the requested strategy and persists the
// chosen assignee in a single save.
func (s *TaskService) Assign(ctx context.Context, actor *domain.User, taskID string, assignmentType domain.AssignmentType, requestedUserID *string) (*domain.Task, error) {
	if !auth.CanAssignTask(actor.Role) {
		return nil, apperrors.NewForbidden("only managers may assign tasks")
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	strat, err := s.strategies.Get(assignmentType)
	if err != nil {
		return nil, err
	}
	assignee, err := strat.Assign(ctx, task, requestedUserID)
	if err != nil {
		return nil, err
	}

	task.AssignedToID = &assignee.ID
	task.UpdatedByID = &actor.ID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	observability.TasksAssignedTotal.WithLabelValues(string(assignmentType)).Inc()
	s.publish(ctx, events.NewEvent(events.EventTaskAssigned, actor.ID, events.TaskAssignedPayload{
		TaskID:       task.ID,
		AssignedToID: assignee.ID,
		Strategy:     assignmentType,
	}))

	s.logger.Info("task assigned",
		zap.String("task_id", task.ID),
		zap.String("assignee_id", assignee.ID),
		zap.String("strategy", string(assignmentType)),
		zap.String("actor_id", actor.ID),
	)
	return task, nil
}

// Get returns the task if the caller may view it.
func (s *TaskService) Get(ctx context.Context, actor *domain.User, taskID string) (*domain.Task, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !auth.CanViewTask(actor, task) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return task, nil
}

// Update applies a partial update. Authorization is decided over the whole
// request before anything is written: a user who may only change status
// gets rejected outright when the request also touches other fields.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, taskID string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	touchesFields := input.Title != nil || input.Description != nil || input.Priority != nil
	if touchesFields && !auth.CanUpdateTaskFields(actor.Role) {
		return nil, apperrors.NewForbidden("only managers may update task fields")
	}
	if input.Status != nil && !auth.CanUpdateTaskStatus(actor, task) {
		return nil, apperrors.NewForbidden("not allowed to change task status")
	}
	if !touchesFields && input.Status == nil {
		return nil, apperrors.NewBadRequest("no fields to update", nil)
	}

	if input.Priority != nil && !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": string(*input.Priority)})
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*input.Status)})
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	oldStatus := task.Status
	if input.Status != nil {
		task.Status = *input.Status
	}

	task.UpdatedByID = &actor.ID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Status != nil && oldStatus != task.Status {
		observability.TaskStatusChangesTotal.WithLabelValues(string(task.Status)).Inc()
		s.publish(ctx, events.NewEvent(events.EventTaskStatusChanged, actor.ID, events.TaskStatusChangedPayload{
			TaskID:    task.ID,
			OldStatus: oldStatus,
			NewStatus: task.Status,
		}))
	}

	s.logger.Info("task updated",
		zap.String("task_id", task.ID),
		zap.String("actor_id", actor.ID),
	)
	return task, nil
}

// List returns tasks visible to the caller. Users are always scoped to
// their own assignments regardless of the requested filter.
func (s *TaskService) List(ctx context.Context, actor *domain.User, input ListTasksInput) ([]domain.Task, int64, error) {
	limit, offset := pageBounds(input.Page, input.Size)
	filter := repository.TaskFilter{
		Status:       input.Status,
		Priority:     input.Priority,
		AssignedToID: input.AssignedToID,
		Limit:        limit,
		Offset:       offset,
	}
	if actor.Role == domain.RoleUser {
		filter.AssignedToID = &actor.ID
	}

	tasks, err := s.tasks.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	total, err := s.tasks.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return tasks, total, nil
}

func (s *TaskService) getTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("task", map[string]any{"task_id": taskID})
		}
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
