package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/dto"
	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/service"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// TasksHandler serves task endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// CreateTask POST /tasks.
func (h *TasksHandler) CreateTask(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Context(), actor, service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("task created", dto.NewTaskResponse(task)))
}

// GetTask GET /tasks/:id.
func (h *TasksHandler) GetTask(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	task, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", dto.NewTaskResponse(task)))
}

// ListTasks GET /tasks.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	query, err := parseTaskListQuery(c)
	if err != nil {
		return err
	}

	tasks, total, err := h.service.List(c.Context(), actor, service.ListTasksInput{
		Status:       query.Status,
		Priority:     query.Priority,
		AssignedToID: query.AssignedToID,
		Page:         query.Page,
		Size:         query.Size,
	})
	if err != nil {
		return err
	}
	page := dto.NewPage(dto.NewTaskResponses(tasks), query.Page, query.Size, total)
	return c.JSON(dto.OK("", page))
}

// UpdateTask PUT /tasks/:id.
func (h *TasksHandler) UpdateTask(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Context(), actor, c.Params("id"), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("task updated", dto.NewTaskResponse(task)))
}

// AssignTask PUT /tasks/:id/assign.
func (h *TasksHandler) AssignTask(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	task, err := h.service.Assign(c.Context(), actor, c.Params("id"), req.Strategy, req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("task assigned", dto.NewTaskResponse(task)))
}

func parseTaskListQuery(c *fiber.Ctx) (dto.TaskListQuery, error) {
	var query dto.TaskListQuery

	if raw := c.Query("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return query, apperrors.NewValidationError("invalid status filter", map[string]any{"status": raw})
		}
		query.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			return query, apperrors.NewValidationError("invalid priority filter", map[string]any{"priority": raw})
		}
		query.Priority = &priority
	}
	if raw := c.Query("assigned_to"); raw != "" {
		query.AssignedToID = &raw
	}
	query.Page = parseIntQuery(c, "page", 0)
	query.Size = parseIntQuery(c, "size", 20)
	return query, nil
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
