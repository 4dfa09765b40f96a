package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/dto"
	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/service"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// UsersHandler serves account endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Me GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", dto.NewUserResponse(actor)))
}

// GetUser GET /users/:id. Managers see the same reduced shape as their
// roster when reading another account.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleManager && user.ID != actor.ID {
		return c.JSON(dto.OK("", dto.NewUserSummary(user)))
	}
	return c.JSON(dto.OK("", dto.NewUserResponse(user)))
}

// ListUsers GET /users. Admins get full accounts with filters; managers get
// a summary roster of active users for assignment picking.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}

	input := service.ListUsersInput{
		Page: parseIntQuery(c, "page", 0),
		Size: parseIntQuery(c, "size", 20),
	}
	if raw := c.Query("role"); raw != "" {
		role := domain.Role(raw)
		if !role.Valid() {
			return apperrors.NewValidationError("invalid role filter", map[string]any{"role": raw})
		}
		input.Role = &role
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		input.Active = &active
	}

	users, total, err := h.service.List(c.Context(), actor, input)
	if err != nil {
		return err
	}

	var content any
	if actor.Role == domain.RoleManager {
		content = dto.NewUserSummaries(users)
	} else {
		content = dto.NewUserResponses(users)
	}
	return c.JSON(dto.OK("", dto.NewPage(content, input.Page, input.Size, total)))
}

// UpdateRole PUT /users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, err := h.service.UpdateRole(c.Context(), actor, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("role updated", dto.NewUserResponse(user)))
}

// SetActive PUT /users/:id/status.
func (h *UsersHandler) SetActive(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, err := h.service.SetActive(c.Context(), actor, c.Params("id"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("account status updated", dto.NewUserResponse(user)))
}
