package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-service/internal/api/dto"
	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/service"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// CommentsHandler serves task comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// CreateComment POST /tasks/:id/comments.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	comment, err := h.service.Create(c.Context(), actor, c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("comment added", dto.NewCommentResponse(comment)))
}

// ListComments GET /tasks/:id/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	page := parseIntQuery(c, "page", 0)
	size := parseIntQuery(c, "size", 20)

	comments, total, err := h.service.List(c.Context(), actor, c.Params("id"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("", dto.NewPage(dto.NewCommentResponses(comments), page, size, total)))
}

// DeleteComment DELETE /tasks/:id/comments/:commentId.
func (h *CommentsHandler) DeleteComment(c *fiber.Ctx) error {
	actor, err := auth.RequireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id"), c.Params("commentId")); err != nil {
		return err
	}
	return c.JSON(dto.OK("comment deleted", nil))
}
