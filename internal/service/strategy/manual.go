package strategy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// Manual assigns the task to an explicitly requested user.
type Manual struct {
	users repository.UserRepository
}

// NewManual creates the strategy.
func NewManual(users repository.UserRepository) *Manual {
	return &Manual{users: users}
}

func (m *Manual) Type() domain.AssignmentType {
	return domain.AssignmentManual
}

// Assign validates the requested user and returns it as the assignee.
func (m *Manual) Assign(ctx context.Context, task *domain.Task, requestedUserID *string) (*domain.User, error) {
	if requestedUserID == nil || *requestedUserID == "" {
		return nil, apperrors.NewBadRequest("assignee id is required for manual assignment", nil)
	}
	user, err := m.users.GetByID(ctx, *requestedUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": *requestedUserID})
		}
		return nil, apperrors.MapError(err)
	}
	if user.Role != domain.RoleUser || !user.Active {
		return nil, apperrors.NewBadRequest("assignee must be an active user", map[string]any{
			"user_id": user.ID,
		})
	}
	return user, nil
}
