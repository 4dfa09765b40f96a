package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// ListUsersInput carries account listing filters and pagination. Filters
// apply for admins only; managers always receive the active USER roster.
type ListUsersInput struct {
	Role   *domain.Role
	Active *bool
	Page   int
	Size   int
}

// UserService coordinates account management operations.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Get returns the account if the caller may see it. Anyone may read their
// own account; admins may read any account; managers may read only active
// USER-role accounts, same visibility as their roster.
func (s *UserService) Get(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	if userID != actor.ID && !auth.CanListUsers(actor.Role) {
		return nil, apperrors.NewForbidden("access denied")
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleManager && userID != actor.ID {
		if user.Role != domain.RoleUser || !user.Active {
			return nil, apperrors.NewForbidden("access denied")
		}
	}
	return user, nil
}

// List returns accounts visible to the caller. Admins see everything and
// may filter; managers get the active USER roster regardless of filters.
func (s *UserService) List(ctx context.Context, actor *domain.User, input ListUsersInput) ([]domain.User, int64, error) {
	if !auth.CanListUsers(actor.Role) {
		return nil, 0, apperrors.NewForbidden("access denied")
	}

	limit, offset := pageBounds(input.Page, input.Size)
	filter := repository.UserFilter{
		Role:   input.Role,
		Active: input.Active,
		Limit:  limit,
		Offset: offset,
	}
	if actor.Role == domain.RoleManager {
		role := domain.RoleUser
		active := true
		filter.Role = &role
		filter.Active = &active
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return users, total, nil
}

// UpdateRole changes an account's role. Admin only; an admin may not
// change their own role.
func (s *UserService) UpdateRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) (*domain.User, error) {
	if !auth.CanManageUsers(actor.Role) {
		return nil, apperrors.NewForbidden("only admins may manage accounts")
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(role)})
	}
	if userID == actor.ID {
		return nil, apperrors.NewBadRequest("cannot change your own role", nil)
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("role updated",
		zap.String("user_id", user.ID),
		zap.String("role", string(role)),
		zap.String("actor_id", actor.ID),
	)
	return user, nil
}

// SetActive activates or deactivates an account. Admin only; an admin may
// not deactivate themselves.
func (s *UserService) SetActive(ctx context.Context, actor *domain.User, userID string, active bool) (*domain.User, error) {
	if !auth.CanManageUsers(actor.Role) {
		return nil, apperrors.NewForbidden("only admins may manage accounts")
	}
	if userID == actor.ID && !active {
		return nil, apperrors.NewBadRequest("cannot deactivate your own account", nil)
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Active == active {
		return user, nil
	}

	user.Active = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserStatusChanged, actor.ID, events.UserStatusChangedPayload{
			UserID: user.ID,
			Active: active,
		}))
	}

	s.logger.Info("account status changed",
		zap.String("user_id", user.ID),
		zap.Bool("active", active),
		zap.String("actor_id", actor.ID),
	)
	return user, nil
}

func (s *UserService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
