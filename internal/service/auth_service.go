package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/observability"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// RegisterInput carries new account data. Role defaults to USER when empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies bundles requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     deps.Logger,
	}
}

// Tokens exposes the token manager so the auth middleware can share it.
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account. Only admins may call it.
func (s *AuthService) Register(ctx context.Context, actor *domain.User, input RegisterInput) (*domain.User, error) {
	if !auth.CanRegisterAccounts(actor.Role) {
		return nil, apperrors.NewForbidden("only admins may register accounts")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(role)})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewBadRequest("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("account registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("actor_id", actor.ID),
	)
	return user, nil
}

// Login authenticates by email and password and issues an access token.
// Unknown emails and wrong passwords produce the same unauthorized error;
// deactivated accounts are rejected distinctly even with valid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			observability.LoginFailuresTotal.WithLabelValues("bad_credentials").Inc()
			s.logger.Warn("login failed", zap.String("email", email), zap.String("reason", "unknown email"))
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		observability.LoginFailuresTotal.WithLabelValues("bad_credentials").Inc()
		s.logger.Warn("login failed", zap.String("user_id", user.ID), zap.String("reason", "bad password"))
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if !user.Active {
		observability.LoginFailuresTotal.WithLabelValues("deactivated").Inc()
		s.logger.Warn("login rejected for deactivated account", zap.String("user_id", user.ID))
		return nil, "", time.Time{}, apperrors.NewForbidden("account is deactivated")
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID))
	return user, token, expiresAt, nil
}

// ChangePassword rotates the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, currentPassword, newPassword string) error {
	if err := auth.ComparePassword(actor.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	actor.PasswordHash = hash
	if err := s.users.Update(ctx, actor); err != nil {
		return apperrors.MapError(err)
	}

	s.logger.Info("password changed", zap.String("user_id", actor.ID))
	return nil
}
