package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
)

// EnsureDefaultAdmin seeds the first admin account when no admin exists.
// Without it a fresh deployment has no account able to register others.
func EnsureDefaultAdmin(ctx context.Context, cfg *config.Config, users repository.UserRepository, logger *zap.Logger) error {
	count, err := users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	logger.Warn("seeded default admin account, change its password immediately",
		zap.String("email", admin.Email),
	)
	return nil
}
