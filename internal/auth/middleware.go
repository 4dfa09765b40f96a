package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware extracts bearer tokens and attaches the caller's identity to
// the request. It never aborts the pipeline: a missing or bad token leaves the
// request unauthenticated and the authorization stage produces the 401/403,
// keeping a single error-reporting path.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle verifies the bearer credential and establishes the request identity.
// Re-running on an already-verified request is a no-op.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if c.Locals(identityKey) != nil {
		return c.Next()
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		m.logger.Debug("malformed authorization header", zap.String("path", c.Path()))
		return c.Next()
	}

	email, err := m.tokens.Verify(parts[1])
	if err != nil {
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return c.Next()
	}

	user, err := m.users.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			m.logger.Warn("token subject no longer exists", zap.String("email", email))
			return c.Next()
		}
		return apperrors.MapError(err)
	}

	c.Locals(identityKey, user)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated account, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// RequireIdentity returns the authenticated, active account. An absent
// identity yields Unauthorized; a deactivated account yields the distinct
// Forbidden outcome.
func RequireIdentity(c *fiber.Ctx) (*domain.User, error) {
	user, ok := IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !user.Active {
		return nil, apperrors.NewForbidden("account is deactivated")
	}
	return user, nil
}
