package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
)

// gateUserRepo resolves accounts by email only; the middleware needs nothing
// else.
type gateUserRepo struct {
	byEmail map[string]domain.User
}

func (g *gateUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (g *gateUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (g *gateUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (g *gateUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := g.byEmail[email]; ok {
		return &user, nil
	}
	return nil, pgx.ErrNoRows
}

func (g *gateUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (g *gateUserRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return 0, nil
}

func (g *gateUserRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return nil, nil
}

func (g *gateUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return 0, nil
}

func newGateApp(t *testing.T, users *gateUserRepo) (*fiber.App, *TokenManager) {
	t.Helper()
	tokens := NewTokenManager("gate-secret", 60)
	middleware := NewAuthMiddleware(tokens, users, zap.NewNop())

	app := fiber.New()
	app.Use(middleware.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		user, err := RequireIdentity(c)
		if err != nil {
			return c.SendStatus(http.StatusUnauthorized)
		}
		return c.SendString(user.Email)
	})
	app.Get("/open", func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); ok {
			return c.SendString("authenticated")
		}
		return c.SendString("anonymous")
	})
	return app, tokens
}

func TestGateAttachesIdentity(t *testing.T) {
	users := &gateUserRepo{byEmail: map[string]domain.User{
		"alice@example.com": {ID: "u1", Email: "alice@example.com", Role: domain.RoleUser, Active: true},
	}}
	app, tokens := newGateApp(t, users)

	token, _, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateNeverAbortsOnBadCredentials(t *testing.T) {
	users := &gateUserRepo{byEmail: map[string]domain.User{}}
	app, _ := newGateApp(t, users)

	// No header, malformed header, garbage token, token for an unknown
	// subject: the request always reaches the handler unauthenticated.
	headers := []string{"", "Token abc", "Bearer not-a-jwt"}
	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "header %q", header)
	}
}

func TestGateUnknownSubjectStaysAnonymous(t *testing.T) {
	users := &gateUserRepo{byEmail: map[string]domain.User{}}
	app, tokens := newGateApp(t, users)

	token, _, err := tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireIdentityDeactivatedAccount(t *testing.T) {
	users := &gateUserRepo{byEmail: map[string]domain.User{
		"gone@example.com": {ID: "u2", Email: "gone@example.com", Role: domain.RoleUser, Active: false},
	}}
	tokens := NewTokenManager("gate-secret", 60)
	middleware := NewAuthMiddleware(tokens, users, zap.NewNop())

	app := fiber.New()
	app.Use(middleware.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		_, err := RequireIdentity(c)
		if err != nil {
			return c.SendStatus(http.StatusForbidden)
		}
		return c.SendStatus(http.StatusOK)
	})

	token, _, err := tokens.Issue("gone@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
