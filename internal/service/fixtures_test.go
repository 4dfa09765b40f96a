package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/task-service/internal/auth"
	"github.com/spec-kit/task-service/internal/config"
	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/events"
	"github.com/spec-kit/task-service/internal/service/strategy"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

const testPassword = "correct-horse"

type fixture struct {
	users    *memUserRepo
	tasks    *memTaskRepo
	comments *memCommentRepo

	authSvc    *AuthService
	taskSvc    *TaskService
	commentSvc *CommentService
	userSvc    *UserService

	admin   *domain.User
	manager *domain.User
	worker1 *domain.User
	worker2 *domain.User
	worker3 *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:    &memUserRepo{},
		tasks:    &memTaskRepo{},
		comments: &memCommentRepo{},
	}

	cfg := &config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}

	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()
	strategies := strategy.NewRegistry(f.users, f.tasks)

	f.authSvc = NewAuthService(cfg, AuthDependencies{UserRepo: f.users, Logger: logger})
	f.taskSvc = NewTaskService(TaskDependencies{
		TaskRepo:   f.tasks,
		Strategies: strategies,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	f.commentSvc = NewCommentService(CommentDependencies{
		CommentRepo: f.comments,
		TaskRepo:    f.tasks,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	f.userSvc = NewUserService(UserDependencies{
		UserRepo:   f.users,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	f.admin = f.seedUser(t, "admin", domain.RoleAdmin)
	f.manager = f.seedUser(t, "manager", domain.RoleManager)
	f.worker1 = f.seedUser(t, "worker1", domain.RoleUser)
	f.worker2 = f.seedUser(t, "worker2", domain.RoleUser)
	f.worker3 = f.seedUser(t, "worker3", domain.RoleUser)
	return f
}

func (f *fixture) seedUser(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) seedTask(t *testing.T, assignee *domain.User) *domain.Task {
	t.Helper()
	input := CreateTaskInput{Title: "fix the build", Description: "it broke"}
	if assignee != nil {
		input.AssignedToID = &assignee.ID
	}
	task, err := f.taskSvc.Create(context.Background(), f.manager, input)
	require.NoError(t, err)
	return task
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}
