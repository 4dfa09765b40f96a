package strategy

import (
	"context"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// LeastLoaded assigns the task to the active user carrying the fewest
// open tasks. Ties resolve to the earliest candidate in the repository's
// stable ordering.
type LeastLoaded struct {
	users repository.UserRepository
	tasks repository.TaskRepository
}

// NewLeastLoaded creates the strategy.
func NewLeastLoaded(users repository.UserRepository, tasks repository.TaskRepository) *LeastLoaded {
	return &LeastLoaded{users: users, tasks: tasks}
}

func (l *LeastLoaded) Type() domain.AssignmentType {
	return domain.AssignmentLeastLoaded
}

// Assign scans candidates in order and keeps the first minimum.
func (l *LeastLoaded) Assign(ctx context.Context, task *domain.Task, requestedUserID *string) (*domain.User, error) {
	candidates, err := l.users.ListActiveByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NewBadRequest("no active users available for assignment", nil)
	}

	var best *domain.User
	var bestLoad int64
	for i := range candidates {
		candidate := &candidates[i]
		load, err := l.tasks.CountActiveByAssignee(ctx, candidate.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if best == nil || load < bestLoad {
			best = candidate
			bestLoad = load
		}
	}
	return best, nil
}
