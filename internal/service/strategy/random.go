package strategy

import (
	"context"
	"math/rand"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// Random assigns the task to a uniformly chosen active user.
type Random struct {
	users repository.UserRepository
	pick  func(n int) int
}

// NewRandom creates the strategy.
func NewRandom(users repository.UserRepository) *Random {
	return &Random{users: users, pick: rand.Intn}
}

func (r *Random) Type() domain.AssignmentType {
	return domain.AssignmentRandom
}

// Assign picks one of the active users with role USER.
func (r *Random) Assign(ctx context.Context, task *domain.Task, requestedUserID *string) (*domain.User, error) {
	candidates, err := r.users.ListActiveByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NewBadRequest("no active users available for assignment", nil)
	}
	chosen := candidates[r.pick(len(candidates))]
	return &chosen, nil
}
