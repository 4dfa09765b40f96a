package strategy

import (
	"context"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
	apperrors "github.com/spec-kit/task-service/pkg/util"
)

// Strategy selects the user a task should be assigned to.
// Implementations only pick a candidate; the caller persists the result.
type Strategy interface {
	Type() domain.AssignmentType
	Assign(ctx context.Context, task *domain.Task, requestedUserID *string) (*domain.User, error)
}

// Registry maps assignment types to their strategy implementations.
type Registry struct {
	strategies map[domain.AssignmentType]Strategy
}

// NewRegistry builds a registry with the full strategy set.
func NewRegistry(users repository.UserRepository, tasks repository.TaskRepository) *Registry {
	r := &Registry{strategies: make(map[domain.AssignmentType]Strategy)}
	r.register(NewManual(users))
	r.register(NewRandom(users))
	r.register(NewLeastLoaded(users, tasks))
	return r
}

func (r *Registry) register(s Strategy) {
	r.strategies[s.Type()] = s
}

// Get returns the strategy for the given type.
func (r *Registry) Get(assignmentType domain.AssignmentType) (Strategy, error) {
	s, ok := r.strategies[assignmentType]
	if !ok {
		return nil, apperrors.NewBadRequest("unknown assignment strategy", map[string]any{
			"strategy": string(assignmentType),
		})
	}
	return s, nil
}
