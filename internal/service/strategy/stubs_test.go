package strategy

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
)

// stubUserRepo serves candidates in insertion order, mirroring the stable
// ordering the real repository guarantees.
type stubUserRepo struct {
	users []domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	s.users = append(s.users, *user)
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error {
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (s *stubUserRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	users, err := s.List(ctx, filter)
	return int64(len(users)), err
}

func (s *stubUserRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		if user.Role == role && user.Active {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *stubUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	for _, user := range s.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

// stubTaskRepo only tracks per-user open task counts; the strategies never
// touch anything else.
type stubTaskRepo struct {
	loads map[string]int64
}

func (s *stubTaskRepo) Create(ctx context.Context, task *domain.Task) error { return nil }

func (s *stubTaskRepo) Update(ctx context.Context, task *domain.Task) error { return nil }

func (s *stubTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubTaskRepo) ListWithFilter(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

func (s *stubTaskRepo) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	return 0, nil
}

func (s *stubTaskRepo) CountActiveByAssignee(ctx context.Context, userID string) (int64, error) {
	return s.loads[userID], nil
}

func activeUser(id string) domain.User {
	return domain.User{ID: id, Name: id, Email: id + "@example.com", Role: domain.RoleUser, Active: true}
}
