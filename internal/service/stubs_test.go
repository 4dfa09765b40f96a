package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-service/internal/domain"
	"github.com/spec-kit/task-service/internal/repository"
)

// Memory-backed repositories used across the service tests. They keep
// insertion order so the strategies see the same stable ordering the real
// repositories guarantee.

type memUserRepo struct {
	seq   int
	users []domain.User
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	m.seq++
	user.ID = fmt.Sprintf("user-%d", m.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users = append(m.users, *user)
	return nil
}

func (m *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	for i := range m.users {
		if m.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			m.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
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

func (m *memUserRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	users, err := m.List(ctx, filter)
	return int64(len(users)), err
}

func (m *memUserRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		if user.Role == role && user.Active {
			out = append(out, user)
		}
	}
	return out, nil
}

func (m *memUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	for _, user := range m.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

type memTaskRepo struct {
	seq   int
	tasks []domain.Task
}

func (m *memTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	m.seq++
	task.ID = fmt.Sprintf("task-%d", m.seq)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	m.tasks = append(m.tasks, *task)
	return nil
}

func (m *memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			task.UpdatedAt = time.Now()
			m.tasks[i] = *task
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			task := m.tasks[i]
			return &task, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memTaskRepo) ListWithFilter(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedToID != nil && !task.IsAssignee(*filter.AssignedToID) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (m *memTaskRepo) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	tasks, err := m.ListWithFilter(ctx, filter)
	return int64(len(tasks)), err
}

func (m *memTaskRepo) CountActiveByAssignee(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, task := range m.tasks {
		if task.IsAssignee(userID) && task.Status != domain.TaskStatusDone {
			count++
		}
	}
	return count, nil
}

type memCommentRepo struct {
	seq      int
	comments []domain.Comment
}

func (m *memCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	m.seq++
	comment.ID = fmt.Sprintf("comment-%d", m.seq)
	comment.CreatedAt = time.Now()
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	for i := range m.comments {
		if m.comments[i].ID == id {
			comment := m.comments[i]
			return &comment, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memCommentRepo) ListByTask(ctx context.Context, taskID string, limit, offset int) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0, len(m.comments))
	for _, comment := range m.comments {
		if comment.TaskID == taskID {
			out = append(out, comment)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCommentRepo) CountByTask(ctx context.Context, taskID string) (int64, error) {
	var count int64
	for _, comment := range m.comments {
		if comment.TaskID == taskID {
			count++
		}
	}
	return count, nil
}

func (m *memCommentRepo) Delete(ctx context.Context, id string) error {
	for i := range m.comments {
		if m.comments[i].ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}
