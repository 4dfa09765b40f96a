package dto

import (
	"time"

	"github.com/spec-kit/task-service/internal/domain"
)

// UserResponse is the admin-facing account shape. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserSummary is the reduced shape managers see when picking assignees.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateRoleRequest payload.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=ADMIN MANAGER USER"`
}

// SetActiveRequest payload.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewUserSummary maps a domain user to the reduced shape.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
}

// NewUserSummaries maps a slice of domain users to the reduced shape.
func NewUserSummaries(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, NewUserSummary(&users[i]))
	}
	return out
}
