package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-service/internal/domain"
)

func TestUserResponseNeverCarriesPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           "u1",
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret-material",
		Role:         domain.RoleUser,
		Active:       true,
	}

	full, err := json.Marshal(NewUserResponse(user))
	require.NoError(t, err)
	summary, err := json.Marshal(NewUserSummaries([]domain.User{*user}))
	require.NoError(t, err)

	for _, payload := range []string{string(full), string(summary)} {
		assert.False(t, strings.Contains(payload, "secret-material"))
		assert.False(t, strings.Contains(strings.ToLower(payload), "password"))
	}
}

func TestUserSummaryShape(t *testing.T) {
	users := []domain.User{
		{ID: "u1", Name: "alice", Email: "alice@example.com", Role: domain.RoleUser, Active: true},
		{ID: "u2", Name: "bob", Email: "bob@example.com", Role: domain.RoleUser, Active: true},
	}

	summaries := NewUserSummaries(users)
	require.Len(t, summaries, 2)
	assert.Equal(t, "u1", summaries[0].ID)
	assert.Equal(t, "bob@example.com", summaries[1].Email)

	// The reduced shape carries no role, status, or timestamp detail.
	payload, err := json.Marshal(NewUserSummary(&users[0]))
	require.NoError(t, err)
	for _, field := range []string{"role", "active", "created_at"} {
		assert.False(t, strings.Contains(string(payload), field))
	}
}
