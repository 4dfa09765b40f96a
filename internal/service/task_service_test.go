package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-service/internal/domain"
)

func TestCreateTaskByManager(t *testing.T) {
	f := newFixture(t)

	task, err := f.taskSvc.Create(context.Background(), f.manager, CreateTaskInput{
		Title:       "ship the release",
		Description: "cut the tag",
		Priority:    domain.TaskPriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusOpen, task.Status)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
	assert.Equal(t, f.manager.ID, task.CreatedByID)
	assert.Nil(t, task.AssignedToID)
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	f := newFixture(t)

	task, err := f.taskSvc.Create(context.Background(), f.manager, CreateTaskInput{Title: "triage"})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
}

func TestCreateTaskForbiddenForAdminAndUser(t *testing.T) {
	f := newFixture(t)

	for _, actor := range []*domain.User{f.admin, f.worker1} {
		_, err := f.taskSvc.Create(context.Background(), actor, CreateTaskInput{Title: "nope"})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	}
}

func TestCreateTaskWithDirectAssignee(t *testing.T) {
	f := newFixture(t)

	task, err := f.taskSvc.Create(context.Background(), f.manager, CreateTaskInput{
		Title:        "onboard the intern",
		AssignedToID: &f.worker2.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, task.AssignedToID)
	assert.Equal(t, f.worker2.ID, *task.AssignedToID)
}

func TestCreateTaskRejectsManagerAssignee(t *testing.T) {
	f := newFixture(t)

	_, err := f.taskSvc.Create(context.Background(), f.manager, CreateTaskInput{
		Title:        "self-deal",
		AssignedToID: &f.manager.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", domainCode(t, err))
}

func TestAssignLeastLoaded(t *testing.T) {
	f := newFixture(t)

	// worker1 carries two open tasks, worker3 one, worker2 none.
	f.seedTask(t, f.worker1)
	f.seedTask(t, f.worker1)
	f.seedTask(t, f.worker3)
	task := f.seedTask(t, nil)

	assigned, err := f.taskSvc.Assign(context.Background(), f.manager, task.ID, domain.AssignmentLeastLoaded, nil)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedToID)
	assert.Equal(t, f.worker2.ID, *assigned.AssignedToID)

	stored, err := f.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AssignedToID)
	assert.Equal(t, f.worker2.ID, *stored.AssignedToID)
}

func TestAssignLeastLoadedIgnoresDoneTasks(t *testing.T) {
	f := newFixture(t)

	done := f.seedTask(t, f.worker1)
	status := domain.TaskStatusDone
	_, err := f.taskSvc.Update(context.Background(), f.manager, done.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)

	f.seedTask(t, f.worker2)
	f.seedTask(t, f.worker3)
	task := f.seedTask(t, nil)

	assigned, err := f.taskSvc.Assign(context.Background(), f.manager, task.ID, domain.AssignmentLeastLoaded, nil)
	require.NoError(t, err)
	assert.Equal(t, f.worker1.ID, *assigned.AssignedToID)
}

func TestAssignManual(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, nil)

	assigned, err := f.taskSvc.Assign(context.Background(), f.manager, task.ID, domain.AssignmentManual, &f.worker3.ID)
	require.NoError(t, err)
	assert.Equal(t, f.worker3.ID, *assigned.AssignedToID)
}

func TestAssignForbiddenForNonManagers(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, nil)

	for _, actor := range []*domain.User{f.admin, f.worker1} {
		_, err := f.taskSvc.Assign(context.Background(), actor, task.ID, domain.AssignmentRandom, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	}
}

func TestAssignUnknownTask(t *testing.T) {
	f := newFixture(t)

	_, err := f.taskSvc.Assign(context.Background(), f.manager, "task-404", domain.AssignmentRandom, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestAssignUnknownStrategy(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, nil)

	_, err := f.taskSvc.Assign(context.Background(), f.manager, task.ID, domain.AssignmentType("ROUND_ROBIN"), nil)
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", domainCode(t, err))
}

func TestUserUpdatesOwnTaskStatus(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, f.worker1)

	status := domain.TaskStatusInProgress
	updated, err := f.taskSvc.Update(context.Background(), f.worker1, task.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
}

func TestUserMixedUpdateRejectedWholly(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, f.worker1)
	originalTitle := task.Title

	status := domain.TaskStatusInProgress
	newTitle := "sneaky rename"
	_, err := f.taskSvc.Update(context.Background(), f.worker1, task.ID, UpdateTaskInput{
		Title:  &newTitle,
		Status: &status,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	// Nothing was written, not even the status the caller could have changed.
	stored, err := f.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, originalTitle, stored.Title)
	assert.Equal(t, domain.TaskStatusOpen, stored.Status)
}

func TestUserCannotUpdateOthersTask(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, f.worker1)

	status := domain.TaskStatusDone
	_, err := f.taskSvc.Update(context.Background(), f.worker2, task.ID, UpdateTaskInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestManagerUpdatesFields(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, f.worker1)

	newTitle := "better title"
	priority := domain.TaskPriorityLow
	updated, err := f.taskSvc.Update(context.Background(), f.manager, task.ID, UpdateTaskInput{
		Title:    &newTitle,
		Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, "better title", updated.Title)
	assert.Equal(t, domain.TaskPriorityLow, updated.Priority)
	require.NotNil(t, updated.UpdatedByID)
	assert.Equal(t, f.manager.ID, *updated.UpdatedByID)
}

func TestUpdateEmptyPayload(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, nil)

	_, err := f.taskSvc.Update(context.Background(), f.manager, task.ID, UpdateTaskInput{})
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", domainCode(t, err))
}

func TestGetTaskVisibility(t *testing.T) {
	f := newFixture(t)
	task := f.seedTask(t, f.worker1)

	for _, actor := range []*domain.User{f.admin, f.manager, f.worker1} {
		got, err := f.taskSvc.Get(context.Background(), actor, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	}

	_, err := f.taskSvc.Get(context.Background(), f.worker2, task.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestListScopesUsersToOwnAssignments(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, f.worker1)
	f.seedTask(t, f.worker1)
	f.seedTask(t, f.worker2)
	f.seedTask(t, nil)

	// A user asking for someone else's tasks still only sees their own.
	tasks, total, err := f.taskSvc.List(context.Background(), f.worker1, ListTasksInput{AssignedToID: &f.worker2.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, task := range tasks {
		assert.True(t, task.IsAssignee(f.worker1.ID))
	}

	_, managerTotal, err := f.taskSvc.List(context.Background(), f.manager, ListTasksInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, managerTotal)
}
