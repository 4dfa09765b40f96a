package auth

import "github.com/spec-kit/task-service/internal/domain"

// Policy decisions are pure functions over (role, caller id, resource ids).
// Services map a false result to a Forbidden outcome; Unauthorized and
// NotFound are produced elsewhere and never collapsed into these.

// CanRegisterAccounts reports whether the caller may create new accounts.
func CanRegisterAccounts(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// CanCreateTask reports whether the caller may create tasks.
func CanCreateTask(role domain.Role) bool {
	return role == domain.RoleManager
}

// CanAssignTask reports whether the caller may assign tasks.
func CanAssignTask(role domain.Role) bool {
	return role == domain.RoleManager
}

// CanViewTask reports whether the caller may view the task. Admins and
// managers see any task; users only tasks assigned to them.
func CanViewTask(caller *domain.User, task *domain.Task) bool {
	switch caller.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return true
	case domain.RoleUser:
		return task.IsAssignee(caller.ID)
	}
	return false
}

// CanUpdateTaskFields reports whether the caller may touch title,
// description, or priority. Admins are deliberately excluded: they administer
// accounts, not work items.
func CanUpdateTaskFields(role domain.Role) bool {
	return role == domain.RoleManager
}

// CanUpdateTaskStatus reports whether the caller may change the task status.
func CanUpdateTaskStatus(caller *domain.User, task *domain.Task) bool {
	switch caller.Role {
	case domain.RoleManager:
		return true
	case domain.RoleUser:
		return task.IsAssignee(caller.ID)
	}
	return false
}

// CanCreateComment reports whether the caller's role may comment at all.
// Task-level access is checked separately via CanAccessTaskComments.
func CanCreateComment(role domain.Role) bool {
	return role == domain.RoleManager || role == domain.RoleUser
}

// CanAccessTaskComments reports whether the caller may read or write the
// comment thread of a task: admin, task creator, or assignee.
func CanAccessTaskComments(caller *domain.User, task *domain.Task) bool {
	if caller.Role == domain.RoleAdmin {
		return true
	}
	if task.CreatedByID == caller.ID {
		return true
	}
	return task.IsAssignee(caller.ID)
}

// CanDeleteComment reports whether the caller may delete the comment:
// the author, or an admin.
func CanDeleteComment(caller *domain.User, comment *domain.Comment) bool {
	if caller.Role == domain.RoleAdmin {
		return true
	}
	return comment.AuthorID == caller.ID
}

// CanListUsers reports whether the caller may list accounts at all. The
// detail level (admin vs summary) is decided by the user service.
func CanListUsers(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleManager
}

// CanManageUsers reports whether the caller may change roles or active
// status of other accounts.
func CanManageUsers(role domain.Role) bool {
	return role == domain.RoleAdmin
}
