package domain

import "time"

// Comment captures a message left on a task. It references its task and
// author by id only.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Message   string
	CreatedAt time.Time
}
