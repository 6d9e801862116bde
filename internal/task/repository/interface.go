package repository

import (
	"context"

	"todoist-scheduler/internal/model"
)

// TaskRepository is the interface for the remote task store.
// The store is the single source of truth for task placements: the
// scheduler reads tasks at the start of every pass and patches them back.
type TaskRepository interface {
	// ListTasks returns all active tasks.
	ListTasks(ctx context.Context) ([]model.Task, error)

	// UpdateTask patches a task. Submitting the task's own recurrence
	// string via DueString makes the store's recurrence engine advance
	// the due date to the next valid occurrence.
	UpdateTask(ctx context.Context, id string, opt UpdateTaskOptions) (model.Task, error)

	// CloseTask marks a task completed.
	CloseTask(ctx context.Context, id string) error
}
