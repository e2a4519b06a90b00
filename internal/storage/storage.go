package storage

import (
	"context"

	"github.com/slok/tasks/internal/model"
)

// TaskRepository is the interface for the local task list persistence.
// Tasks are listed in the order they were added.
type TaskRepository interface {
	AddTask(ctx context.Context, t model.Task) error
	ListTasks(ctx context.Context) ([]model.Task, error)
	// ReplaceTasks replaces the whole list with the received tasks.
	ReplaceTasks(ctx context.Context, ts []model.Task) error
	DeleteTask(ctx context.Context, id string) error
}
