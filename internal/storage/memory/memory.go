package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.TaskRepository.
type Repository struct {
	tasks  []model.Task
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		logger: cfg.Logger,
	}, nil
}

// AddTask appends a task to the list.
func (r *Repository) AddTask(ctx context.Context, t model.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(t.ID) >= 0 {
		return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
	}

	r.tasks = append(r.tasks, t)
	r.logger.Debugf("Added task to repository: %s", t.ID)

	return nil
}

// ListTasks returns all tasks.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, len(r.tasks))
	copy(tasks, r.tasks)

	return tasks, nil
}

// ReplaceTasks replaces all the tasks.
func (r *Repository) ReplaceTasks(ctx context.Context, ts []model.Task) error {
	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid task: %w", err)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
		}
		seen[t.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make([]model.Task, len(ts))
	copy(r.tasks, ts)
	r.logger.Debugf("Replaced repository tasks: %d", len(ts))

	return nil
}

// DeleteTask deletes a task.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.logger.Debugf("Deleted task from repository: %s", id)

	return nil
}

func (r *Repository) index(id string) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
