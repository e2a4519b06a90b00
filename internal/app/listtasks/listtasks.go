package listtasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/slok/tasks/internal/firebase"
	"github.com/slok/tasks/internal/httpreq"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
)

// ServiceConfig is the configuration for the list tasks service.
type ServiceConfig struct {
	Executor   httpreq.Sender
	Repository storage.TaskRepository
	Endpoint   string
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Executor == nil {
		return fmt.Errorf("executor is required")
	}

	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Endpoint == "" {
		c.Endpoint = firebase.DefaultEndpoint
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service loads the task list.
type Service struct {
	exec     httpreq.Sender
	repo     storage.TaskRepository
	endpoint string
	logger   log.Logger
}

// NewService creates a new list tasks service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		exec:     cfg.Executor,
		repo:     cfg.Repository,
		endpoint: cfg.Endpoint,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the list tasks request parameters.
type Request struct {
	// Local lists the local task list without fetching the remote one.
	Local bool
}

// Run fetches the remote tasks, replaces the local list with them and returns them.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	if req.Local {
		tasks, err := s.repo.ListTasks(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not list local tasks: %w", err)
		}
		return tasks, nil
	}

	res := s.exec.Do(ctx, httpreq.Descriptor{URL: firebase.TasksURL(s.endpoint)})
	if res.Err != nil {
		return nil, fmt.Errorf("could not fetch tasks: %w", res.Err)
	}

	// An empty collection is returned as null.
	var data map[string]any
	if err := res.Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(data))
	for id, v := range data {
		text, ok := taskText(v)
		if !ok {
			s.logger.Warningf("ignoring malformed task %s", id)
			continue
		}
		tasks = append(tasks, model.Task{ID: id, Text: text})
	}
	// Generated IDs sort chronologically.
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	if err := s.repo.ReplaceTasks(ctx, tasks); err != nil {
		return nil, fmt.Errorf("could not store tasks: %w", err)
	}

	s.logger.Debugf("found %d tasks", len(tasks))
	return tasks, nil
}

// taskText returns the text of a stored task entry, entries that are not
// objects with a non blank text are not tasks.
func taskText(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	text, _ := obj["text"].(string)
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	return text, true
}
