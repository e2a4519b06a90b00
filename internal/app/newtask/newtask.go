package newtask

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/slok/tasks/internal/firebase"
	"github.com/slok/tasks/internal/httpreq"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
)

// ServiceConfig is the configuration for the new task service.
type ServiceConfig struct {
	Executor   httpreq.Sender
	Repository storage.TaskRepository
	// Endpoint is the database base URL, defaults to firebase.DefaultEndpoint.
	Endpoint string
	Logger   log.Logger
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

// Service submits new tasks to the remote task list.
type Service struct {
	exec     httpreq.Sender
	repo     storage.TaskRepository
	endpoint string
	logger   log.Logger
}

// NewService creates a new new task service.
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

// Request represents the new task request parameters.
type Request struct {
	// Text is the task text as entered by the user.
	Text string
}

// Run creates the task on the remote endpoint and appends the created task to
// the local task list.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("task text is required: %w", model.ErrNotValid)
	}

	s.logger.Debugf("creating task")

	var created *model.Task
	err := s.exec.Send(ctx, NewDescriptor(s.endpoint, req.Text), func(data any) error {
		task, err := TaskFromResponse(req.Text, data)
		if err != nil {
			return err
		}

		if err := s.repo.AddTask(ctx, task); err != nil {
			return fmt.Errorf("could not add task to the list: %w", err)
		}

		created = &task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.logger.Debugf("task %s created", created.ID)
	return created, nil
}

// NewDescriptor returns the request that creates a task with the received text.
func NewDescriptor(endpoint, text string) httpreq.Descriptor {
	return httpreq.Descriptor{
		URL:    firebase.TasksURL(endpoint),
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: firebase.TaskData{Text: text},
	}
}

// TaskFromResponse builds the created task using the ID generated by the server.
func TaskFromResponse(text string, data any) (model.Task, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return model.Task{}, fmt.Errorf("unexpected response type %T", data)
	}

	id, _ := obj["name"].(string)
	if id == "" {
		return model.Task{}, fmt.Errorf("response without generated task id")
	}

	return model.Task{ID: id, Text: text}, nil
}
