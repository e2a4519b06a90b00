package removetask

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/slok/tasks/internal/firebase"
	"github.com/slok/tasks/internal/httpreq"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
)

// ServiceConfig is the configuration for the remove task service.
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

// Service removes tasks.
type Service struct {
	exec     httpreq.Sender
	repo     storage.TaskRepository
	endpoint string
	logger   log.Logger
}

// NewService creates a new remove task service.
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

// Request represents the remove task request parameters.
type Request struct {
	ID string
}

// Run removes the task from the remote endpoint and from the local list.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.ID == "" {
		return fmt.Errorf("task id is required: %w", model.ErrNotValid)
	}

	s.logger.Debugf("removing task: %s", req.ID)

	res := s.exec.Do(ctx, httpreq.Descriptor{
		URL:    firebase.TaskURL(s.endpoint, req.ID),
		Method: http.MethodDelete,
	})
	if res.Err != nil {
		return fmt.Errorf("could not remove task: %w", res.Err)
	}

	err := s.repo.DeleteTask(ctx, req.ID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("could not remove task from the list: %w", err)
		}
		s.logger.Debugf("task %s was not on the local list", req.ID)
	}

	return nil
}
