package lib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slok/tasks/internal/app/listtasks"
	"github.com/slok/tasks/internal/app/newtask"
	"github.com/slok/tasks/internal/app/removetask"
	"github.com/slok/tasks/internal/httpreq"
	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage"
	"github.com/slok/tasks/internal/storage/memory"
	"github.com/slok/tasks/internal/storage/sqlite"
)

// Task is a task of the list.
type Task struct {
	ID   string
	Text string
}

// State is the loading and error state of the latest request.
type State = httpreq.State

// Config configures the SDK client. All fields are optional.
type Config struct {
	// Endpoint is the database base URL.
	// Default: the tutorial Firebase database.
	Endpoint string

	// Headers are added to every request.
	Headers map[string]string

	// Timeout of each request. Default: no timeout.
	Timeout time.Duration

	// HTTPClient used for the requests. Default: a new client.
	HTTPClient *http.Client

	// CancelInFlight cancels the previous in flight request when a new one starts.
	CancelInFlight bool

	// OnStateChange is called on every request state transition.
	OnStateChange func(State)

	// DBPath is the SQLite database path of the local task list.
	// Default: in memory.
	DBPath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	exec    *httpreq.Executor
	repo    storage.TaskRepository
	newTask *newtask.Service
	list    *listtasks.Service
	remove  *removetask.Service
	closeFn func() error
}

// New creates a new SDK client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	exec, err := httpreq.NewExecutor(httpreq.ExecutorConfig{
		HTTPClient:     cfg.HTTPClient,
		Headers:        cfg.Headers,
		Timeout:        cfg.Timeout,
		CancelInFlight: cfg.CancelInFlight,
		OnStateChange:  cfg.OnStateChange,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create executor: %w", err)
	}

	var (
		repo    storage.TaskRepository
		closeFn = func() error { return nil }
	)
	if cfg.DBPath != "" {
		r, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: cfg.DBPath, Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		repo, closeFn = r, r.Close
	} else {
		r, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		repo = r
	}

	c := &Client{exec: exec, repo: repo, closeFn: closeFn}

	c.newTask, err = newtask.NewService(newtask.ServiceConfig{Executor: exec, Repository: repo, Endpoint: cfg.Endpoint, Logger: cfg.Logger})
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("could not create new task service: %w", err)
	}
	c.list, err = listtasks.NewService(listtasks.ServiceConfig{Executor: exec, Repository: repo, Endpoint: cfg.Endpoint, Logger: cfg.Logger})
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("could not create list service: %w", err)
	}
	c.remove, err = removetask.NewService(removetask.ServiceConfig{Executor: exec, Repository: repo, Endpoint: cfg.Endpoint, Logger: cfg.Logger})
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("could not create remove service: %w", err)
	}

	return c, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error { return c.closeFn() }

// State returns the state of the latest request.
func (c *Client) State() State { return c.exec.State() }

// AddTask creates a task with the received text and appends it to the local list.
func (c *Client) AddTask(ctx context.Context, text string) (*Task, error) {
	t, err := c.newTask.Run(ctx, newtask.Request{Text: text})
	if err != nil {
		return nil, err
	}

	task := fromModel(*t)
	return &task, nil
}

// ListTasks fetches the remote tasks and replaces the local list with them.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	return c.listTasks(ctx, false)
}

// LocalTasks returns the local task list without any request.
func (c *Client) LocalTasks(ctx context.Context) ([]Task, error) {
	return c.listTasks(ctx, true)
}

// RemoveTask removes a task remotely and from the local list.
func (c *Client) RemoveTask(ctx context.Context, id string) error {
	return c.remove.Run(ctx, removetask.Request{ID: id})
}

func (c *Client) listTasks(ctx context.Context, local bool) ([]Task, error) {
	ts, err := c.list.Run(ctx, listtasks.Request{Local: local})
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(ts))
	for _, t := range ts {
		tasks = append(tasks, fromModel(t))
	}

	return tasks, nil
}

func fromModel(t model.Task) Task {
	return Task{ID: t.ID, Text: t.Text}
}
