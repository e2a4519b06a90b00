package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/slok/tasks/internal/firebase"
	"github.com/slok/tasks/internal/httpreq"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage/io"
	"github.com/slok/tasks/internal/storage/sqlite"
)

// client groups the instances shared by the task commands.
type client struct {
	exec     *httpreq.Executor
	repo     *sqlite.Repository
	endpoint string
}

func (c *client) Close() error { return c.repo.Close() }

// errorMessage returns the message shown to the user for a failed command,
// the request state error when the request failed.
func (c *client) errorMessage(err error) string {
	if msg := c.exec.State().Error; msg != "" {
		return msg
	}
	return httpreq.ErrorMessage(err)
}

// newClient loads the client configuration and creates the executor and the
// local task list. Flags take precedence over the configuration file.
func (r RootCommand) newClient(ctx context.Context) (*client, error) {
	logger := r.Logger

	cfg, err := r.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	flagHeaders, err := parseHeaders(r.Headers)
	if err != nil {
		return nil, fmt.Errorf("invalid headers: %w", err)
	}
	headers := mergeHeaders(cfg.Headers, flagHeaders)

	endpoint := firebase.DefaultEndpoint
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
	}
	if r.Endpoint != "" {
		endpoint = r.Endpoint
	}

	exec, err := httpreq.NewExecutor(httpreq.ExecutorConfig{
		Headers: headers,
		Timeout: r.timeout(cfg),
		OnStateChange: func(s httpreq.State) {
			if s.IsLoading {
				logger.Debugf("Sending...")
			}
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create executor: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: r.DBPath,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return &client{
		exec:     exec,
		repo:     repo,
		endpoint: endpoint,
	}, nil
}

func (r RootCommand) loadConfig(ctx context.Context) (model.ClientConfig, error) {
	if r.ConfigPath == "" {
		return model.ClientConfig{}, nil
	}

	path, err := filepath.Abs(r.ConfigPath)
	if err != nil {
		return model.ClientConfig{}, fmt.Errorf("could not resolve config path: %w", err)
	}

	configRepo := io.NewConfigYAMLRepository(os.DirFS("/"))
	cfg, err := configRepo.GetConfig(ctx, strings.TrimPrefix(path, "/"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.Logger.Debugf("config file %s not found, using defaults", path)
			return model.ClientConfig{}, nil
		}
		return model.ClientConfig{}, fmt.Errorf("could not load config: %w", err)
	}

	return cfg, nil
}

// timeout returns the request timeout, a flag set by the user wins over the
// config file even when it disables the timeout.
func (r RootCommand) timeout(cfg model.ClientConfig) time.Duration {
	// Envars don't mark the flag as set by the user.
	if r.TimeoutSet || r.Timeout > 0 {
		return r.Timeout
	}
	return cfg.Timeout
}

func parseHeaders(specs []string) (map[string]string, error) {
	headers := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, value, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q, expected NAME=VALUE", spec)
		}
		headers[name] = value
	}

	return headers, nil
}

func mergeHeaders(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}

	return merged
}
