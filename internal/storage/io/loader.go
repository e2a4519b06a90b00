package io

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/tasks/internal/model"
)

// ConfigYAMLRepository loads client configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads a client configuration from a YAML file and returns a validated domain model.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.ClientConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ClientConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.ClientConfig{}, ctx.Err()
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.ClientConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	mcfg, err := cfg.toModel()
	if err != nil {
		return model.ClientConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return mcfg, nil
}

// ClientConfig represents the YAML structure for client configuration.
type ClientConfig struct {
	Endpoint string            `yaml:"endpoint"`
	Headers  map[string]string `yaml:"headers"`
	Timeout  string            `yaml:"timeout"`
}

func (c ClientConfig) toModel() (model.ClientConfig, error) {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return model.ClientConfig{}, fmt.Errorf("endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return model.ClientConfig{}, fmt.Errorf("endpoint scheme must be http or https, got: %q", u.Scheme)
		}
	}

	var timeout time.Duration
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return model.ClientConfig{}, fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return model.ClientConfig{}, fmt.Errorf("timeout must not be negative, got: %s", d)
		}
		timeout = d
	}

	return model.ClientConfig{
		Endpoint: c.Endpoint,
		Headers:  c.Headers,
		Timeout:  timeout,
	}, nil
}
