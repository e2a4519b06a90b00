package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/tasks/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
	// Endpoint of a real database, when empty the tests use a local fake.
	Endpoint string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "tasks"
	}

	// go test changes the CWD to the test package directory.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("TASKS_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("tasks binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "TASKS_INTEGRATION"
		envBinary     = "TASKS_INTEGRATION_BINARY"
		envEndpoint   = "TASKS_INTEGRATION_ENDPOINT"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary:   os.Getenv(envBinary),
		Endpoint: os.Getenv(envEndpoint),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunCmd runs a tasks command isolated on its own database.
func RunCmd(ctx context.Context, config Config, endpoint, dbPath string, args ...string) (stdout, stderr []byte, err error) {
	env := []string{
		"TASKS_DB_PATH=" + dbPath,
		"TASKS_ENDPOINT=" + endpoint,
	}

	return testutils.RunTasks(ctx, env, config.Binary, args, true)
}

// RunAdd runs `tasks add`.
func RunAdd(ctx context.Context, config Config, endpoint, dbPath, text string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, endpoint, dbPath, "add", text)
}

// RunList runs `tasks list --format json`.
func RunList(ctx context.Context, config Config, endpoint, dbPath string, local bool) (stdout, stderr []byte, err error) {
	args := []string{"list", "--format", "json"}
	if local {
		args = append(args, "--local")
	}

	return RunCmd(ctx, config, endpoint, dbPath, args...)
}

// RunRm runs `tasks rm`.
func RunRm(ctx context.Context, config Config, endpoint, dbPath, id string) (stdout, stderr []byte, err error) {
	return RunCmd(ctx, config, endpoint, dbPath, "rm", id)
}
