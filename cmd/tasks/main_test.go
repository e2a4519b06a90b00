package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/firebase/fake"
)

func runCmd(t *testing.T, endpoint, dataDir string, args ...string) (string, error) {
	t.Helper()

	fullArgs := append([]string{
		"tasks",
		"--no-log",
		"--db-path", filepath.Join(dataDir, "tasks.db"),
		"--config", filepath.Join(dataDir, "missing.yaml"),
		"--endpoint", endpoint,
	}, args...)

	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), fullArgs, strings.NewReader(""), &stdout, &stderr)
	return stdout.String(), err
}

func TestRunTaskLifecycle(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	fakeSrv, err := fake.NewServer(fake.ServerConfig{})
	require.NoError(err)
	srv := httptest.NewServer(fakeSrv)
	defer srv.Close()
	dataDir := t.TempDir()

	// Add.
	out, err := runCmd(t, srv.URL, dataDir, "add", "Buy", "milk")
	require.NoError(err)
	ids := fakeSrv.IDs()
	require.Len(ids, 1)
	assert.Equal("Added task: "+ids[0]+"\n", out)

	// List remote.
	out, err = runCmd(t, srv.URL, dataDir, "list", "--format", "json")
	require.NoError(err)
	var tasks []map[string]string
	require.NoError(json.Unmarshal([]byte(out), &tasks))
	assert.Equal([]map[string]string{{"id": ids[0], "text": "Buy milk"}}, tasks)

	// Remove.
	out, err = runCmd(t, srv.URL, dataDir, "rm", ids[0])
	require.NoError(err)
	assert.Equal("Removed task: "+ids[0]+"\n", out)
	assert.Empty(fakeSrv.IDs())

	// Local list is empty after removal.
	out, err = runCmd(t, srv.URL, dataDir, "list", "--local")
	require.NoError(err)
	assert.Equal("No tasks found. Start adding some!\n", out)
}

func TestRunAddRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := runCmd(t, srv.URL, t.TempDir(), "add", "Buy milk")
	assert.Error(t, err)
	assert.Equal(t, "Request failed!\n", out)
}

func TestRunInvalidCommand(t *testing.T) {
	_, err := runCmd(t, "http://127.0.0.1:1", t.TempDir(), "unknown")
	assert.Error(t, err)
}
