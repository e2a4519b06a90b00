package lib_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/firebase/fake"
	"github.com/slok/tasks/pkg/lib"
)

func newFakeEndpoint(t *testing.T) (*fake.Server, string) {
	t.Helper()

	fakeSrv, err := fake.NewServer(fake.ServerConfig{})
	require.NoError(t, err)
	srv := httptest.NewServer(fakeSrv)
	t.Cleanup(srv.Close)

	return fakeSrv, srv.URL
}

func TestClientTaskLifecycle(t *testing.T) {
	tests := map[string]struct {
		dbPath func(t *testing.T) string
	}{
		"In memory task list.": {
			dbPath: func(t *testing.T) string { return "" },
		},

		"SQLite task list.": {
			dbPath: func(t *testing.T) string { return filepath.Join(t.TempDir(), "tasks.db") },
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)
			ctx := context.Background()

			fakeSrv, endpoint := newFakeEndpoint(t)
			var states []lib.State
			client, err := lib.New(ctx, lib.Config{
				Endpoint:      endpoint,
				DBPath:        test.dbPath(t),
				OnStateChange: func(s lib.State) { states = append(states, s) },
			})
			require.NoError(err)
			defer client.Close()

			task, err := client.AddTask(ctx, "Buy milk")
			require.NoError(err)
			require.Equal(fakeSrv.IDs(), []string{task.ID})
			assert.Equal("Buy milk", task.Text)
			assert.Equal([]lib.State{{IsLoading: true}, {IsLoading: false}}, states)

			local, err := client.LocalTasks(ctx)
			require.NoError(err)
			assert.Equal([]lib.Task{*task}, local)

			remote, err := client.ListTasks(ctx)
			require.NoError(err)
			assert.Equal([]lib.Task{*task}, remote)

			require.NoError(client.RemoveTask(ctx, task.ID))
			assert.Empty(fakeSrv.IDs())

			local, err = client.LocalTasks(ctx)
			require.NoError(err)
			assert.Empty(local)
			assert.Equal(lib.State{}, client.State())
		})
	}
}

func TestClientAddTaskFailure(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := lib.New(ctx, lib.Config{Endpoint: srv.URL})
	require.NoError(err)
	defer client.Close()

	_, err = client.AddTask(ctx, "Buy milk")
	require.Error(err)
	assert.Equal(lib.State{IsLoading: false, Error: "Request failed!"}, client.State())

	local, err := client.LocalTasks(ctx)
	require.NoError(err)
	assert.Empty(local)
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := lib.New(context.Background(), lib.Config{Timeout: -1})
	assert.Error(t, err)
}
