package fake_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/firebase"
	"github.com/slok/tasks/internal/firebase/fake"
)

func newTestServer(t *testing.T) (*fake.Server, *httptest.Server) {
	t.Helper()

	s, err := fake.NewServer(fake.ServerConfig{})
	require.NoError(t, err)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	return s, srv
}

func doRequest(t *testing.T, method, url, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestServerLifecycle(t *testing.T) {
	s, srv := newTestServer(t)

	// Empty collection.
	status, body := doRequest(t, http.MethodGet, firebase.TasksURL(srv.URL), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", body)

	// Push two items.
	var ids []string
	for _, text := range []string{"Buy milk", "Walk the dog"} {
		status, body = doRequest(t, http.MethodPost, firebase.TasksURL(srv.URL), `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusOK, status)

		var pr firebase.PushResponse
		require.NoError(t, json.Unmarshal([]byte(body), &pr))
		assert.True(t, strings.HasPrefix(pr.Name, "-"))
		ids = append(ids, pr.Name)
	}
	// Generated IDs sort in creation order.
	assert.Equal(t, ids, s.IDs())

	status, body = doRequest(t, http.MethodGet, firebase.TasksURL(srv.URL), "")
	assert.Equal(t, http.StatusOK, status)
	var got map[string]firebase.TaskData
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, map[string]firebase.TaskData{
		ids[0]: {Text: "Buy milk"},
		ids[1]: {Text: "Walk the dog"},
	}, got)

	// Delete one, deleting again is not an error.
	status, _ = doRequest(t, http.MethodDelete, firebase.TaskURL(srv.URL, ids[0]), "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = doRequest(t, http.MethodDelete, firebase.TaskURL(srv.URL, ids[0]), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{ids[1]}, s.IDs())
}

func TestServerErrors(t *testing.T) {
	tests := map[string]struct {
		method    string
		path      string
		body      string
		expStatus int
	}{
		"Pushing invalid JSON should fail.": {
			method:    http.MethodPost,
			path:      "/tasks.json",
			body:      "{not json",
			expStatus: http.StatusBadRequest,
		},
		"Unknown paths should not be found.": {
			method:    http.MethodGet,
			path:      "/users.json",
			expStatus: http.StatusNotFound,
		},
		"Deleting without json suffix should not be found.": {
			method:    http.MethodDelete,
			path:      "/tasks/-abc",
			expStatus: http.StatusNotFound,
		},
		"Unsupported methods should not be allowed.": {
			method:    http.MethodPut,
			path:      "/tasks.json",
			body:      "{}",
			expStatus: http.StatusMethodNotAllowed,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, srv := newTestServer(t)
			status, _ := doRequest(t, test.method, srv.URL+test.path, test.body)
			assert.Equal(t, test.expStatus, status)
		})
	}
}
