package removetask_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/app/removetask"
	"github.com/slok/tasks/internal/httpreq"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		id      string
		handler http.HandlerFunc
		mock    func(m *storagemock.MockTaskRepository)
		expErr  bool
	}{
		"Removing a task should delete it remotely and locally.": {
			id: "-NAbc123",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/tasks/-NAbc123.json" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				_, _ = w.Write([]byte(`null`))
			},
			mock: func(m *storagemock.MockTaskRepository) {
				m.On("DeleteTask", mock.Anything, "-NAbc123").Once().Return(nil)
			},
		},
		"A task missing on the local list should not fail.": {
			id: "-NAbc123",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`null`))
			},
			mock: func(m *storagemock.MockTaskRepository) {
				m.On("DeleteTask", mock.Anything, "-NAbc123").Once().Return(fmt.Errorf("task: %w", model.ErrNotFound))
			},
		},
		"A local repository error should fail.": {
			id: "-NAbc123",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`null`))
			},
			mock: func(m *storagemock.MockTaskRepository) {
				m.On("DeleteTask", mock.Anything, "-NAbc123").Once().Return(fmt.Errorf("database error"))
			},
			expErr: true,
		},
		"A failed request should not touch the local list.": {
			id: "-NAbc123",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			mock:   func(m *storagemock.MockTaskRepository) {},
			expErr: true,
		},
		"A missing ID should fail.": {
			id: "",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			},
			mock:   func(m *storagemock.MockTaskRepository) {},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(test.handler)
			defer srv.Close()

			m := &storagemock.MockTaskRepository{}
			test.mock(m)

			exec, err := httpreq.NewExecutor(httpreq.ExecutorConfig{})
			require.NoError(t, err)

			svc, err := removetask.NewService(removetask.ServiceConfig{
				Executor:   exec,
				Repository: m,
				Endpoint:   srv.URL,
			})
			require.NoError(t, err)

			err = svc.Run(context.Background(), removetask.Request{ID: test.id})
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			m.AssertExpectations(t)
		})
	}
}
