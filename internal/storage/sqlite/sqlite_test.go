package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasks/internal/log"
	"github.com/slok/tasks/internal/model"
	"github.com/slok/tasks/internal/storage/sqlite"
)

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryTasks(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.NoError(t, repo.AddTask(ctx, model.Task{ID: "-b", Text: "Buy milk"}))
	require.NoError(t, repo.AddTask(ctx, model.Task{ID: "-a", Text: "Walk the dog"}))

	tasks, err = repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{
		{ID: "-b", Text: "Buy milk"},
		{ID: "-a", Text: "Walk the dog"},
	}, tasks)

	err = repo.AddTask(ctx, model.Task{ID: "-a", Text: "dup"})
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))

	err = repo.AddTask(ctx, model.Task{ID: "-c"})
	assert.True(t, errors.Is(err, model.ErrNotValid))

	require.NoError(t, repo.DeleteTask(ctx, "-b"))
	err = repo.DeleteTask(ctx, "-b")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	tasks, err = repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{{ID: "-a", Text: "Walk the dog"}}, tasks)
}

func TestRepositoryReplaceTasks(t *testing.T) {
	tests := map[string]struct {
		initial  []model.Task
		replace  []model.Task
		expTasks []model.Task
		expErr   error
	}{
		"Replacing should drop previous tasks and keep the new order.": {
			initial:  []model.Task{{ID: "-a", Text: "a"}},
			replace:  []model.Task{{ID: "-y", Text: "y"}, {ID: "-x", Text: "x"}},
			expTasks: []model.Task{{ID: "-y", Text: "y"}, {ID: "-x", Text: "x"}},
		},
		"Replacing with nothing should empty the list.": {
			initial:  []model.Task{{ID: "-a", Text: "a"}},
			replace:  nil,
			expTasks: []model.Task{},
		},
		"Replacing with duplicates should fail and keep previous tasks.": {
			initial:  []model.Task{{ID: "-a", Text: "a"}},
			replace:  []model.Task{{ID: "-x", Text: "x"}, {ID: "-x", Text: "y"}},
			expTasks: []model.Task{{ID: "-a", Text: "a"}},
			expErr:   model.ErrAlreadyExists,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			for _, task := range test.initial {
				require.NoError(t, repo.AddTask(ctx, task))
			}

			err := repo.ReplaceTasks(ctx, test.replace)
			if test.expErr != nil {
				assert.True(t, errors.Is(err, test.expErr), "got error: %v", err)
			} else {
				assert.NoError(t, err)
			}

			tasks, err := repo.ListTasks(ctx)
			require.NoError(t, err)
			assert.Equal(t, test.expTasks, tasks)
		})
	}
}
