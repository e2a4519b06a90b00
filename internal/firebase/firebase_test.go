package firebase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tasks/internal/firebase"
)

func TestURLs(t *testing.T) {
	tests := map[string]struct {
		endpoint   string
		id         string
		expTasks   string
		expTaskURL string
	}{
		"An endpoint without trailing slash.": {
			endpoint:   "https://db.firebaseio.com",
			id:         "-NAbc123",
			expTasks:   "https://db.firebaseio.com/tasks.json",
			expTaskURL: "https://db.firebaseio.com/tasks/-NAbc123.json",
		},
		"Trailing slashes should be trimmed.": {
			endpoint:   "https://db.firebaseio.com//",
			id:         "-NAbc123",
			expTasks:   "https://db.firebaseio.com/tasks.json",
			expTaskURL: "https://db.firebaseio.com/tasks/-NAbc123.json",
		},
		"IDs should be escaped.": {
			endpoint:   "http://127.0.0.1:8090",
			id:         "a/b",
			expTasks:   "http://127.0.0.1:8090/tasks.json",
			expTaskURL: "http://127.0.0.1:8090/tasks/a%2Fb.json",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expTasks, firebase.TasksURL(test.endpoint))
			assert.Equal(t, test.expTaskURL, firebase.TaskURL(test.endpoint, test.id))
		})
	}
}
